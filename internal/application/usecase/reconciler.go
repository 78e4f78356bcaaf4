package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/broker"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/database"
	minioRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/minio"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
)

// ReconcilerConfig drives the scheduled orphan sweep.
type ReconcilerConfig struct {
	IntervalSeconds    int64 `yaml:"interval_in_s"`
	GracePeriodSeconds int64 `yaml:"grace_period_in_s"`
	StagingTTLSeconds  int64 `yaml:"staging_ttl_in_s"`
}

// Report summarizes one sweep.
type Report struct {
	Scanned        int
	Orphans        int
	StagingRemoved int
}

// Reconciler is the required operational companion to the pipeline: it
// compares active photo records against storage listings and flags objects
// with no referencing record. Orphans arise legitimately whenever the
// persistence stage fails after the store stage succeeded; the synchronous
// path never retry-loops against storage consistency.
type Reconciler struct {
	lister        database.Lister
	objects       minioRepo.Lister
	remover       minioRepo.Remover
	publisher     broker.Publisher
	folders       []string
	stagingFolder string
	grace         time.Duration
	stagingTTL    time.Duration
}

func NewReconciler(lister database.Lister, objects minioRepo.Lister, remover minioRepo.Remover,
	publisher broker.Publisher, folders []string, stagingFolder string, cfg ReconcilerConfig,
) *Reconciler {
	return &Reconciler{
		lister:        lister,
		objects:       objects,
		remover:       remover,
		publisher:     publisher,
		folders:       folders,
		stagingFolder: stagingFolder,
		grace:         time.Duration(cfg.GracePeriodSeconds) * time.Second,
		stagingTTL:    time.Duration(cfg.StagingTTLSeconds) * time.Second,
	}
}

// Sweep runs one reconciliation pass.
func (r *Reconciler) Sweep(ctx context.Context) (Report, error) {
	var report Report

	referenced, err := r.lister.ActiveStorageKeys(ctx)
	if err != nil {
		return report, fmt.Errorf("list active storage keys: %w", err)
	}

	now := time.Now()
	for _, folder := range r.folders {
		objects, err := r.objects.ListKeys(ctx, folder+"/")
		if err != nil {
			return report, fmt.Errorf("list objects under %s: %w", folder, err)
		}

		for _, obj := range objects {
			report.Scanned++
			if _, ok := referenced[obj.Key]; ok {
				continue
			}
			// In-flight uploads look like orphans until their record
			// commits; only objects past the grace period count.
			if now.Sub(obj.LastModified) < r.grace {
				continue
			}

			report.Orphans++
			err := r.publisher.Publish(ctx, broker.ReviewEvent{
				Kind:       broker.EventOrphanedBlob,
				StorageKey: obj.Key,
				Detail:     fmt.Sprintf("no active record, last modified %s", obj.LastModified.UTC().Format(time.RFC3339)),
			})
			if err != nil {
				logger.Error("failed to publish orphan event", "key", obj.Key, "err", err)
			}
		}
	}

	removed, err := r.sweepStaging(ctx, now)
	report.StagingRemoved = removed
	if err != nil {
		return report, err
	}

	logger.Info("reconciliation sweep finished",
		"scanned", report.Scanned, "orphans", report.Orphans, "staging_removed", report.StagingRemoved)

	return report, nil
}

// sweepStaging removes staged objects whose upload was never confirmed.
func (r *Reconciler) sweepStaging(ctx context.Context, now time.Time) (int, error) {
	if r.stagingFolder == "" {
		return 0, nil
	}

	objects, err := r.objects.ListKeys(ctx, strings.TrimSuffix(r.stagingFolder, "/")+"/")
	if err != nil {
		return 0, fmt.Errorf("list staging objects: %w", err)
	}

	removed := 0
	for _, obj := range objects {
		if now.Sub(obj.LastModified) < r.stagingTTL {
			continue
		}
		if err := r.remover.Remove(ctx, obj.Key); err != nil {
			logger.Error("failed to remove expired staging object", "key", obj.Key, "err", err)

			continue
		}
		removed++
	}

	return removed, nil
}
