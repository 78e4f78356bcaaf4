package pipeline

import (
	"fmt"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
)

// Preset is the per-category size configuration, resolved once at startup.
type Preset struct {
	MaxWidth    int    `yaml:"max_width"`
	MaxHeight   int    `yaml:"max_height"`
	ThumbWidth  int    `yaml:"thumb_width"`
	ThumbHeight int    `yaml:"thumb_height"`
	Folder      string `yaml:"folder"`
}

// Limits are the per-file ceilings and the per-user storage quota.
type Limits struct {
	MaxStaticBytes   int64 `yaml:"max_static_bytes"`
	MaxAnimatedBytes int64 `yaml:"max_animated_bytes"`
	UserQuotaBytes   int64 `yaml:"user_quota_bytes"`
}

// ModerationPolicy is the environment-dependent part of the moderation
// decision. The always-reject categories are not configurable.
type ModerationPolicy struct {
	RejectThreshold float64 `yaml:"reject_threshold"`
	// FailOpen routes uploads to pending manual review when the classifier
	// is unreachable instead of failing the run.
	FailOpen bool `yaml:"fail_open"`
}

// Config drives one pipeline run. Executors are constructed per upload from
// this struct; there is no shared mutable stage registry.
type Config struct {
	JPEGQuality  int                         `yaml:"jpeg_quality"`
	StoreRetries int                         `yaml:"store_retries"`
	ThumbFolder  string                      `yaml:"thumb_folder"`
	Limits       Limits                      `yaml:"limits"`
	Moderation   ModerationPolicy            `yaml:"moderation_policy"`
	Presets      map[entity.PhotoType]Preset `yaml:"presets"`
}

// DefaultPresets returns the built-in category presets.
func DefaultPresets() map[entity.PhotoType]Preset {
	return map[entity.PhotoType]Preset{
		entity.PhotoTypeAvatar:       {MaxWidth: 400, MaxHeight: 400, ThumbWidth: 64, ThumbHeight: 64, Folder: "avatars"},
		entity.PhotoTypeCover:        {MaxWidth: 1200, MaxHeight: 400, ThumbWidth: 300, ThumbHeight: 100, Folder: "covers"},
		entity.PhotoTypeCampaign:     {MaxWidth: 800, MaxHeight: 600, ThumbWidth: 150, ThumbHeight: 150, Folder: "campaign"},
		entity.PhotoTypeVerification: {MaxWidth: 1024, MaxHeight: 1024, ThumbWidth: 200, ThumbHeight: 200, Folder: "verification"},
		entity.PhotoTypeGallery:      {MaxWidth: 1024, MaxHeight: 1024, ThumbWidth: 200, ThumbHeight: 200, Folder: "gallery"},
		entity.PhotoTypePostMedia:    {MaxWidth: 800, MaxHeight: 800, ThumbWidth: 200, ThumbHeight: 200, Folder: "posts"},
	}
}

// PresetFor resolves the preset for a category.
func (c *Config) PresetFor(t entity.PhotoType) (Preset, bool) {
	p, ok := c.Presets[t]

	return p, ok
}

// Validate checks that every supported category has a usable preset and that
// ceilings and quota are positive.
func (c *Config) Validate() error {
	if len(c.Presets) == 0 {
		c.Presets = DefaultPresets()
	}
	for _, t := range entity.PhotoTypes() {
		p, ok := c.Presets[t]
		if !ok {
			return fmt.Errorf("missing preset for photo type %q", t)
		}
		if p.MaxWidth <= 0 || p.MaxHeight <= 0 || p.ThumbWidth <= 0 || p.ThumbHeight <= 0 {
			return fmt.Errorf("preset for %q has non-positive dimensions", t)
		}
		if p.Folder == "" {
			return fmt.Errorf("preset for %q has no storage folder", t)
		}
	}

	if c.Limits.MaxStaticBytes <= 0 || c.Limits.MaxAnimatedBytes <= 0 || c.Limits.UserQuotaBytes <= 0 {
		return fmt.Errorf("limits must be positive")
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be in (0, 100]")
	}
	if c.StoreRetries < 0 {
		return fmt.Errorf("store retries must not be negative")
	}
	if c.ThumbFolder == "" {
		c.ThumbFolder = "thumbs"
	}
	if c.Moderation.RejectThreshold <= 0 || c.Moderation.RejectThreshold > 1 {
		return fmt.Errorf("moderation reject threshold must be in (0, 1]")
	}

	return nil
}
