package database

import "context"

type Remover interface {
	// SoftDelete clears the active flag on the owner's photo. Records are
	// never hard-deleted; object cleanup is the reconciliation sweep's job.
	SoftDelete(ctx context.Context, id, ownerID string) error
}
