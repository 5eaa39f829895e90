package ports

import (
	"IdentityIntake/internal/core/domain"
	"context"
)

// RecordStore defines the persistence operations for verification records.
// The hashed national ID is the only lookup key.
type RecordStore interface {
	// Insert saves a new record. Returns domain.ErrDuplicateSubmission
	// when a record with the same hashed ID already exists.
	Insert(ctx context.Context, record *domain.UserRecord) error

	// GetState returns the current lifecycle state for a hashed ID.
	// Returns domain.ErrNotFound when no record exists.
	GetState(ctx context.Context, hashedID string) (domain.VerificationState, error)

	// GetUsername returns the stored username for a hashed ID.
	// Returns domain.ErrNotFound when no record exists.
	GetUsername(ctx context.Context, hashedID string) (string, error)
}
