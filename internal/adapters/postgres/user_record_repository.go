package postgres

import (
	"IdentityIntake/internal/core/domain"
	"IdentityIntake/internal/core/ports"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const uniqueViolation = "23505"

type userRecordRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.RecordStore = (*userRecordRepository)(nil) // Ensure compliance

// NewUserRecordRepository creates the record store backed by the users table.
func NewUserRecordRepository(db *DB, baseLogger *zerolog.Logger) ports.RecordStore {
	return &userRecordRepository{
		db:  db,
		log: baseLogger.With().Str("component", "user_record_repo").Logger(),
	}
}

// Insert saves a new verification record. A second submission for the same
// national ID trips the unique constraint on hashed_id and is reported as
// domain.ErrDuplicateSubmission rather than a raw driver error.
func (r *userRecordRepository) Insert(ctx context.Context, record *domain.UserRecord) error {
	query := `
		INSERT INTO users (
			hashed_id, username, email, last_name, client_ip,
			image1_key, image2_key, state
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.pool.Exec(ctx, query,
		record.HashedID,
		record.Username,
		record.Email,
		record.LastName,
		record.ClientIP,
		record.Image1Key,
		record.Image2Key,
		record.State,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.log.Warn().Str("hashed_id", record.HashedID).Msg("Duplicate submission rejected")
			return domain.ErrDuplicateSubmission
		}
		r.log.Error().Err(err).Str("hashed_id", record.HashedID).Msg("Failed to insert verification record")
		return fmt.Errorf("insert verification record: %w", err)
	}
	return nil
}

// GetState returns the lifecycle state for a hashed ID.
func (r *userRecordRepository) GetState(ctx context.Context, hashedID string) (domain.VerificationState, error) {
	var state domain.VerificationState
	err := r.db.pool.QueryRow(ctx,
		`SELECT state FROM users WHERE hashed_id = $1`, hashedID,
	).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		r.log.Error().Err(err).Str("hashed_id", hashedID).Msg("Failed to query record state")
		return "", fmt.Errorf("query record state: %w", err)
	}
	return state, nil
}

// GetUsername returns the stored username for a hashed ID.
func (r *userRecordRepository) GetUsername(ctx context.Context, hashedID string) (string, error) {
	var username string
	err := r.db.pool.QueryRow(ctx,
		`SELECT username FROM users WHERE hashed_id = $1`, hashedID,
	).Scan(&username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		r.log.Error().Err(err).Str("hashed_id", hashedID).Msg("Failed to query record username")
		return "", fmt.Errorf("query record username: %w", err)
	}
	return username, nil
}
