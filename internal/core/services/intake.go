package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"IdentityIntake/internal/core/domain"
	"IdentityIntake/internal/core/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// StatusResult is what the status workflow returns: the current state and,
// only once a record has been accepted, the stored username.
type StatusResult struct {
	State    domain.VerificationState
	Username string
}

// IntakeService orchestrates the submission and status workflows. It is
// stateless between requests; everything persistent lives in the record
// store, so concurrent submissions for the same national ID are serialized
// only by the store's uniqueness constraint.
type IntakeService struct {
	hasher    ports.IdentityHasher
	objects   ports.ObjectStore
	records   ports.RecordStore
	publisher ports.NotificationPublisher
	bucket    string
	dbTimeout time.Duration
	log       zerolog.Logger
}

// NewIntakeService wires the gateways together.
func NewIntakeService(
	hasher ports.IdentityHasher,
	objects ports.ObjectStore,
	records ports.RecordStore,
	publisher ports.NotificationPublisher,
	bucket string,
	dbTimeout time.Duration,
	baseLogger *zerolog.Logger,
) *IntakeService {
	return &IntakeService{
		hasher:    hasher,
		objects:   objects,
		records:   records,
		publisher: publisher,
		bucket:    bucket,
		dbTimeout: dbTimeout,
		log:       baseLogger.With().Str("component", "intake_service").Logger(),
	}
}

// Submit runs the linear submission workflow:
//
//	validate -> derive -> upload both images -> publish username -> insert record
//
// Any upload failure aborts the workflow before a record is created or a
// notification goes out. The publish step is best-effort: downstream
// notification is asynchronous anyway, so a broker outage is logged and the
// submission still succeeds (the record is what the review pipeline is
// reconciled against). No cleanup of already-uploaded images happens on a
// later-step failure; same-key overwrites make a re-submission idempotent.
func (s *IntakeService) Submit(ctx context.Context, req *domain.SubmissionRequest) (domain.DerivedIdentity, error) {
	if err := req.Validate(); err != nil {
		return domain.DerivedIdentity{}, err
	}

	identity := req.Derive(s.hasher.Hash)
	log := s.log.With().Str("hashed_id", identity.HashedID).Str("username", identity.Username).Logger()

	// The two images have independent keys and no ordering dependency,
	// so they upload concurrently; the first failure cancels the other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.objects.Upload(gctx, s.bucket, identity.Image1Key, bytes.NewReader(req.Image1))
	})
	g.Go(func() error {
		return s.objects.Upload(gctx, s.bucket, identity.Image2Key, bytes.NewReader(req.Image2))
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Image upload failed, aborting submission")
		return domain.DerivedIdentity{}, fmt.Errorf("image upload: %w", err)
	}

	if err := s.publisher.Publish(ctx, identity.Username); err != nil {
		log.Warn().Err(err).Msg("Notification publish failed, continuing (best-effort)")
	}

	record := &domain.UserRecord{
		HashedID:  identity.HashedID,
		Username:  identity.Username,
		Email:     req.Email,
		LastName:  req.LastName,
		ClientIP:  req.ClientIP,
		Image1Key: identity.Image1Key,
		Image2Key: identity.Image2Key,
		State:     domain.StatePending,
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()
	if err := s.records.Insert(dbCtx, record); err != nil {
		return domain.DerivedIdentity{}, err
	}

	log.Info().Msg("Submission persisted as pending")
	return identity, nil
}

// Status hashes the raw national ID with the same hasher used at submission
// and looks up the record. The username is disclosed only for records in
// the terminal accepted state.
func (s *IntakeService) Status(ctx context.Context, rawNationalID string) (StatusResult, error) {
	if rawNationalID == "" {
		return StatusResult{}, fmt.Errorf("%w: national id is required", domain.ErrInvalidInput)
	}

	hashedID := s.hasher.Hash(rawNationalID)

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	state, err := s.records.GetState(dbCtx, hashedID)
	if err != nil {
		return StatusResult{}, err
	}

	result := StatusResult{State: state}
	if state == domain.StateAccepted {
		username, err := s.records.GetUsername(dbCtx, hashedID)
		if err != nil {
			s.log.Error().Err(err).Str("hashed_id", hashedID).Msg("Accepted record has no resolvable username")
			return StatusResult{}, err
		}
		result.Username = username
	}

	return result, nil
}
