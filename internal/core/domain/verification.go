package domain

import (
	"fmt"
	"strings"
	"time"
)

// VerificationState is a custom type for the record lifecycle ENUM.
type VerificationState string

const (
	StatePending  VerificationState = "pending"
	StateAccepted VerificationState = "accepted"
	StateRejected VerificationState = "rejected"
)

// SubmissionRequest is the ephemeral, per-call input to the submission
// workflow. The national ID is always a string at this boundary; clients
// that send digits are normalized by the transport layer.
type SubmissionRequest struct {
	Email      string
	LastName   string
	NationalID string
	Image1     []byte
	Image2     []byte
	ClientIP   string
}

// Validate checks the shape of the request. It performs no side effects
// and reports the first problem found, wrapped in ErrInvalidInput.
func (r *SubmissionRequest) Validate() error {
	local, _, ok := strings.Cut(r.Email, "@")
	if !ok || local == "" {
		return fmt.Errorf("%w: email must contain a local part and '@'", ErrInvalidInput)
	}
	if r.LastName == "" {
		return fmt.Errorf("%w: last name is required", ErrInvalidInput)
	}
	if r.NationalID == "" {
		return fmt.Errorf("%w: national id is required", ErrInvalidInput)
	}
	if len(r.Image1) == 0 || len(r.Image2) == 0 {
		return fmt.Errorf("%w: both images must be present and non-empty", ErrInvalidInput)
	}
	return nil
}

// DerivedIdentity carries everything computed from a valid submission:
// the storage key for the record and the object keys for both images.
type DerivedIdentity struct {
	HashedID  string
	Username  string
	Image1Key string
	Image2Key string
}

// Derive computes the identity for a request. The hashed ID comes from the
// given digest function so that submission and status lookup always share
// one hashing procedure — the hashed ID is the only legal lookup key.
func (r *SubmissionRequest) Derive(hash func(rawID string) string) DerivedIdentity {
	local, _, _ := strings.Cut(r.Email, "@")
	username := local + r.LastName

	return DerivedIdentity{
		HashedID:  hash(r.NationalID),
		Username:  username,
		Image1Key: fmt.Sprintf("%s_image1.jpg", username),
		Image2Key: fmt.Sprintf("%s_image2.jpg", username),
	}
}

// UserRecord is the persistent verification record, keyed by the hashed
// national ID. It is created once with StatePending; the review pipeline
// moves it to a terminal state out-of-band. Records are never deleted.
type UserRecord struct {
	HashedID  string
	Username  string
	Email     string
	LastName  string
	ClientIP  string
	Image1Key string
	Image2Key string
	State     VerificationState
	CreatedAt time.Time
	UpdatedAt time.Time
}
