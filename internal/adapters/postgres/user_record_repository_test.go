package postgres

import (
	"IdentityIntake/internal/core/domain"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// testHashedID makes a unique digest per test run so parallel suites don't
// collide on the unique constraint.
func testHashedID(t *testing.T) string {
	t.Helper()
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%d", t.Name(), time.Now().UnixNano())))
	return hex.EncodeToString(sum[:])
}

func testRecord(hashedID string) *domain.UserRecord {
	return &domain.UserRecord{
		HashedID:  hashedID,
		Username:  "aliceSmith",
		Email:     "alice@example.com",
		LastName:  "Smith",
		ClientIP:  "203.0.113.7",
		Image1Key: "aliceSmith_image1.jpg",
		Image2Key: "aliceSmith_image2.jpg",
		State:     domain.StatePending,
	}
}

func TestUserRecordRepository_Insert_GetState_Roundtrip(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewUserRecordRepository(testDB, &nopLogger)
	ctx := context.Background()

	hashedID := testHashedID(t)
	if err := repo.Insert(ctx, testRecord(hashedID)); err != nil {
		t.Fatalf("Failed to insert record: %v", err)
	}
	defer cleanupTestRecord(t, hashedID)

	state, err := repo.GetState(ctx, hashedID)
	if err != nil {
		t.Fatalf("Failed to get state: %v", err)
	}
	if state != domain.StatePending {
		t.Errorf("State mismatch: got %s, want pending", state)
	}

	username, err := repo.GetUsername(ctx, hashedID)
	if err != nil {
		t.Fatalf("Failed to get username: %v", err)
	}
	if username != "aliceSmith" {
		t.Errorf("Username mismatch: got %s, want aliceSmith", username)
	}
}

func TestUserRecordRepository_Insert_Duplicate(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewUserRecordRepository(testDB, &nopLogger)
	ctx := context.Background()

	hashedID := testHashedID(t)
	if err := repo.Insert(ctx, testRecord(hashedID)); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	defer cleanupTestRecord(t, hashedID)

	err := repo.Insert(ctx, testRecord(hashedID))
	if !errors.Is(err, domain.ErrDuplicateSubmission) {
		t.Fatalf("Second insert: expected ErrDuplicateSubmission, got %v", err)
	}
}

func TestUserRecordRepository_GetState_NotFound(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewUserRecordRepository(testDB, &nopLogger)

	_, err := repo.GetState(context.Background(), testHashedID(t))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserRecordRepository_GetUsername_NotFound(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewUserRecordRepository(testDB, &nopLogger)

	_, err := repo.GetUsername(context.Background(), testHashedID(t))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

// Mirrors the review pipeline flipping a record to accepted out-of-band:
// a later lookup must see the new state and resolve the username.
func TestUserRecordRepository_OutOfBandAcceptance(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewUserRecordRepository(testDB, &nopLogger)
	ctx := context.Background()

	hashedID := testHashedID(t)
	if err := repo.Insert(ctx, testRecord(hashedID)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	defer cleanupTestRecord(t, hashedID)

	_, err := testDB.pool.Exec(ctx, `UPDATE users SET state = 'accepted' WHERE hashed_id = $1`, hashedID)
	if err != nil {
		t.Fatalf("Out-of-band update failed: %v", err)
	}

	state, err := repo.GetState(ctx, hashedID)
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if state != domain.StateAccepted {
		t.Errorf("State mismatch: got %s, want accepted", state)
	}

	username, err := repo.GetUsername(ctx, hashedID)
	if err != nil {
		t.Fatalf("GetUsername failed: %v", err)
	}
	if username != "aliceSmith" {
		t.Errorf("Username mismatch: got %s, want aliceSmith", username)
	}
}
