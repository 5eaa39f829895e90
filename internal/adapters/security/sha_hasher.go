package security

import (
	"IdentityIntake/internal/core/ports"
	"crypto/sha256"
	"encoding/hex"

	"github.com/rs/zerolog"
)

// shaHasher implements the IdentityHasher interface using SHA-256.
// Raw national IDs never reach storage in plaintext; only the hex digest
// does, and the same digest is computed at submission and at lookup.
type shaHasher struct {
	log zerolog.Logger
}

var _ ports.IdentityHasher = (*shaHasher)(nil) // Ensure compliance

// NewSHAHasher creates the identity hasher.
func NewSHAHasher(baseLogger *zerolog.Logger) ports.IdentityHasher {
	log := baseLogger.With().Str("component", "identity_hasher").Logger()
	log.Info().Msg("Identity hasher initialized")
	return &shaHasher{log: log}
}

// Hash returns the 64-character lowercase hex SHA-256 digest of rawID.
// Deterministic for any well-formed string; no error conditions.
func (h *shaHasher) Hash(rawID string) string {
	sum := sha256.Sum256([]byte(rawID))
	return hex.EncodeToString(sum[:])
}
