package security

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSHAHasher_Deterministic(t *testing.T) {
	nopLogger := zerolog.Nop()
	hasher := NewSHAHasher(&nopLogger)

	first := hasher.Hash("0012345678")
	second := hasher.Hash("0012345678")

	if first != second {
		t.Errorf("Digest not deterministic: %s != %s", first, second)
	}
}

func TestSHAHasher_KnownDigest(t *testing.T) {
	nopLogger := zerolog.Nop()
	hasher := NewSHAHasher(&nopLogger)

	// sha256("123456") — pins the exact digest so submission-time and
	// lookup-time hashing can never drift apart silently.
	want := "8d969eef6ecad3c29a3a629280e686cf0c3f5d5a86aff3ca12020c923adc6c92"
	got := hasher.Hash("123456")

	if got != want {
		t.Errorf("Digest mismatch: got %s, want %s", got, want)
	}
	if len(got) != 64 {
		t.Errorf("Digest length: got %d, want 64", len(got))
	}
}

func TestSHAHasher_DistinctInputs(t *testing.T) {
	nopLogger := zerolog.Nop()
	hasher := NewSHAHasher(&nopLogger)

	if hasher.Hash("123456") == hasher.Hash("123457") {
		t.Error("Distinct national IDs produced the same digest")
	}
}
