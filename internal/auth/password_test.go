package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/sakif/train-booking/internal/apperror"
)

// newTestPasswordService returns a PasswordService with bcrypt cost 4 — the
// library minimum. Tests run in milliseconds instead of ~250ms per hash.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceForTest(4)
}

// =========================================================================
// Hash TESTS
// =========================================================================

func TestHash_ReturnsNonEmptyHash(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("my-secret-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" {
		t.Error("Hash() returned empty string")
	}
}

func TestHash_OutputLooksBcrypt(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// bcrypt hashes always start with $2a$ or $2b$
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() does not look like a bcrypt hash: %q", hash)
	}
}

func TestHash_SamePasswordProducesDifferentHashes(t *testing.T) {
	ps := newTestPasswordService()

	// The salt is random per call, so two hashes of the same password must
	// differ — otherwise rainbow tables would work.
	hash1, _ := ps.Hash("same-password")
	hash2, _ := ps.Hash("same-password")

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for the same password (salt must be random)")
	}
}

func TestHash_RejectsPasswordOver72Bytes(t *testing.T) {
	ps := newTestPasswordService()

	longPassword := strings.Repeat("a", 73)
	_, err := ps.Hash(longPassword)
	if err == nil {
		t.Fatal("Hash() should return an error for passwords longer than 72 bytes")
	}
}

// =========================================================================
// Verify TESTS
// =========================================================================

func TestVerify_MatchingPassword(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	ok, err := ps.Verify("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !ok {
		t.Error("Verify() = false for the matching password")
	}
}

func TestVerify_WrongPasswordIsFalseNotError(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("right-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// A mismatch is a normal outcome, not a failure.
	ok, err := ps.Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("Verify() error = %v, want nil for a plain mismatch", err)
	}
	if ok {
		t.Error("Verify() = true for the wrong password")
	}
}

func TestVerify_MalformedHashIsCredentialFormatError(t *testing.T) {
	ps := newTestPasswordService()

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty hash", hash: ""},
		{name: "plain text stored as hash", hash: "hunter2"},
		{name: "truncated bcrypt output", hash: "$2a$12$tooshort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := ps.Verify("anything", tt.hash)
			if ok {
				t.Error("Verify() = true against a malformed hash")
			}
			if !errors.Is(err, apperror.ErrCredentialFormat) {
				t.Errorf("Verify() error = %v, want ErrCredentialFormat", err)
			}
		})
	}
}
