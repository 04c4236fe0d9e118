// Package auth — password hashing and verification.
//
// WHY BCRYPT?
// bcrypt is a password hashing function specifically designed to be slow.
// That slowness is a security feature: it makes brute-force attacks expensive.
//
// bcrypt automatically:
//   - Generates a random salt (so two users with the same password get different hashes)
//   - Embeds the salt in the output hash (no separate salt storage needed)
//   - Controls the work factor via "cost" (higher = slower = harder to crack)
//
// NEVER store passwords in plain text or with fast hashes (MD5, SHA-256),
// and never compare raw passwords directly — verification always goes through
// Verify, which recomputes the hash from the embedded salt and parameters.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/train-booking/internal/apperror"
)

// defaultCost is the bcrypt work factor.
// Cost 12 takes roughly ~250ms on a modern machine — negligible at login,
// brutal for an attacker hashing billions of guesses.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// It's a struct (not free functions) so that the cost can be injected in
// tests — cost 4 (the bcrypt minimum) makes each hashing operation take
// milliseconds instead of ~250ms without changing the logic under test.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost (12).
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with the given bcrypt
// cost. Use cost 4 in tests outside this package. Do NOT use in production.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
//
// The output is a self-contained string like:
//
//	$2a$12$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy
//
// It embeds the salt and cost, so it can be stored as-is and verified later
// with no extra bookkeeping.
//
// Returns an error if the plaintext is longer than 72 bytes — bcrypt would
// silently truncate it, which we refuse to do on the caller's behalf.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a plaintext password against a stored bcrypt hash.
//
// A wrong password is NOT an error: it returns (false, nil). The error
// return is reserved for a hash that bcrypt cannot even parse — a corrupted
// or hand-edited record — reported as apperror.ErrCredentialFormat.
//
// bcrypt's comparison is constant-time internally, so this is safe against
// timing attacks.
func (p *PasswordService) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, apperror.CredentialFormat(err)
}
