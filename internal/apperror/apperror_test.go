package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// TABLE-DRIVEN TESTS:
// Each case checks that errors.Is() correctly identifies the error category.
// Adding a new taxonomy entry = adding one struct to the slice.

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "Storage wraps ErrStorage",
			err:       Storage("reading", "data/trains.json", errors.New("permission denied")),
			target:    ErrStorage,
			wantMatch: true,
		},
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("train", "101"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("seat", "seat is out of range"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "AuthFailed wraps ErrAuth",
			err:       AuthFailed("invalid name or password"),
			target:    ErrAuth,
			wantMatch: true,
		},
		{
			name:      "CredentialFormat wraps ErrCredentialFormat",
			err:       CredentialFormat(errors.New("hash too short")),
			target:    ErrCredentialFormat,
			wantMatch: true,
		},
		{
			name:      "CredentialFormat does NOT match ErrAuth",
			err:       CredentialFormat(errors.New("hash too short")),
			target:    ErrAuth,
			wantMatch: false,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("ticket", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorsIsThroughWrapping(t *testing.T) {
	// Call sites wrap with fmt.Errorf("...: %w", err); the category must
	// survive an extra layer of wrapping.
	err := fmt.Errorf("persisting train catalog: %w",
		Storage("replacing", "data/trains.json", errors.New("disk full")))

	if !errors.Is(err, ErrStorage) {
		t.Errorf("errors.Is() did not find ErrStorage through a fmt.Errorf wrap")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("train", "101"),
			wantMessage: "train not found with id 101",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("seat", "seat is already booked"),
			wantMessage: "seat is already booked",
		},
		{
			name:        "Storage message includes op, location, and cause",
			err:         Storage("reading", "data/users.json", errors.New("no such file")),
			wantMessage: "reading data/users.json: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestValidationFailedField(t *testing.T) {
	// The Field tells the front end WHICH input was invalid.
	err := ValidationFailed("seat", "seat is out of range")

	if err.Field != "seat" {
		t.Errorf("Field = %q, want %q", err.Field, "seat")
	}
}
