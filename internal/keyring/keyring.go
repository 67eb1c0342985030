package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/mindcalm/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the requested name
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrUnknownSecret is returned for a secret name this app does not manage
	ErrUnknownSecret = errors.New("unknown secret")
)

// Secret names a credential held in the OS keyring under the app's service.
type Secret string

const (
	ConnectionString Secret = constants.DefaultKeyringUser
	GeminiAPIKey     Secret = constants.GeminiKeyringUser
)

// Secrets lists every managed secret in display order.
var Secrets = []Secret{ConnectionString, GeminiAPIKey}

// ParseSecret maps a CLI-friendly name ("db", "gemini") to a Secret.
func ParseSecret(name string) (Secret, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "db", "database", "postgres", string(ConnectionString):
		return ConnectionString, nil
	case "gemini", "ai", "api-key", string(GeminiAPIKey):
		return GeminiAPIKey, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSecret, name)
}

// Get retrieves a secret. Returns ErrNotFound if nothing is stored.
func Get(s Secret) (string, error) {
	v, err := keyring.Get(constants.AppName, string(s))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

// Set stores a secret, replacing any previous value.
func Set(s Secret, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", s)
	}
	if err := keyring.Set(constants.AppName, string(s), value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", s, err)
	}
	return nil
}

// Delete removes a secret from the keyring.
func Delete(s Secret) error {
	if err := keyring.Delete(constants.AppName, string(s)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", s, err)
	}
	return nil
}

// GetConnectionString retrieves the PostgreSQL connection string.
func GetConnectionString() (string, error) {
	return Get(ConnectionString)
}

// ResolveGeminiAPIKey prefers the GEMINI_API_KEY environment variable and
// falls back to the keyring.
func ResolveGeminiAPIKey() (string, error) {
	if v := strings.TrimSpace(os.Getenv(constants.GeminiAPIKeyEnv)); v != "" {
		return v, nil
	}
	return Get(GeminiAPIKey)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
