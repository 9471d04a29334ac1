package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Workflow errors.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoLinkedAccounts = errors.New("aggregator returned no linked accounts")
	ErrBankLinkNotFound = errors.New("bank link not found")
	ErrMissingLocation  = errors.New("provider response missing resource location")
)

// ValidationError reports a rejected onboarding payload. It is raised before
// any provider call, so a ValidationError guarantees no external resource was
// created. Fields lists every missing required field, not just the first.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("validation failed: missing required fields: %s", strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// ProviderError is the normalized shape of a failed remote call. Provider
// names the upstream service, Code carries its HTTP status and Type its
// provider-defined error tag; boundary handlers classify on those two.
type ProviderError struct {
	Provider string
	Code     int
	Type     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s (code=%d type=%s)", e.Provider, e.Message, e.Code, e.Type)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ConfigError reports a missing or malformed environment value. It is fatal
// at startup; no per-request recovery exists.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

// AsProviderError unwraps err to a *ProviderError if one is in the chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
