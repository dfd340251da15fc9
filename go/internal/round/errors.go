package round

import (
	"errors"
	"fmt"
)

// ErrStaleResponse marks a gateway reply for a round that has since been
// superseded. Stale responses are discarded and logged, never shown to
// the user.
var ErrStaleResponse = errors.New("stale response for superseded round")

// ValidationError rejects a bet before any network call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidationError reports whether err is a pre-network bet rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AuthenticationError means the session is missing or was rejected by
// the server. Surfaced distinctly so the UI can prompt a re-login.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// IsAuthenticationError reports whether err requires a re-login.
func IsAuthenticationError(err error) bool {
	var ae *AuthenticationError
	return errors.As(err, &ae)
}

// GatewayError is a transient network or server failure on a gateway
// call. Read paths degrade to fallbacks; write paths abort without
// partial state mutation.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IsGatewayError reports whether err is a transient gateway failure.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
