// README: Typed provider errors so callers can branch on the failure class.
package distance

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a provider failure.
type ErrorCode string

const (
	CodeAPIKeyMissing   ErrorCode = "API_KEY_MISSING"
	CodeBaseURLInvalid  ErrorCode = "BASE_URL_INVALID"
	CodeTimeout         ErrorCode = "TIMEOUT"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeRequestFailed   ErrorCode = "REQUEST_FAILED"
	CodeDistanceMissing ErrorCode = "DISTANCE_MISSING"
	CodeGeocodeFailed   ErrorCode = "GEOCODE_FAILED"
)

// ProviderError wraps a routing or geocoding failure with its class.
type ProviderError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("distance: %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("distance: %s: %s", e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func newProviderError(code ErrorCode, msg string, err error) *ProviderError {
	return &ProviderError{Code: code, Message: msg, Err: err}
}

// CodeOf extracts the error code from err, or empty when err is not a
// ProviderError.
func CodeOf(err error) ErrorCode {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
