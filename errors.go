package amigo

import (
	"errors"
	"fmt"

	"github.com/amigo-ai/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingCredentials is returned when required credentials are absent.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrAuthentication is returned when sign-in fails or the server
	// rejects the bearer token even after a refresh.
	ErrAuthentication = errors.New("authentication failed")

	// ErrPermission is returned when the caller lacks access (403).
	ErrPermission = errors.New("permission denied")

	// ErrBadRequest is returned for malformed requests (400).
	ErrBadRequest = errors.New("bad request")

	// ErrValidation is returned when the server rejects request fields (422).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when the requested entity does not exist (404).
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the request conflicts with server state (409).
	ErrConflict = errors.New("conflict")

	// ErrRateLimited is returned when the API rate limit is exceeded (429).
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServer is returned for 5xx responses.
	ErrServer = errors.New("server error")

	// ErrServiceUnavailable is returned when the API is temporarily down (503).
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrDecode is returned when a response body cannot be decoded.
	ErrDecode = errors.New("response decode failed")
)

// ErrorKind classifies an APIError by its HTTP status.
type ErrorKind = api.ErrorKind

const (
	KindBadRequest         = api.KindBadRequest
	KindAuthentication     = api.KindAuthentication
	KindPermission         = api.KindPermission
	KindNotFound           = api.KindNotFound
	KindConflict           = api.KindConflict
	KindValidation         = api.KindValidation
	KindRateLimit          = api.KindRateLimit
	KindServer             = api.KindServer
	KindServiceUnavailable = api.KindServiceUnavailable
)

// AmigoError is implemented by all SDK errors.
type AmigoError interface {
	error
	AmigoError() // marker method
}

// APIError represents an HTTP error response from the Amigo API.
type APIError struct {
	StatusCode  int
	Kind        ErrorKind
	Message     string
	FieldErrors map[string]string
	RawBody     []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// AmigoError implements the AmigoError interface.
func (e *APIError) AmigoError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.Kind {
	case KindBadRequest:
		return target == ErrBadRequest
	case KindAuthentication:
		return target == ErrAuthentication
	case KindPermission:
		return target == ErrPermission
	case KindNotFound:
		return target == ErrNotFound
	case KindConflict:
		return target == ErrConflict
	case KindValidation:
		// Validation failures are a refinement of bad requests.
		return target == ErrValidation || target == ErrBadRequest
	case KindRateLimit:
		return target == ErrRateLimited
	case KindServiceUnavailable:
		return target == ErrServiceUnavailable || target == ErrServer
	case KindServer:
		return target == ErrServer
	}
	return false
}

// AuthError represents a failure to obtain or refresh a bearer token.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthentication
}

// AmigoError implements the AmigoError interface.
func (e *AuthError) AmigoError() {}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AmigoError implements the AmigoError interface.
func (e *NetworkError) AmigoError() {}

// DecodeError represents a response body that could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("response decode failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// AmigoError implements the AmigoError interface.
func (e *DecodeError) AmigoError() {}

// wrapError converts internal API errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode:  apiErr.StatusCode,
			Kind:        apiErr.Kind,
			Message:     apiErr.Message,
			FieldErrors: apiErr.FieldErrors,
			RawBody:     apiErr.RawBody,
		}
	}

	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return &AuthError{Err: authErr.Err}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	var decErr *api.DecodeError
	if errors.As(err, &decErr) {
		return &DecodeError{Err: decErr.Err}
	}

	return err
}
