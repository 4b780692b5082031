package api

import (
	"errors"
	"fmt"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrAuthentication indicates the credentials or bearer token were rejected.
	ErrAuthentication = errors.New("authentication failed")
	// ErrPermission indicates the caller lacks access to the resource.
	ErrPermission = errors.New("permission denied")
	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("bad request")
	// ErrValidation indicates the request body failed server-side validation.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates the request conflicts with current resource state.
	ErrConflict = errors.New("conflict")
	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrServer indicates a 5xx response from the API.
	ErrServer = errors.New("server error")
	// ErrServiceUnavailable indicates the API is temporarily unavailable.
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrDecode indicates a local failure decoding an otherwise successful response.
	ErrDecode = errors.New("decode error")
)

// ErrorKind classifies an API error by status-code family.
type ErrorKind string

const (
	KindBadRequest         ErrorKind = "bad_request"
	KindAuthentication     ErrorKind = "authentication"
	KindPermission         ErrorKind = "permission"
	KindNotFound           ErrorKind = "not_found"
	KindConflict           ErrorKind = "conflict"
	KindValidation         ErrorKind = "validation"
	KindRateLimit          ErrorKind = "rate_limit"
	KindServer             ErrorKind = "server"
	KindServiceUnavailable ErrorKind = "service_unavailable"
)

// KindForStatus returns the error kind for an HTTP status code.
// Unlisted 4xx codes map to bad_request, unlisted 5xx codes to server.
func KindForStatus(status int) ErrorKind {
	switch status {
	case 400:
		return KindBadRequest
	case 401:
		return KindAuthentication
	case 403:
		return KindPermission
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	case 422:
		return KindValidation
	case 429:
		return KindRateLimit
	case 503:
		return KindServiceUnavailable
	}
	if status >= 500 {
		return KindServer
	}
	return KindBadRequest
}

// APIError represents a non-2xx HTTP response from the Amigo API.
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

// Is implements errors.Is for sentinel error matching. Validation
// errors also match ErrBadRequest, and 503 also matches ErrServer.
func (e *APIError) Is(target error) bool {
	switch e.Kind {
	case KindAuthentication:
		return target == ErrAuthentication
	case KindPermission:
		return target == ErrPermission
	case KindBadRequest:
		return target == ErrBadRequest
	case KindValidation:
		return target == ErrValidation || target == ErrBadRequest
	case KindNotFound:
		return target == ErrNotFound
	case KindConflict:
		return target == ErrConflict
	case KindRateLimit:
		return target == ErrRateLimited
	case KindServer:
		return target == ErrServer
	case KindServiceUnavailable:
		return target == ErrServiceUnavailable || target == ErrServer
	}
	return false
}

// AuthError represents a failure of the API-key sign-in exchange:
// a network error, non-2xx response, or malformed token body.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("API-key exchange failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthentication
}

// NetworkError represents a transport-level failure: no response was
// received from the server.
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

// DecodeError represents a local failure decoding a 2xx response body.
// It is never used for server-reported errors.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
