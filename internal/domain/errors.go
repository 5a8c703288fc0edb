package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for calls against the backend API. An *APIError matches
// exactly one of them through errors.Is.
var (
	ErrNetworkFailure = errors.New("network failure")
	ErrHTTP           = errors.New("unexpected http status")
	ErrDecodeFailure  = errors.New("malformed response body")
	ErrUnauthorized   = errors.New("unauthorized")
)

// ErrorKind classifies an APIError.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindHTTP
	KindDecode
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// APIError is returned by every API client call that fails.
type APIError struct {
	Kind   ErrorKind
	Status int
	// Body is the message extracted from the response, if any.
	Body string
	Err  error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindHTTP, KindUnauthorized:
		if e.Body == "" {
			return fmt.Sprintf("api request failed with status %d", e.Status)
		}
		return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Body)
	case KindDecode:
		return fmt.Sprintf("decode response: %v", e.Err)
	default:
		return fmt.Sprintf("perform request: %v", e.Err)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// Is lets errors.Is match the sentinel of the error's kind.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNetworkFailure:
		return e.Kind == KindNetwork
	case ErrHTTP:
		return e.Kind == KindHTTP || e.Kind == KindUnauthorized
	case ErrDecodeFailure:
		return e.Kind == KindDecode
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
