package discogs

import (
	"errors"
	"fmt"
	"net/http"
)

// ConfigError is returned by NewClient when the configuration is unusable.
type ConfigError struct {
	Field  string // Config field at fault
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("discogs: invalid config: %s %s", e.Field, e.Reason)
}

// NotFoundError is returned when the API answers 404 for a requested ID.
type NotFoundError struct {
	ID        int
	URLPrefix string // e.g. "https://api.discogs.com/artists/"
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("discogs: %d was not found in %s", e.ID, e.URLPrefix)
}

// FetchError represents a response that could not be turned into an entity:
// a non-success status other than 404, or a body that is not a JSON object.
type FetchError struct {
	StatusCode int
	URL        string // Request URL without credentials
	Err        error  // Optional cause
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("discogs: fetching %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("discogs: fetching %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Temporary reports whether the status suggests the request may succeed
// later. The client never retries on its own; this is for callers that
// want to.
func (e *FetchError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// TransportError wraps a network-level failure that happened before any
// status code was received.
type TransportError struct {
	URL string // Request URL without credentials
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("discogs: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the underlying error was a timeout.
func (e *TransportError) Timeout() bool {
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// MissingFieldError is returned when a declared field is absent from the
// payload. A present field holding null is not an error.
type MissingFieldError struct {
	Kind  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("discogs: the %q attribute is not in the %s payload", e.Field, e.Kind)
}

// UnknownTypeError is returned when a type name is not in the registry.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("discogs: unknown type %q", e.Name)
}

// UndeclaredFieldError is returned when asking an entity for a field its
// type does not declare.
type UndeclaredFieldError struct {
	Kind  string
	Field string
}

func (e *UndeclaredFieldError) Error() string {
	return fmt.Sprintf("discogs: %s has no field %q", e.Kind, e.Field)
}

// FieldTypeError is returned when a field's JSON value does not have the
// shape the caller or the schema expects.
type FieldTypeError struct {
	Kind  string
	Field string
	Want  string
	Got   any
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("discogs: %s.%s: want %s, got %s", e.Kind, e.Field, e.Want, jsonTypeName(e.Got))
}

// Predefined errors for common cases.
var (
	// ErrInvalidID is returned for IDs that cannot exist upstream (<= 0).
	ErrInvalidID = errors.New("discogs: invalid id")

	// ErrNoEndpoint is returned by Fetch for kinds that are only ever
	// embedded in other payloads (Track, Image).
	ErrNoEndpoint = errors.New("discogs: kind has no endpoint")
)

// jsonTypeName names the JSON type of a decoded value.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any, Payload:
		return "object"
	default:
		return "number"
	}
}
