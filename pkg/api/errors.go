package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind represents the category of a backend adaptation error.
type ErrorKind string

const (
	ErrorKindHeader            ErrorKind = "header_error"
	ErrorKindMalformedResponse ErrorKind = "malformed_response"
	ErrorKindInvalidBackend    ErrorKind = "invalid_backend"
	ErrorKindHuggingFace       ErrorKind = "huggingface_error"
	ErrorKindTGI               ErrorKind = "tgi_error"
	ErrorKindOllama            ErrorKind = "ollama_error"
	ErrorKindOpenAI            ErrorKind = "openai_error"
	ErrorKindTransport         ErrorKind = "transport_error"
)

// Error is a typed error returned by header construction, response parsing,
// or the transport client. Message carries the provider's natural message
// and is meant to be surfaced verbatim.
type Error struct {
	Kind    ErrorKind          `json:"kind"`
	Message string             `json:"message"`
	Details []ValidationDetail `json:"details,omitempty"`
	Cause   error              `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// NewHeaderError creates an Error for a header value that cannot be sent.
func NewHeaderError(header string, cause error) *Error {
	return &Error{
		Kind:    ErrorKindHeader,
		Message: fmt.Sprintf("invalid value for header %s", header),
		Cause:   cause,
	}
}

// NewMalformedResponseError creates an Error for a response body that does
// not decode into any known shape.
func NewMalformedResponseError(message string, cause error) *Error {
	return &Error{
		Kind:    ErrorKindMalformedResponse,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidBackendError creates an Error for a backend selector outside the
// supported set.
func NewInvalidBackendError(kind string) *Error {
	return &Error{
		Kind:    ErrorKindInvalidBackend,
		Message: fmt.Sprintf("unknown backend %q", kind),
	}
}

// NewHuggingFaceError creates an Error for an error payload returned by the
// HuggingFace inference API.
func NewHuggingFaceError(message string) *Error {
	return &Error{
		Kind:    ErrorKindHuggingFace,
		Message: message,
	}
}

// NewTGIError creates an Error for an error payload returned by a
// text-generation-inference server.
func NewTGIError(message string) *Error {
	return &Error{
		Kind:    ErrorKindTGI,
		Message: message,
	}
}

// NewOllamaError creates an Error for an error payload returned by a local
// model server.
func NewOllamaError(message string) *Error {
	return &Error{
		Kind:    ErrorKindOllama,
		Message: message,
	}
}

// NewOpenAIError creates an Error from the validation details returned by an
// OpenAI-compatible server. The message is the rendered detail list.
func NewOpenAIError(details []ValidationDetail) *Error {
	return &Error{
		Kind:    ErrorKindOpenAI,
		Message: RenderDetails(details),
		Details: details,
	}
}

// NewTransportError creates an Error for a network-level failure.
func NewTransportError(cause error) *Error {
	return &Error{
		Kind:    ErrorKindTransport,
		Message: fmt.Sprintf("backend connection error: %s", cause.Error()),
		Cause:   cause,
	}
}

// ValidationDetail is one record of an OpenAI-compatible validation error.
type ValidationDetail struct {
	Loc  ErrorLocation `json:"loc"`
	Msg  string        `json:"msg"`
	Type string        `json:"type"`
}

// String renders the detail as "{loc}: {msg} ({type})".
func (d ValidationDetail) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Loc, d.Msg, d.Type)
}

// RenderDetails joins details one per line.
func RenderDetails(details []ValidationDetail) string {
	lines := make([]string, len(details))
	for i, d := range details {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// ErrorLocation is the location of a validation record: either a field
// name or a positional index.
type ErrorLocation struct {
	Name    string
	Index   uint32
	IsIndex bool
}

// LocationName returns a named location.
func LocationName(name string) ErrorLocation {
	return ErrorLocation{Name: name}
}

// LocationIndex returns a positional location.
func LocationIndex(index uint32) ErrorLocation {
	return ErrorLocation{Index: index, IsIndex: true}
}

// String returns the natural string form of the location.
func (l ErrorLocation) String() string {
	if l.IsIndex {
		return strconv.FormatUint(uint64(l.Index), 10)
	}
	return l.Name
}

// MarshalJSON encodes the location as a JSON string or number.
func (l ErrorLocation) MarshalJSON() ([]byte, error) {
	if l.IsIndex {
		return json.Marshal(l.Index)
	}
	return json.Marshal(l.Name)
}

// UnmarshalJSON accepts a JSON string or a non-negative integer that fits
// in 32 bits. Anything else is rejected.
func (l *ErrorLocation) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil && !isNull(data) {
		*l = LocationName(name)
		return nil
	}
	var index uint32
	if err := json.Unmarshal(data, &index); err == nil && !isNull(data) {
		*l = LocationIndex(index)
		return nil
	}
	return fmt.Errorf("error location must be a string or an unsigned integer, got %s", data)
}

func isNull(data []byte) bool {
	return strings.TrimSpace(string(data)) == "null"
}
