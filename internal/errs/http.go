package errs

import "strings"

// Envelope selects the JSON shape of an error response body.
type Envelope int

const (
	// EnvelopeNone renders no body at all.
	EnvelopeNone Envelope = iota

	// EnvelopeError renders {"error": "<message>"}, used for handler-level
	// client errors.
	EnvelopeError

	// EnvelopeMessage renders {"message": "<message>"}, used for routing
	// misses and server faults.
	EnvelopeMessage
)

// ErrorBody is the {"error": ...} envelope.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the {"message": ...} envelope.
type MessageBody struct {
	Message string `json:"message"`
}

// FieldError describes a single invalid field of a request payload.
//
//	{ "field": "age", "error": "must be at least 0" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type returned by handlers and services.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged only.
//   - Message: the text placed in the envelope.
//   - Status: HTTP status code.
//   - Envelope: how the body is rendered.
//   - Errors: per-field validation details, logged only.
type HTTPError struct {
	Code     string
	Message  string
	Status   int
	Envelope Envelope
	Errors   []FieldError
}

// Error returns the Message so logging the error shows what the client saw.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is returns true if target is also a *HTTPError.
//
// It does not compare Code or Status; it only checks the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Body returns the value to serialize as the response body, or nil when the
// response has no body.
func (e *HTTPError) Body() any {
	switch e.Envelope {
	case EnvelopeError:
		return ErrorBody{Error: e.Message}
	case EnvelopeMessage:
		return MessageBody{Message: e.Message}
	default:
		return nil
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
