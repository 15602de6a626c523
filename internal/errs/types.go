package errs

import (
	"net/http"
)

// MessageNotFound is the body text for requests no route accepts.
const MessageNotFound = "not found"

// MessageInternalServerError is the body text for unrecoverable faults.
const MessageInternalServerError = "internal server error"

// NewBadRequestError creates a 400 rendered as {"error": message}.
//
// code is optional; when nil it defaults to "BAD_REQUEST".
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Envelope: EnvelopeError,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 with an empty body, used when a row does
// not exist.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Envelope: EnvelopeNone,
	}
}

// NewRouteNotFoundError creates the 404 {"message": "not found"} returned
// for any request that no route accepts: unknown path, wrong method, wrong
// content type, or an id segment that is not an integer.
func NewRouteNotFoundError() *HTTPError {
	return &HTTPError{
		Code:     "ROUTE_NOT_FOUND",
		Message:  MessageNotFound,
		Status:   http.StatusNotFound,
		Envelope: EnvelopeMessage,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is generic; the real cause is only logged.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  MessageInternalServerError,
		Status:   http.StatusInternalServerError,
		Envelope: EnvelopeMessage,
	}
}
