package router

import (
	"fmt"
	"net/http"
)

// HTTPError is returned by handlers to produce a response with an
// arbitrary HTTP status. The router renders an HTML status page for it.
//
// Header fields are copied to the response, except for Content-Type,
// which is always determined by the rendered page.
type HTTPError struct {
	// Status is the HTTP status code, for example http.StatusUnauthorized.
	Status int

	// Message is rendered, HTML-escaped, on the status page. It may be
	// empty.
	Message string

	// Header lists additional response header fields, for example
	// WWW-Authenticate.
	Header http.Header
}

// NewHTTPError returns an HTTPError with the given status and message
// and no additional headers.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
}

// ArgumentsError is returned by handlers when one or more request
// arguments were invalid. Keys are the argument names that have errors,
// values are messages describing the problem.
//
// The router renders an ArgumentsError as a 400 Bad Request page with an
// itemized list of arguments.
type ArgumentsError struct {
	Arguments map[string]string
}

// NewArgumentsError returns an ArgumentsError for the given
// name-to-message mapping.
func NewArgumentsError(arguments map[string]string) *ArgumentsError {
	return &ArgumentsError{Arguments: arguments}
}

func (e *ArgumentsError) Error() string {
	return "invalid arguments"
}
