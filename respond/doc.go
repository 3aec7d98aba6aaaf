// Package respond provides small helpers for writing HTTP responses:
// content with the appropriate Content-Type and Content-Length header
// fields, JSON and HTML bodies, and redirect and creation responses
// with a Location header derived from the request URL.
package respond
