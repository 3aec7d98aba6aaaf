package respond

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/srittau/rouver/html"
)

// Respond writes a response without a body, as appropriate for 204 No
// Content and similar statuses. A non-empty contentType sets the
// Content-Type header. Further header fields can be set on w before the
// call.
func Respond(w http.ResponseWriter, status int, contentType string) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(status)
}

// WithContent writes body with the given status and Content-Type. The
// Content-Length header is derived from the body.
func WithContent(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	w.Write(body)
}

// WithHTML writes an HTML body with the given status.
func WithHTML(w http.ResponseWriter, status int, page string) {
	WithContent(w, status, "text/html; charset=utf-8", []byte(page))
}

// WithJSON writes a JSON body with the given status. v can be a string
// or byte slice containing already encoded JSON, or any value that can
// be encoded with encoding/json. If encoding fails, a plain 500
// response is written instead.
func WithJSON(w http.ResponseWriter, status int, v any) {
	var body []byte
	switch value := v.(type) {
	case []byte:
		body = value
	case string:
		body = []byte(value)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError),
				http.StatusInternalServerError)
			return
		}
		body = encoded
	}
	WithContent(w, status, "application/json; charset=utf-8", body)
}

// AbsoluteURL constructs an absolute URL from the request URL and a
// path. An absolute path replaces the request path, a relative path is
// resolved against it.
func AbsoluteURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	base := &url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path}
	return base.ResolveReference(&url.URL{Path: path}).String()
}

// CreatedAt writes a 201 Created response with a Location header
// pointing to urlPart, resolved against the request URL, and a simple
// HTML body linking there.
func CreatedAt(w http.ResponseWriter, r *http.Request, urlPart string) {
	u := AbsoluteURL(r, urlPart)
	w.Header().Set("Location", u)
	WithHTML(w, http.StatusCreated, html.CreatedAtPage(u))
}

// CreatedAsJSON writes a 201 Created response with a Location header
// pointing to urlPart and a JSON body.
func CreatedAsJSON(w http.ResponseWriter, r *http.Request, urlPart string, v any) {
	w.Header().Set("Location", AbsoluteURL(r, urlPart))
	WithJSON(w, http.StatusCreated, v)
}

// TemporaryRedirect writes a 307 Temporary Redirect response pointing
// to urlPart, resolved against the request URL.
func TemporaryRedirect(w http.ResponseWriter, r *http.Request, urlPart string) {
	u := AbsoluteURL(r, urlPart)
	w.Header().Set("Location", u)
	WithHTML(w, http.StatusTemporaryRedirect, html.TemporaryRedirectPage(u))
}

// SeeOther writes a 303 See Other response pointing to urlPart,
// resolved against the request URL.
func SeeOther(w http.ResponseWriter, r *http.Request, urlPart string) {
	u := AbsoluteURL(r, urlPart)
	w.Header().Set("Location", u)
	WithHTML(w, http.StatusSeeOther, html.SeeOtherPage(u))
}
