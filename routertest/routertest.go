package routertest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// Response wraps a recorded response for inspection.
type Response struct {
	*httptest.ResponseRecorder
}

// Do serves the request with the given handler and records the
// response.
func Do(handler http.Handler, r *http.Request) *Response {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return &Response{ResponseRecorder: w}
}

// Get serves a GET request for the given path, which may contain
// percent-encoded segments.
func Get(handler http.Handler, path string) *Response {
	return Do(handler, httptest.NewRequest(http.MethodGet, path, nil))
}

// BodyString returns the recorded response body as a string.
func (r *Response) BodyString() string {
	return r.Body.String()
}

// DecodeJSON decodes the recorded response body into v.
func (r *Response) DecodeJSON(v any) error {
	return json.Unmarshal(r.Body.Bytes(), v)
}

// RedirectsTo asserts that the recorded response has the given status
// and that its Location header points at location. A location without a
// scheme is compared against the path, query, and fragment portion of
// the header only.
func (r *Response) RedirectsTo(t testing.TB, status int, location string) {
	t.Helper()
	assert.Equal(t, status, r.Code)
	header := r.Header().Get("Location")
	require.NotEmpty(t, header, "missing Location header")
	if !strings.Contains(location, ":") {
		u, err := url.Parse(header)
		require.NoError(t, err)
		header = u.Path
		if u.RawQuery != "" {
			header += "?" + u.RawQuery
		}
		if u.Fragment != "" {
			header += "#" + u.Fragment
		}
	}
	assert.Equal(t, location, header)
}

// HTMLTitle parses the recorded body as HTML and returns the text of
// its title element. It returns an error if the body is not parseable
// or contains no title.
func (r *Response) HTMLTitle() (string, error) {
	return pageTitle(strings.NewReader(r.Body.String()))
}

func pageTitle(body io.Reader) (string, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return "", err
	}
	title, ok := findTitle(doc)
	if !ok {
		return "", fmt.Errorf("document has no title")
	}
	return title, nil
}

func findTitle(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "title" {
		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
		return b.String(), true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title, ok := findTitle(c); ok {
			return title, true
		}
	}
	return "", false
}
