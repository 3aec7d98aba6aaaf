package router

import (
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// templateKey identifies one template handler invocation: the handler
// name and the raw, still percent-encoded segment text.
type templateKey struct {
	name    string
	segment string
}

// templateResult is a cached template handler outcome. A rejected
// segment is cached as well, so a handler is never re-asked about a
// value it already refused.
type templateResult struct {
	value    any
	rejected bool
}

// templateCache calls template handlers on behalf of all candidate
// routes of a single request. Each handler is invoked at most once per
// distinct segment text, even when several candidates reference the same
// template name. The cache lives for exactly one request.
type templateCache struct {
	request  *http.Request
	handlers map[string]TemplateHandler
	results  map[templateKey]templateResult
}

func newTemplateCache(r *http.Request, handlers map[string]TemplateHandler) *templateCache {
	return &templateCache{
		request:  r,
		handlers: handlers,
		results:  make(map[templateKey]templateResult),
	}
}

// parse resolves one pattern segment. previous holds the values parsed
// from earlier segments of the same candidate; it is not part of the
// cache key, matching the rule that the first registered candidate's
// invocation is authoritative for a given name and text.
func (c *templateCache) parse(name string, previous []any, decoded string) (any, bool) {
	key := templateKey{name: name, segment: decoded}
	result, ok := c.results[key]
	if !ok {
		value, err := c.handlers[name](c.request, previous, decoded)
		result = templateResult{value: value, rejected: err != nil}
		c.results[key] = result
	}
	if result.rejected {
		return nil, false
	}
	return result.value, true
}

// requestPath is the request path split into still-encoded segments,
// decomposed once per request and shared by all candidates.
type requestPath struct {
	segments      []string
	trailingSlash bool
}

// newRequestPath splits the escaped request path. One trailing empty
// segment, produced by a trailing slash, is stripped and recorded so
// that the slash can be restored on residual paths.
func newRequestPath(escaped string) requestPath {
	segments := splitPath(strings.TrimPrefix(escaped, "/"))
	if len(segments) > 0 && segments[len(segments)-1] == "" {
		return requestPath{segments: segments[:len(segments)-1], trailingSlash: true}
	}
	return requestPath{segments: segments}
}

// matchAttempt is the outcome of evaluating one candidate against the
// request path. It is discarded when the request completes.
type matchAttempt struct {
	matches  bool
	pathArgs []any
}

// matchPath evaluates one compiled path against the request path. When
// exact is set the lengths must be equal, otherwise the compiled path
// may be a prefix of the request path. Wildcard routes and sub-router
// mounts both use prefix matching.
//
// Each paired segment is percent-decoded before comparison. A segment
// with an invalid percent-escape makes the candidate fail to match; it
// never raises an error. Pattern segments are resolved through the
// template cache and a rejection fails only this candidate.
func matchPath(path compiledPath, req requestPath, cache *templateCache, exact bool) matchAttempt {
	if exact {
		if len(path.segments) != len(req.segments) {
			return matchAttempt{}
		}
	} else if len(path.segments) > len(req.segments) {
		return matchAttempt{}
	}

	var pathArgs []any
	for i, segment := range path.segments {
		// An invalid escape or invalid UTF-8 in a segment fails the
		// candidate instead of raising an error.
		decoded, err := url.PathUnescape(req.segments[i])
		if err != nil || !utf8.ValidString(decoded) {
			return matchAttempt{}
		}
		switch segment.kind {
		case segmentStatic:
			if segment.text != decoded {
				return matchAttempt{}
			}
		case segmentPattern:
			value, ok := cache.parse(segment.text, pathArgs, decoded)
			if !ok {
				return matchAttempt{}
			}
			pathArgs = append(pathArgs, value)
		}
	}
	return matchAttempt{matches: true, pathArgs: pathArgs}
}

// remainingPath reassembles the request segments not consumed by the
// compiled path. The result is empty for an exact match, starts with a
// slash otherwise, and ends with a slash if the original request path
// did. Segments stay percent-encoded.
func remainingPath(path compiledPath, req requestPath) string {
	var b strings.Builder
	for _, segment := range req.segments[len(path.segments):] {
		b.WriteString("/")
		b.WriteString(segment)
	}
	if req.trailingSlash {
		b.WriteString("/")
	}
	return b.String()
}
