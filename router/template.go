package router

import (
	"fmt"
	"net/http"
	"strings"
)

// TemplateHandler parses a single path segment into a value. It receives
// the current request, the values parsed from the preceding template
// segments of the same candidate route, and the percent-decoded segment
// text.
//
// Returning a non-nil error rejects the segment: the candidate route does
// not match and route evaluation continues with the remaining candidates.
// The error itself is discarded.
type TemplateHandler func(r *http.Request, previous []any, segment string) (any, error)

// segmentKind distinguishes the two path segment variants.
type segmentKind int

const (
	segmentStatic segmentKind = iota
	segmentPattern
)

// pathSegment is one compiled template segment: either static text or a
// pattern backed by the template handler registered under text.
type pathSegment struct {
	kind segmentKind
	text string
}

// compiledPath is an ordered list of segments plus a flag indicating that
// the original template ended in "*".
type compiledPath struct {
	segments []pathSegment
	wildcard bool
}

// splitPath splits a path string on slashes. The empty string yields no
// segments, so the empty route template matches the root path.
func splitPath(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

// compilePath parses a route path template. A trailing "*" segment is
// accepted only when allowWildcard is set. Every {name} segment must
// refer to a registered template handler. Errors are reported to the
// caller registering the route, never deferred to request time.
func compilePath(template string, handlers map[string]TemplateHandler, allowWildcard bool) (compiledPath, error) {
	parts := splitPath(template)

	var wildcard bool
	if allowWildcard && len(parts) > 0 && parts[len(parts)-1] == "*" {
		parts = parts[:len(parts)-1]
		wildcard = true
	}

	segments := make([]pathSegment, 0, len(parts))
	for _, part := range parts {
		segment, err := compileSegment(part, handlers)
		if err != nil {
			return compiledPath{}, fmt.Errorf("invalid path %q: %w", template, err)
		}
		segments = append(segments, segment)
	}
	return compiledPath{segments: segments, wildcard: wildcard}, nil
}

func compileSegment(part string, handlers map[string]TemplateHandler) (pathSegment, error) {
	if part == "*" {
		return pathSegment{}, fmt.Errorf("wildcard not at end of path")
	}
	if name, ok := strings.CutPrefix(part, "{"); ok {
		if name, ok = strings.CutSuffix(name, "}"); ok {
			if _, known := handlers[name]; !known {
				return pathSegment{}, fmt.Errorf("unknown template path handler %q", name)
			}
			return pathSegment{kind: segmentPattern, text: name}, nil
		}
	}
	return pathSegment{kind: segmentStatic, text: part}, nil
}
