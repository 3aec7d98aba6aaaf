package router

import (
	"context"
	"net/http"
	"net/url"
)

type contextKey int

const (
	pathArgsKey contextKey = iota
	wildcardPathKey
	originalPathKey
)

// PathArgs returns the values parsed by template handlers for the
// matched route, in path order. It returns nil for requests that were
// not dispatched through a Router or whose route has no template
// segments.
func PathArgs(r *http.Request) []any {
	args, _ := r.Context().Value(pathArgsKey).([]any)
	return args
}

// WildcardPath returns the percent-decoded residual path of a wildcard
// route, for example "/abc/def" for a request to "/foo/abc/def" matched
// by the route "foo/*". It returns the empty string when the matched
// route consumed the whole path. Segments that cannot be decoded are
// left encoded.
func WildcardPath(r *http.Request) string {
	raw := RawWildcardPath(r)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// RawWildcardPath returns the residual path of a wildcard route with
// percent-encoding intact.
func RawWildcardPath(r *http.Request) string {
	path, _ := r.Context().Value(wildcardPathKey).(string)
	return path
}

// OriginalPath returns the full request path as seen by the outermost
// router. Inside a sub-router the request URL contains only the residual
// path; this accessor recovers the original for diagnostics. For
// requests that never passed through a sub-router it returns the empty
// string.
func OriginalPath(r *http.Request) string {
	path, _ := r.Context().Value(originalPathKey).(string)
	return path
}

// withRouteContext stores the parsed path arguments and the residual
// wildcard path for a resolved route handler.
func withRouteContext(r *http.Request, pathArgs []any, wildcardPath string) *http.Request {
	ctx := context.WithValue(r.Context(), pathArgsKey, pathArgs)
	ctx = context.WithValue(ctx, wildcardPathKey, wildcardPath)
	return r.WithContext(ctx)
}

// withOriginalPath records the outermost request path before a
// sub-router rewrite. Only the first rewrite wins, so nested sub-routers
// keep reporting the true original path.
func withOriginalPath(r *http.Request, path string) *http.Request {
	if _, ok := r.Context().Value(originalPathKey).(string); ok {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), originalPathKey, path))
}
