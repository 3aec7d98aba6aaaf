package router

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/srittau/rouver/html"
	"github.com/srittau/rouver/respond"
)

// HandlerFunc is the signature of a route handler. A handler writes its
// own response and returns nil, or returns an error for the router to
// translate: *ArgumentsError renders a 400 page, *HTTPError a page for
// an arbitrary status, and any other error is treated as an internal
// server error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Route describes one registered route: a path template, an HTTP
// method, and the handler to invoke when both match.
type Route struct {
	Path    string
	Method  string
	Handler HandlerFunc
}

// route is a compiled Route.
type route struct {
	path    compiledPath
	method  string
	handler HandlerFunc
}

// subRoute is a handler mounted at a path prefix. Sub-routes are
// matched by prefix only, never by exact length or method.
type subRoute struct {
	path    compiledPath
	handler http.Handler
}

// Router dispatches requests to registered handlers. It implements
// http.Handler and can be passed directly to an HTTP server.
//
// Registration and request handling must not overlap: register all
// routes, template handlers, and sub-routers first, then serve. The
// route table is read-only during request handling, so any number of
// requests may be served concurrently.
type Router struct {
	// ErrorHandling controls the translation of unexpected errors. When
	// true (the default for New), errors and panics not covered by the
	// error taxonomy are logged and rendered as a generic 500 page. When
	// false they propagate as panics to the caller, which is usually
	// what you want in tests.
	ErrorHandling bool

	// Logger receives a record for every unhandled error when
	// ErrorHandling is enabled. Defaults to slog.Default().
	Logger *slog.Logger

	routes           []route
	subRoutes        []subRoute
	templateHandlers map[string]TemplateHandler
}

// New returns an empty router with error handling enabled.
func New() *Router {
	return &Router{
		ErrorHandling:    true,
		templateHandlers: make(map[string]TemplateHandler),
	}
}

// AddRoutes compiles and registers the given routes, appending to the
// already registered ones. Either all routes are registered or, if any
// path template is invalid, none are.
//
// Route paths may end in a "*" wildcard segment. Template names in the
// path must already have been registered with AddTemplateHandler.
func (rt *Router) AddRoutes(routes ...Route) error {
	compiled := make([]route, 0, len(routes))
	for _, r := range routes {
		path, err := compilePath(r.Path, rt.templateHandlers, true)
		if err != nil {
			return err
		}
		compiled = append(compiled, route{path: path, method: r.Method, handler: r.Handler})
	}
	rt.routes = append(rt.routes, compiled...)
	return nil
}

// AddTemplateHandler registers the template handler for {name} path
// segments. Registering the same name again overwrites the previous
// handler for routes registered afterwards.
func (rt *Router) AddTemplateHandler(name string, handler TemplateHandler) {
	rt.templateHandlers[name] = handler
}

// AddSubRouter mounts a handler at a path prefix. The prefix may
// contain template segments, but no wildcard. Sub-routers are consulted
// in mount order, and only after every directly registered route has
// failed to match the path.
//
// The mounted handler can be another Router or any other http.Handler.
// It receives a request whose URL holds only the part of the path that
// the prefix did not consume; the full path remains available through
// OriginalPath.
func (rt *Router) AddSubRouter(prefix string, handler http.Handler) error {
	path, err := compilePath(prefix, rt.templateHandlers, false)
	if err != nil {
		return err
	}
	rt.subRoutes = append(rt.subRoutes, subRoute{path: path, handler: handler})
	return nil
}

// ServeHTTP dispatches the request to the first matching route or
// sub-router and translates errors into HTTP responses. Exactly one
// response is written per request.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if rt.ErrorHandling {
		defer func() {
			if v := recover(); v != nil {
				rt.logger().Error("error while handling request",
					"method", r.Method, "path", r.URL.Path, "error", v)
				respond.WithHTML(w, http.StatusInternalServerError,
					html.StatusPage(http.StatusInternalServerError, "Internal server error."))
			}
		}()
	}
	rt.dispatch(w, r)
}

func (rt *Router) logger() *slog.Logger {
	if rt.Logger != nil {
		return rt.Logger
	}
	return slog.Default()
}

// dispatch decomposes the request path once, evaluates every route,
// resolves method conflicts, and falls back to sub-routers.
func (rt *Router) dispatch(w http.ResponseWriter, r *http.Request) {
	reqPath := newRequestPath(r.URL.EscapedPath())
	cache := newTemplateCache(r, rt.templateHandlers)

	var selected *route
	var selectedArgs []any
	var structuralMethods []string
	for i := range rt.routes {
		candidate := &rt.routes[i]
		attempt := matchPath(candidate.path, reqPath, cache, !candidate.path.wildcard)
		if !attempt.matches {
			continue
		}
		structuralMethods = append(structuralMethods, candidate.method)
		if selected == nil && candidate.method == r.Method {
			selected = candidate
			selectedArgs = attempt.pathArgs
		}
	}
	if selected != nil {
		rt.invokeHandler(w, r, selected, selectedArgs, remainingPath(selected.path, reqPath))
		return
	}
	if len(structuralMethods) > 0 {
		respondMethodNotAllowed(w, r.Method, sortedUniqueMethods(structuralMethods))
		return
	}

	for i := range rt.subRoutes {
		candidate := &rt.subRoutes[i]
		attempt := matchPath(candidate.path, reqPath, cache, false)
		if attempt.matches {
			rt.invokeSubRouter(w, r, candidate, remainingPath(candidate.path, reqPath))
			return
		}
	}

	respondNotFound(w, r.URL.Path)
}

// invokeHandler calls a resolved route handler and translates returned
// errors exactly once. Errors outside the taxonomy are re-raised as
// panics so that the ErrorHandling toggle decides their fate.
func (rt *Router) invokeHandler(w http.ResponseWriter, r *http.Request, rte *route, pathArgs []any, wildcardPath string) {
	err := rte.handler(w, withRouteContext(r, pathArgs, wildcardPath))
	if err == nil {
		return
	}
	var argsErr *ArgumentsError
	var httpErr *HTTPError
	switch {
	case errors.As(err, &argsErr):
		respond.WithHTML(w, http.StatusBadRequest, html.BadArgumentsPage(argsErr.Arguments))
	case errors.As(err, &httpErr):
		respondHTTPError(w, httpErr)
	default:
		panic(err)
	}
}

// invokeSubRouter hands the request to a mounted handler with the URL
// rewritten to the residual path. Both the decoded and the encoded form
// of the residual are carried, so a nested router sees the same bytes
// the outer router did.
func (rt *Router) invokeSubRouter(w http.ResponseWriter, r *http.Request, sub *subRoute, residual string) {
	nested := r.Clone(r.Context())
	nested = withOriginalPath(nested, r.URL.EscapedPath())

	u := *r.URL
	u.RawPath = residual
	if decoded, err := url.PathUnescape(residual); err == nil {
		u.Path = decoded
	} else {
		u.Path = residual
	}
	nested.URL = &u

	sub.handler.ServeHTTP(w, nested)
}

// sortedUniqueMethods returns the methods sorted and deduplicated, as
// required for the Allow header field.
func sortedUniqueMethods(methods []string) []string {
	slices.Sort(methods)
	return slices.Compact(methods)
}

func respondNotFound(w http.ResponseWriter, path string) {
	message := "Path '" + path + "' not found."
	respond.WithHTML(w, http.StatusNotFound, html.StatusPage(http.StatusNotFound, message))
}

func respondMethodNotAllowed(w http.ResponseWriter, method string, allowed []string) {
	message := "Method '" + method + "' not allowed. Please try " +
		strings.Join(allowed, " or ") + "."
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	respond.WithHTML(w, http.StatusMethodNotAllowed,
		html.StatusPage(http.StatusMethodNotAllowed, message))
}

// respondHTTPError renders a status page for an HTTPError. Header
// fields from the error are copied to the response, except for
// Content-Type, which belongs to the rendered page.
func respondHTTPError(w http.ResponseWriter, err *HTTPError) {
	for name, values := range err.Header {
		if http.CanonicalHeaderKey(name) == "Content-Type" {
			continue
		}
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}
	respond.WithHTML(w, err.Status, html.StatusPage(err.Status, err.Message))
}
