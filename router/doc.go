// Package router implements a request router and dispatcher that matches
// incoming HTTP requests against registered path templates and invokes the
// corresponding handler.
//
// Routing semantics follow:
//   - RFC 9110 (HTTP Semantics), in particular 404 Not Found,
//     405 Method Not Allowed, and the Allow header field
//   - RFC 3986 (URIs), in particular percent-encoding of path segments
//
// # Routes
//
// Create a router and register routes with an HTTP method, a path
// template, and a handler:
//
//	rt := router.New()
//	rt.AddRoutes(
//		router.Route{Path: "", Method: http.MethodGet, Handler: index},
//		router.Route{Path: "news/item", Method: http.MethodGet, Handler: newsItem},
//	)
//	http.ListenAndServe(":8080", rt)
//
// Path templates do not start with a slash. The empty template matches
// the root path. Routes are tried in registration order; the first route
// whose path and method both match handles the request. If at least one
// route matches the path but none matches the method, the router responds
// with 405 Method Not Allowed and an Allow header listing the matching
// methods. If no route matches at all, the router responds with 404.
//
// # Path Templates
//
// A template segment of the form {name} is parsed by the template handler
// registered under that name. Template handlers turn the raw segment text
// into a typed value and can reject a segment, which makes only that
// candidate route fail to match:
//
//	rt.AddTemplateHandler("item_id", router.IntTemplate)
//	rt.AddRoutes(router.Route{
//		Path: "news/{item_id}", Method: http.MethodGet, Handler: newsItem,
//	})
//
// The parsed values are available to the handler in registration order:
//
//	func newsItem(w http.ResponseWriter, r *http.Request) error {
//		id := router.PathArgs(r)[0].(int)
//		...
//	}
//
// A template handler receives the values parsed from earlier segments of
// the same candidate, so later segments can depend on earlier ones. During
// a single request each template handler is called at most once per
// distinct segment text, even when several candidate routes share the
// same template name.
//
// # Wildcards
//
// A route template may end in a "*" segment, which matches any number of
// additional path segments. The unconsumed remainder is available through
// WildcardPath:
//
//	rt.AddRoutes(router.Route{
//		Path: "files/*", Method: http.MethodGet, Handler: serveFile,
//	})
//
// # Sub-routers
//
// Any http.Handler, including another Router, can be mounted at a path
// prefix. Sub-routers are consulted only after all directly registered
// routes have failed to match, in mount order. The mounted handler
// receives a request whose URL contains only the unconsumed remainder of
// the path; the original path is available through OriginalPath.
//
//	sub := router.New()
//	sub.AddRoutes(router.Route{Path: "item", Method: http.MethodGet, Handler: h})
//	rt.AddSubRouter("news", sub)
//
// # Error Handling
//
// Handlers return an error. *ArgumentsError renders a 400 page with an
// itemized list of offending arguments, *HTTPError renders a page for an
// arbitrary status with pass-through headers. Any other error, and any
// panic raised by a handler or template handler, is logged and rendered
// as a generic 500 page. Setting ErrorHandling to false disables this
// last translation so that unexpected errors propagate to the caller,
// which is useful in tests.
package router
