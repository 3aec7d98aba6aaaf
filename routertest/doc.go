// Package routertest provides helpers for testing handlers and
// routers: driving an http.Handler through httptest and inspecting the
// recorded response, including the generated HTML pages.
package routertest
