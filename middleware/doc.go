// Package middleware provides http.Handler wrappers commonly placed in
// front of a router: request ID generation, panic recovery, and access
// logging. All middleware works with any http.Handler, including
// foreign sub-applications mounted on a router.
package middleware
