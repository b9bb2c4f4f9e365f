// Package router maps (method, host, path) triples onto handlers. A
// Builder accumulates route definitions through nested prefix, host
// and middleware groups; Build flattens them into an immutable Router
// that is safe for concurrent lookups.
package router

import (
	"errors"

	"github.com/vexhttp/vex/core/dispatch"
	"github.com/vexhttp/vex/core/http"
)

var (
	// ErrNotFound means no route matches the host, method and path.
	ErrNotFound = errors.New("no matching route")
	// ErrMethodNotAllowed means the host and path match a route
	// registered under a different method.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Route is a fully-resolved route: prefix, host and middleware
// inheritance has been applied and the path is normalized.
type Route struct {
	Method  http.Method
	Path    string
	Host    string
	Handler dispatch.Handler

	// Middleware applicable to this route, outermost first.
	Middleware []dispatch.Middleware
}

// MatchedRoute is the result of a router lookup: the route plus the
// merged host and path placeholder captures. Path captures overwrite
// host captures on a name collision.
type MatchedRoute struct {
	Route  *Route
	Params map[string]string
}
