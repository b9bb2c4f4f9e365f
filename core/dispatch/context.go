// Package dispatch holds the handler abstraction and the middleware
// chain that runs around every matched route.
package dispatch

import (
	"github.com/go-kit/log"

	"github.com/vexhttp/vex/config"
	"github.com/vexhttp/vex/session"
)

// Context is the shared application bundle handed to every handler and
// middleware alongside the request. It is assembled once before the
// server starts accepting and is read-only for the serving lifetime;
// anything mutable reachable from it (the session store, a DB pool in
// Values) must carry its own synchronization.
type Context struct {
	Config   *config.Config
	Log      log.Logger
	Sessions session.Store

	// Values carries opaque, externally-managed resource handles
	// (database pools and the like) for the embedding application.
	Values map[string]any
}
