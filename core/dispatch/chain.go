package dispatch

import (
	"github.com/go-kit/log/level"
	"github.com/go-stack/stack"

	"github.com/vexhttp/vex/core/http"
)

// Next invokes the remainder of a middleware chain.
type Next func(req *http.Request) *http.Response

// Middleware wraps a handler invocation. It may inspect or replace the
// request before calling next, transform the response after next
// returns, or short-circuit by never calling next at all.
type Middleware func(ctx *Context, req *http.Request, next Next) http.Responder

// Chain composes the middleware onion for one request: the terminal
// link invokes the handler inside a failure boundary, route middleware
// wrap outermost in registration order, and global middleware sit
// innermost, directly around the handler invocation. The chain is
// cheap to build and is composed fresh per request.
func Chain(ctx *Context, h Handler, route, global []Middleware) Next {
	next := terminal(ctx, h)

	mws := make([]Middleware, 0, len(route)+len(global))
	mws = append(mws, route...)
	mws = append(mws, global...)

	for i := len(mws) - 1; i >= 0; i-- {
		mw, inner := mws[i], next
		next = func(req *http.Request) *http.Response {
			return toResponse(mw(ctx, req, inner))
		}
	}

	return next
}

// terminal wraps the handler invocation in the single failure boundary
// of the pipeline. A panic anywhere below it (the handler itself or
// its Responder conversion) is logged with its location and converted
// to a 500; diagnostics never reach the response body.
func terminal(ctx *Context, h Handler) Next {
	return func(req *http.Request) (res *http.Response) {
		defer func() {
			if rec := recover(); rec != nil {
				level.Error(ctx.Log).Log(
					"event", "handler panicked",
					"method", req.Method(),
					"path", req.Path(),
					"reason", rec,
					"stack", stack.Trace().TrimRuntime().String(),
				)
				res = http.StatusInternalServerError.Response()
			}
		}()
		return toResponse(h.Serve(ctx, req))
	}
}

func toResponse(r http.Responder) *http.Response {
	if r == nil {
		return http.NewResponse()
	}
	return r.Response()
}
