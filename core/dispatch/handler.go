package dispatch

import "github.com/vexhttp/vex/core/http"

// Handler is a unit of work that turns a request into something
// convertible into a response. Handlers are stored behind shared
// interface references, so one instance may back any number of
// resolved routes and must be safe for concurrent use.
type Handler interface {
	Serve(ctx *Context, req *http.Request) http.Responder
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx *Context, req *http.Request) http.Responder

func (f HandlerFunc) Serve(ctx *Context, req *http.Request) http.Responder {
	return f(ctx, req)
}
