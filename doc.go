/*
Package vex is a small host-aware HTTP framework built around three
pieces: a host/method/path router with parameterized matching, a
composable middleware chain assembled from nested route groups, and a
synchronous per-connection server that isolates handler failures.

Routing

Routes are declared on a builder. Prefix, Host and Middleware open
nested groups whose contributions compound onto every route defined
inside them:

	b := router.NewBuilder("example.com").
	    Get("/", home).
	    Prefix("/posts", func(b *router.Builder) *router.Builder {
	        return b.
	            Get("/", listPosts).
	            Get("/{id}", showPost)
	    }).
	    Host("{tenant}.example.com", func(b *router.Builder) *router.Builder {
	        return b.Get("/", tenantHome)
	    })

	rt, err := b.Build()

Path patterns use "{name}" placeholders and a single-segment "*"
wildcard; host patterns use the same placeholder syntax, where a
capture never crosses a dot. Placeholder captures from the host and
path are merged into the request's params, path winning on a name
collision.

Handlers

A handler takes the shared application context and the request and
returns anything convertible into a response:

	func showPost(ctx *dispatch.Context, req *http.Request) http.Responder {
	    return http.JSON(map[string]string{"id": req.Param("id")})
	}

Text, HTML, JSON, Proto, a bare Status and *Response all satisfy
Responder. Middleware wrap handlers onion-style and may short-circuit
by not calling next. A panic below the terminal chain link is logged
and converted into a 500; it never reaches the client body or kills
the worker.

Serving

The server owns one listening socket and a fixed pool of workers; each
accepted connection is parsed, dispatched and answered start-to-finish
on a single worker, then closed. There is no keep-alive, TLS or
HTTP/2; the wire surface is deliberately plain HTTP/1.1.

The app package ties the pieces together with YAML configuration,
structured logging, optional Prometheus metrics, and signal handling:

	a := app.New(cfg).Routes(withRoutes)
	if err := a.Run(); err != nil {
	    ...
	}

Modules

  - app: application lifecycle
  - config: YAML configuration
  - core: connection server
  - core/http: request/response model, parsing, serialization
  - core/router: route table builder and matcher
  - core/dispatch: handler abstraction and middleware chain
  - core/middleware: built-in middleware
  - core/pools: connection worker pool
  - core/logging: structured logging
  - core/metrics: Prometheus instruments
  - session: session stores
*/
package vex
