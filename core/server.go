// Package core owns the connection server: a listening socket, a
// worker pool, and the per-connection read/parse/dispatch/write cycle.
package core

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/net/netutil"
	"golang.org/x/sys/unix"

	"github.com/vexhttp/vex/core/dispatch"
	"github.com/vexhttp/vex/core/http"
	"github.com/vexhttp/vex/core/logging"
	"github.com/vexhttp/vex/core/pools"
	"github.com/vexhttp/vex/core/router"
)

// Per-connection read buffer. Requests larger than this are truncated
// and fail to parse.
const readBufferSize = 8192

// Server accepts connections sequentially and hands each one to the
// worker pool as a single unit of work. The router, global middleware
// and context are fixed at bind time and read concurrently without
// synchronization.
type Server struct {
	ln     net.Listener
	router *router.Router
	ctx    *dispatch.Context
	global []dispatch.Middleware

	workers  int
	maxConns int
	lg       log.Logger
	pool     *pools.WorkerPool
}

// Option adjusts a Server at bind time.
type Option func(*Server)

// WithWorkers sets the worker pool size. Zero selects the available
// parallelism.
func WithWorkers(n int) Option {
	return func(s *Server) { s.workers = n }
}

// WithMaxConns bounds concurrently accepted connections. Zero disables
// the bound.
func WithMaxConns(n int) Option {
	return func(s *Server) { s.maxConns = n }
}

func WithLogger(lg log.Logger) Option {
	return func(s *Server) { s.lg = lg }
}

// Bind opens the listening socket. Serving does not start until Serve
// is called.
func Bind(addr string, rt *router.Router, ctx *dispatch.Context, global []dispatch.Middleware, opts ...Option) (*Server, error) {
	s := &Server{
		router:   rt,
		ctx:      ctx,
		global:   global,
		maxConns: 1024,
		lg:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ctx == nil {
		s.ctx = &dispatch.Context{Log: s.lg}
	}
	if s.ctx.Log == nil {
		s.ctx.Log = s.lg
	}

	lc := net.ListenConfig{Control: reuseAddr}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, err
	}
	if s.maxConns > 0 {
		ln = netutil.LimitListener(ln, s.maxConns)
	}
	s.ln = ln

	return s, nil
}

// reuseAddr sets SO_REUSEADDR on the listening socket before bind.
func reuseAddr(network, address string, c syscall.RawConn) error {
	var serr error
	err := c.Control(func(fd uintptr) {
		serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return serr
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve accepts connections until the listener is closed. Each
// accepted connection becomes one task; when the pool saturates,
// submission blocks and the accept loop applies back-pressure.
func (s *Server) Serve() error {
	s.pool = pools.NewWorkerPool(s.workers)
	defer s.pool.Close()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			level.Info(s.lg).Log("event", "client failed to connect", "detail", err)
			continue
		}

		c := conn
		s.pool.Submit(func() { s.handleConn(c) })
	}
}

// Close stops the listener; in-flight connections finish on their
// workers.
func (s *Server) Close() error {
	return s.ln.Close()
}

// handleConn runs one connection start to finish: read, parse,
// dispatch, serialize, write, close.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, readBufferSize)
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		level.Warn(s.lg).Log("event", "could not read from client", "detail", err)
		return
	}
	if n == 0 {
		return
	}

	res := s.respond(buf[:n], conn.RemoteAddr())

	if _, err := conn.Write(res.Serialize()); err != nil {
		level.Warn(s.lg).Log("event", "could not write to client", "detail", err)
	}
}

func (s *Server) respond(raw []byte, peer net.Addr) *http.Response {
	req, err := http.ParseRequest(raw, peer, s.lg)
	if err != nil {
		level.Warn(s.lg).Log("event", "could not parse request", "detail", err)
		return http.StatusBadRequest.Response()
	}

	// Host-based routing needs the Host header.
	if !req.Header().Has("Host") {
		level.Warn(s.lg).Log("event", "request missing Host header", "path", req.Path())
		return http.StatusBadRequest.Response()
	}

	handler, routeMiddleware := s.resolve(req)

	chain := dispatch.Chain(s.ctx, handler, routeMiddleware, s.global)
	return chain(req)
}

// resolve matches the request against the router. Routing failures
// yield synthesized status handlers so the middleware chain still runs
// around 404s and 405s.
func (s *Server) resolve(req *http.Request) (dispatch.Handler, []dispatch.Middleware) {
	matched, err := s.router.Match(req.Method(), req.Header().Get("Host"), req.Path())
	switch {
	case err == nil:
		req.SetParams(matched.Params)
		return matched.Route.Handler, matched.Route.Middleware
	case errors.Is(err, router.ErrMethodNotAllowed):
		return statusHandler(http.StatusMethodNotAllowed), nil
	default:
		return statusHandler(http.StatusNotFound), nil
	}
}

func statusHandler(status http.Status) dispatch.Handler {
	return dispatch.HandlerFunc(func(*dispatch.Context, *http.Request) http.Responder {
		return status
	})
}
