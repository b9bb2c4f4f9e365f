// Package middleware ships the framework's built-in middleware.
package middleware

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-kit/log/level"

	"github.com/vexhttp/vex/core/dispatch"
	"github.com/vexhttp/vex/core/http"
	"github.com/vexhttp/vex/core/metrics"
)

// Trace logs one line per request with its peer, verb, path, status,
// response size and elapsed time.
func Trace() dispatch.Middleware {
	return func(ctx *dispatch.Context, req *http.Request, next dispatch.Next) http.Responder {
		start := time.Now()
		res := next(req)
		elapsed := time.Since(start)

		peer := "-"
		if req.PeerAddr() != nil {
			peer = req.PeerAddr().String()
		}

		level.Info(ctx.Log).Log(
			"event", "request",
			"host", req.Header().Get("Host"),
			"peer", peer,
			"method", req.Method(),
			"path", req.Path(),
			"status", int(res.Status()),
			"bytes", len(res.Body()),
			"elapsed_ms", elapsed.Milliseconds(),
		)
		return res
	}
}

// CORS answers preflight requests and stamps permissive cross-origin
// headers on everything else.
func CORS() dispatch.Middleware {
	return func(ctx *dispatch.Context, req *http.Request, next dispatch.Next) http.Responder {
		if req.Method() == http.MethodOptions {
			res := http.StatusNoContent.Response()
			setCORS(res)
			return res
		}
		res := next(req)
		setCORS(res)
		return res
	}
}

func setCORS(res *http.Response) {
	res.Header().Set("Access-Control-Allow-Origin", "*")
	res.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	res.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

// RequestID stamps each response with a unique X-Request-ID.
func RequestID() dispatch.Middleware {
	var counter atomic.Uint64

	return func(ctx *dispatch.Context, req *http.Request, next dispatch.Next) http.Responder {
		res := next(req)
		res.Header().Set("X-Request-ID", fmt.Sprintf("%d", counter.Add(1)))
		return res
	}
}

// Metrics feeds the Prometheus request counters.
func Metrics() dispatch.Middleware {
	return func(ctx *dispatch.Context, req *http.Request, next dispatch.Next) http.Responder {
		start := time.Now()
		res := next(req)

		metrics.RequestStatus.
			WithLabelValues(req.Method().String(), strconv.Itoa(int(res.Status()))).
			Inc()
		metrics.RequestDuration.
			WithLabelValues(req.Method().String()).
			Observe(time.Since(start).Seconds())

		return res
	}
}
