package middleware

import (
	"strings"
	"time"

	"github.com/go-kit/log/level"

	"github.com/vexhttp/vex/config"
	"github.com/vexhttp/vex/core/dispatch"
	"github.com/vexhttp/vex/core/http"
	"github.com/vexhttp/vex/session"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// Sessions resumes the visitor's session from its cookie, or starts a
// new one and sets the cookie on the response. Handlers reach the
// session through SessionID and the store on the context.
func Sessions() dispatch.Middleware {
	return func(ctx *dispatch.Context, req *http.Request, next dispatch.Next) http.Responder {
		if ctx.Sessions == nil {
			return next(req)
		}

		key := cookieKey(ctx.Config)

		if id := CookieValue(req, key); id != "" {
			sess, err := ctx.Sessions.Load(id)
			if err != nil {
				level.Warn(ctx.Log).Log("event", "session load failed", "detail", err)
			}
			if sess != nil {
				if !sess.Expired(time.Now()) {
					return next(req)
				}
				if err := ctx.Sessions.Delete(sess.ID); err != nil {
					level.Warn(ctx.Log).Log("event", "session delete failed", "detail", err)
				}
			}
		}

		sess := session.New(time.Now().Add(sessionTTL(ctx.Config)))
		if err := ctx.Sessions.Create(sess); err != nil {
			level.Warn(ctx.Log).Log("event", "session create failed", "detail", err)
			return next(req)
		}

		res := next(req)
		res.Header().Add("Set-Cookie", key+"="+sess.ID+"; Path=/; HttpOnly")
		return res
	}
}

// SessionID returns the caller's session identifier, or "".
func SessionID(ctx *dispatch.Context, req *http.Request) string {
	return CookieValue(req, cookieKey(ctx.Config))
}

// CookieValue extracts one cookie's value from the request's Cookie
// header.
func CookieValue(req *http.Request, name string) string {
	for _, part := range strings.Split(req.Header().Get("Cookie"), ";") {
		part = strings.TrimSpace(part)
		if v, ok := strings.CutPrefix(part, name+"="); ok {
			return v
		}
	}
	return ""
}

func cookieKey(cfg *config.Config) string {
	if cfg != nil && cfg.Session.CookieKey != "" {
		return cfg.Session.CookieKey
	}
	return "vex-session"
}

func sessionTTL(cfg *config.Config) time.Duration {
	if cfg == nil || cfg.Session.ExpiresAfter == "" {
		return defaultSessionTTL
	}
	ttl, err := config.ParseDuration(cfg.Session.ExpiresAfter)
	if err != nil {
		return defaultSessionTTL
	}
	return ttl
}
