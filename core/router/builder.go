package router

import (
	"strings"

	"github.com/vexhttp/vex/core/dispatch"
	"github.com/vexhttp/vex/core/http"
)

// Builder accumulates route definitions. Routes added directly belong
// to this node; Prefix, Host and Middleware open child scopes whose
// additions compound with everything inherited from their ancestors.
// The tree is consumed by Build and discarded.
type Builder struct {
	host       string
	prefix     string
	middleware []dispatch.Middleware
	routes     []*Route
	children   []*Builder
}

// NewBuilder creates a route table builder whose ambient host is host.
func NewBuilder(host string) *Builder {
	return &Builder{host: host}
}

func (b *Builder) handle(method http.Method, path string, h dispatch.Handler) *Builder {
	b.routes = append(b.routes, &Route{Method: method, Path: path, Handler: h})
	return b
}

func (b *Builder) Get(path string, h dispatch.Handler) *Builder {
	return b.handle(http.MethodGet, path, h)
}

func (b *Builder) Head(path string, h dispatch.Handler) *Builder {
	return b.handle(http.MethodHead, path, h)
}

func (b *Builder) Post(path string, h dispatch.Handler) *Builder {
	return b.handle(http.MethodPost, path, h)
}

func (b *Builder) Put(path string, h dispatch.Handler) *Builder {
	return b.handle(http.MethodPut, path, h)
}

func (b *Builder) Delete(path string, h dispatch.Handler) *Builder {
	return b.handle(http.MethodDelete, path, h)
}

func (b *Builder) Connect(path string, h dispatch.Handler) *Builder {
	return b.handle(http.MethodConnect, path, h)
}

func (b *Builder) Options(path string, h dispatch.Handler) *Builder {
	return b.handle(http.MethodOptions, path, h)
}

func (b *Builder) Trace(path string, h dispatch.Handler) *Builder {
	return b.handle(http.MethodTrace, path, h)
}

func (b *Builder) Patch(path string, h dispatch.Handler) *Builder {
	return b.handle(http.MethodPatch, path, h)
}

// Prefix opens a child scope whose routes get prefix prepended to
// their paths, compounding with any enclosing prefixes.
func (b *Builder) Prefix(prefix string, fn func(*Builder) *Builder) *Builder {
	child := &Builder{host: b.host, prefix: prefix}
	b.children = append(b.children, fn(child))
	return b
}

// Host opens a child scope whose routes are bound to host instead of
// the ambient host.
func (b *Builder) Host(host string, fn func(*Builder) *Builder) *Builder {
	child := &Builder{host: host}
	b.children = append(b.children, fn(child))
	return b
}

// Middleware opens a child scope whose routes additionally carry mw,
// appended after any middleware already inherited: outer groups wrap
// first.
func (b *Builder) Middleware(mw []dispatch.Middleware, fn func(*Builder) *Builder) *Builder {
	child := &Builder{host: b.host, middleware: append([]dispatch.Middleware(nil), mw...)}
	b.children = append(b.children, fn(child))
	return b
}

// Build flattens the builder tree into a Router. It fails when two
// routes for the same host and method register structurally colliding
// path patterns, or when a host pattern does not compile.
func (b *Builder) Build() (*Router, error) {
	r := &Router{}
	for _, rt := range b.resolve(nil, nil) {
		if err := r.add(rt); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// resolve walks the tree depth first, threading the prefix stack and
// the inherited middleware by value so sibling branches never observe
// each other's additions.
func (b *Builder) resolve(prefixes []string, inherited []dispatch.Middleware) []*Route {
	if b.prefix != "" {
		prefixes = append(copyStrings(prefixes), b.prefix)
	}
	mws := append(copyMiddleware(inherited), b.middleware...)

	resolved := make([]*Route, 0, len(b.routes))
	for _, rt := range b.routes {
		resolved = append(resolved, &Route{
			Method:     rt.Method,
			Path:       normalizePath(strings.Join(prefixes, "") + rt.Path),
			Host:       b.host,
			Handler:    rt.Handler,
			Middleware: copyMiddleware(mws),
		})
	}

	for _, child := range b.children {
		resolved = append(resolved, child.resolve(prefixes, mws)...)
	}

	return resolved
}

func copyStrings(in []string) []string {
	return append([]string(nil), in...)
}

func copyMiddleware(in []dispatch.Middleware) []dispatch.Middleware {
	return append([]dispatch.Middleware(nil), in...)
}

// normalizePath rebuilds a path from its non-empty segments: duplicate
// slashes collapse and the trailing slash is stripped, except for the
// root path itself.
func normalizePath(path string) string {
	segs := splitPath(path)
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}
