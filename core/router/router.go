package router

import (
	"fmt"
	"regexp"

	"github.com/vexhttp/vex/core/http"
)

// hostEntry indexes the routes of one host pattern. The pattern is
// compiled once at build time.
type hostEntry struct {
	pattern string
	matcher *regexp.Regexp
	methods map[http.Method]*trie
}

// Router performs route lookups. It is immutable after Build and safe
// for concurrent reads from any number of workers.
type Router struct {
	// Host entries in registration order. When two host patterns both
	// match a request host, the first registered wins; this tie-break
	// is deliberate and load-bearing.
	hosts []*hostEntry
}

func (r *Router) add(rt *Route) error {
	e, err := r.hostEntry(rt.Host)
	if err != nil {
		return err
	}

	t, ok := e.methods[rt.Method]
	if !ok {
		t = newTrie()
		e.methods[rt.Method] = t
	}

	if err := t.insert(rt.Path, rt); err != nil {
		return fmt.Errorf("host %q method %s: %w", rt.Host, rt.Method, err)
	}
	return nil
}

func (r *Router) hostEntry(pattern string) (*hostEntry, error) {
	for _, e := range r.hosts {
		if e.pattern == pattern {
			return e, nil
		}
	}

	matcher, err := compileHostPattern(pattern)
	if err != nil {
		return nil, err
	}

	e := &hostEntry{
		pattern: pattern,
		matcher: matcher,
		methods: make(map[http.Method]*trie),
	}
	r.hosts = append(r.hosts, e)
	return e, nil
}

// Match finds the route for a method, host and path. It returns
// ErrMethodNotAllowed when the selected host serves the path under a
// different method, and ErrNotFound otherwise.
func (r *Router) Match(method http.Method, host, path string) (*MatchedRoute, error) {
	for _, e := range r.hosts {
		m := e.matcher.FindStringSubmatch(host)
		if m == nil {
			continue
		}

		t, ok := e.methods[method]
		if !ok {
			return nil, e.disambiguate(path)
		}

		rt, pathParams := t.lookup(path)
		if rt == nil {
			return nil, e.disambiguate(path)
		}

		params := hostCaptures(e.matcher, m)
		for k, v := range pathParams {
			params[k] = v
		}

		return &MatchedRoute{Route: rt, Params: params}, nil
	}

	return nil, ErrNotFound
}

// disambiguate reports ErrMethodNotAllowed when any method registered
// for this host serves the path, and ErrNotFound when none does.
func (e *hostEntry) disambiguate(path string) error {
	for _, t := range e.methods {
		if rt, _ := t.lookup(path); rt != nil {
			return ErrMethodNotAllowed
		}
	}
	return ErrNotFound
}
