package router

import (
	"errors"
	"testing"

	"github.com/vexhttp/vex/core/dispatch"
	"github.com/vexhttp/vex/core/http"
)

func buildRouter(t *testing.T, b *Builder) *Router {
	t.Helper()
	r, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return r
}

func TestMatchStaticHost(t *testing.T) {
	r := buildRouter(t, NewBuilder("example.com").
		Get("/", noopHandler).
		Get("/posts/{id}", noopHandler))

	m, err := r.Match(http.MethodGet, "example.com", "/posts/42")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if m.Params["id"] != "42" {
		t.Errorf("params = %v, want id=42", m.Params)
	}

	if _, err := r.Match(http.MethodGet, "other.com", "/"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown host: err = %v, want ErrNotFound", err)
	}
}

func TestMatchHostPlaceholder(t *testing.T) {
	r := buildRouter(t, NewBuilder("{tenant}.example.com").
		Get("/dash", noopHandler))

	m, err := r.Match(http.MethodGet, "acme.example.com", "/dash")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if m.Params["tenant"] != "acme" {
		t.Errorf("params = %v, want tenant=acme", m.Params)
	}

	// A placeholder covers exactly one label.
	if _, err := r.Match(http.MethodGet, "a.b.example.com", "/dash"); !errors.Is(err, ErrNotFound) {
		t.Errorf("two labels matched a single placeholder: err = %v", err)
	}
	if _, err := r.Match(http.MethodGet, "example.com", "/dash"); !errors.Is(err, ErrNotFound) {
		t.Errorf("zero labels matched a placeholder: err = %v", err)
	}
}

func TestMatchHostWildcard(t *testing.T) {
	r := buildRouter(t, NewBuilder("*.example.com").
		Get("/", noopHandler))

	if _, err := r.Match(http.MethodGet, "x.example.com", "/"); err != nil {
		t.Errorf("wildcard label: %v", err)
	}
	if _, err := r.Match(http.MethodGet, "example.com", "/"); !errors.Is(err, ErrNotFound) {
		t.Errorf("bare apex matched *.example.com: err = %v", err)
	}

	m, err := r.Match(http.MethodGet, "y.example.com", "/")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(m.Params) != 0 {
		t.Errorf("wildcard labels must not capture, got %v", m.Params)
	}
}

func TestMatchMergedParamsPathWins(t *testing.T) {
	r := buildRouter(t, NewBuilder("{id}.example.com").
		Get("/items/{id}", noopHandler))

	m, err := r.Match(http.MethodGet, "tenant7.example.com", "/items/42")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if m.Params["id"] != "42" {
		t.Errorf("path capture must win over host capture, got id=%q", m.Params["id"])
	}
}

func TestMatchHostRegistrationOrderWins(t *testing.T) {
	first := dispatch.HandlerFunc(func(ctx *dispatch.Context, req *http.Request) http.Responder {
		return http.Text("first")
	})

	r := buildRouter(t, NewBuilder("{tenant}.example.com").
		Get("/", first).
		Host("*.example.com", func(b *Builder) *Builder {
			return b.Get("/", noopHandler)
		}))

	m, err := r.Match(http.MethodGet, "acme.example.com", "/")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if m.Params["tenant"] != "acme" {
		t.Errorf("first-registered host pattern should win, params = %v", m.Params)
	}
}

func TestMatchMethodNotAllowed(t *testing.T) {
	r := buildRouter(t, NewBuilder("example.com").
		Get("/posts", noopHandler).
		Post("/posts/{id}", noopHandler))

	_, err := r.Match(http.MethodDelete, "example.com", "/posts")
	if !errors.Is(err, ErrMethodNotAllowed) {
		t.Errorf("path served under GET: err = %v, want ErrMethodNotAllowed", err)
	}

	// The path matches POST's pattern, so a GET is 405, not 404.
	_, err = r.Match(http.MethodGet, "example.com", "/posts/9")
	if !errors.Is(err, ErrMethodNotAllowed) {
		t.Errorf("path served under POST only: err = %v, want ErrMethodNotAllowed", err)
	}

	_, err = r.Match(http.MethodGet, "example.com", "/nowhere")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown path: err = %v, want ErrNotFound", err)
	}
}

func TestMatchTrailingSlashEquivalence(t *testing.T) {
	r := buildRouter(t, NewBuilder("example.com").
		Get("/posts", noopHandler))

	if _, err := r.Match(http.MethodGet, "example.com", "/posts/"); err != nil {
		t.Errorf("trailing slash on request path: %v", err)
	}
	if _, err := r.Match(http.MethodGet, "example.com", "/posts"); err != nil {
		t.Errorf("bare path: %v", err)
	}
}

func TestHostPatternLiteralDots(t *testing.T) {
	r := buildRouter(t, NewBuilder("api.example.com").
		Get("/", noopHandler))

	// Dots in the pattern are literal: "apiXexample.com" must not match.
	if _, err := r.Match(http.MethodGet, "apixexample.com", "/"); !errors.Is(err, ErrNotFound) {
		t.Errorf("dot matched a non-dot byte: err = %v", err)
	}
}

func BenchmarkMatchStatic(b *testing.B) {
	r, err := NewBuilder("example.com").
		Get("/api/v1/posts/all", noopHandler).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Match(http.MethodGet, "example.com", "/api/v1/posts/all"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMatchPlaceholder(b *testing.B) {
	r, err := NewBuilder("{tenant}.example.com").
		Get("/posts/{id}/comments/{cid}", noopHandler).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Match(http.MethodGet, "acme.example.com", "/posts/7/comments/19"); err != nil {
			b.Fatal(err)
		}
	}
}
