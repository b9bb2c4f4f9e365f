package http

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-kit/log"
)

func TestParseRequestBasic(t *testing.T) {
	raw := []byte("DELETE /posts/5 HTTP/1.1\r\ncontent-type: application/json\r\nHost: example.com\r\n\r\n")

	req, err := ParseRequest(raw, nil, log.NewNopLogger())
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}

	if req.Method() != MethodDelete {
		t.Errorf("Method = %s, want DELETE", req.Method())
	}
	if req.Path() != "/posts/5" {
		t.Errorf("Path = %q, want /posts/5", req.Path())
	}
	if req.Proto() != "HTTP/1.1" {
		t.Errorf("Proto = %q, want HTTP/1.1", req.Proto())
	}
	if got := req.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := req.Header().Get("host"); got != "example.com" {
		t.Errorf("Host = %q", got)
	}
}

func TestParseRequestBody(t *testing.T) {
	raw := []byte("POST /posts HTTP/1.1\r\nHost: example.com\r\nContent-Length: 9\r\n\r\n{\"a\":1}!!extra ignored")

	req, err := ParseRequest(raw, nil, log.NewNopLogger())
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if !bytes.Equal(req.Body(), []byte("{\"a\":1}!!")) {
		t.Errorf("Body = %q, want Content-Length framed bytes", req.Body())
	}
}

func TestParseRequestTruncatedBody(t *testing.T) {
	raw := []byte("POST / HTTP/1.1\r\nHost: x\r\nContent-Length: 100\r\n\r\nshort")

	req, err := ParseRequest(raw, nil, log.NewNopLogger())
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if string(req.Body()) != "short" {
		t.Errorf("Body = %q, want the available bytes", req.Body())
	}
}

func TestParseRequestNoContentLengthNoBody(t *testing.T) {
	raw := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\nleftover")

	req, err := ParseRequest(raw, nil, log.NewNopLogger())
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Body() != nil {
		t.Errorf("Body = %q, want none without Content-Length", req.Body())
	}
}

func TestParseRequestQuery(t *testing.T) {
	raw := []byte("GET /search?q=routing&page=2&flag HTTP/1.1\r\nHost: x\r\n\r\n")

	req, err := ParseRequest(raw, nil, log.NewNopLogger())
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Path() != "/search" {
		t.Errorf("Path = %q, want /search", req.Path())
	}
	if req.Query("q") != "routing" || req.Query("page") != "2" {
		t.Errorf("query parameters not parsed: q=%q page=%q", req.Query("q"), req.Query("page"))
	}
	if req.Query("flag") != "" {
		t.Errorf("bare query key should map to empty string")
	}
}

func TestParseRequestDropsMalformedHeaders(t *testing.T) {
	raw := []byte("GET / HTTP/1.1\r\nHost: example.com\r\nthis is not a header\r\nbad name: x\r\nAccept: text/plain\r\n\r\n")

	req, err := ParseRequest(raw, nil, log.NewNopLogger())
	if err != nil {
		t.Fatalf("malformed headers must not fail the parse: %v", err)
	}
	if got := req.Header().Get("Accept"); got != "text/plain" {
		t.Errorf("well-formed header lost: Accept = %q", got)
	}
	if req.Header().Has("bad name") {
		t.Errorf("header with an invalid name should be dropped")
	}
}

func TestParseRequestErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrTruncatedRequest},
		{"no blank line", "GET / HTTP/1.1\r\nHost: x\r\n", ErrTruncatedRequest},
		{"missing path", "GET\r\n\r\n", ErrMalformedRequestLine},
		{"missing proto", "GET /\r\n\r\n", ErrMalformedRequestLine},
		{"bad method", "G@T / HTTP/1.1\r\n\r\n", ErrMalformedRequestLine},
	}

	for _, tt := range tests {
		_, err := ParseRequest([]byte(tt.raw), nil, log.NewNopLogger())
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestParseMethodEscapeHatch(t *testing.T) {
	m, err := ParseMethod("PURGE")
	if err != nil {
		t.Fatalf("non-standard verbs should parse: %v", err)
	}
	if m != Method("PURGE") {
		t.Errorf("ParseMethod = %s", m)
	}

	if _, err := ParseMethod(""); err == nil {
		t.Errorf("empty method should fail")
	}
	if _, err := ParseMethod("GE T"); err == nil {
		t.Errorf("method with a space should fail")
	}
}
