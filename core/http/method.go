package http

import (
	"errors"
	"strings"
)

// Method is an HTTP request method. The standard verbs are provided as
// constants; any other token is carried through verbatim so
// non-standard verbs still route.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

// ErrInvalidMethod is returned when a request method is empty or not a
// valid HTTP token.
var ErrInvalidMethod = errors.New("invalid request method")

// ParseMethod validates s as an HTTP method token.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return "", ErrInvalidMethod
	}
	for i := 0; i < len(s); i++ {
		if !isTokenByte(s[i]) {
			return "", ErrInvalidMethod
		}
	}
	return Method(s), nil
}

func (m Method) String() string { return string(m) }

// isTokenByte reports whether c is legal in an HTTP token (RFC 9110).
func isTokenByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0:
		return true
	}
	return false
}
