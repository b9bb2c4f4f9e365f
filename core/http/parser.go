package http

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Headers beyond this count are ignored.
const maxHeaders = 32

var (
	// ErrMalformedRequestLine is returned when the request line does
	// not carry a method, path and protocol.
	ErrMalformedRequestLine = errors.New("malformed request line")
	// ErrTruncatedRequest is returned when the buffer ends before the
	// header section does.
	ErrTruncatedRequest = errors.New("truncated request")
)

// ParseRequest parses a raw request buffer into a Request. Individual
// headers that cannot be parsed are logged at warn level and dropped
// rather than failing the whole request.
func ParseRequest(data []byte, peer net.Addr, lg log.Logger) (*Request, error) {
	head, rest, err := splitHead(data)
	if err != nil {
		return nil, err
	}

	line, headerData := cutLine(head)

	method, path, proto, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	b := NewRequestBuilder().Method(method).Proto(proto).PeerAddr(peer)

	path = parseQuery(b, path)
	b.Path(path)

	count := 0
	for len(headerData) > 0 && count < maxHeaders {
		var line []byte
		line, headerData = cutLine(headerData)
		if len(line) == 0 {
			continue
		}
		name, value, ok := parseHeaderLine(line)
		if !ok {
			level.Warn(lg).Log("event", "header could not be parsed", "header", string(line))
			continue
		}
		b.Header(name, value)
		count++
	}

	req := b.Build()

	// The body is framed by Content-Length only.
	if cl := req.Header().Get("Content-Length"); cl != "" {
		n, err := strconv.Atoi(cl)
		if err != nil || n < 0 {
			level.Warn(lg).Log("event", "invalid Content-Length dropped", "value", cl)
		} else {
			if n > len(rest) {
				n = len(rest)
			}
			req.body = append([]byte(nil), rest[:n]...)
		}
	}

	return req, nil
}

// splitHead separates the request head (request line + headers) from
// the body bytes that follow the blank line.
func splitHead(data []byte) (head, rest []byte, err error) {
	if i := bytes.Index(data, []byte("\r\n\r\n")); i >= 0 {
		return data[:i], data[i+4:], nil
	}
	if i := bytes.Index(data, []byte("\n\n")); i >= 0 {
		return data[:i], data[i+2:], nil
	}
	return nil, nil, ErrTruncatedRequest
}

// cutLine returns the first line of data (without its terminator) and
// the remainder.
func cutLine(data []byte) (line, rest []byte) {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return data, nil
	}
	line, rest = data[:i], data[i+1:]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line, rest
}

func parseRequestLine(line []byte) (Method, string, string, error) {
	sp1 := bytes.IndexByte(line, ' ')
	if sp1 <= 0 {
		return "", "", "", ErrMalformedRequestLine
	}
	sp2 := bytes.IndexByte(line[sp1+1:], ' ')
	if sp2 < 0 {
		return "", "", "", ErrMalformedRequestLine
	}
	sp2 += sp1 + 1

	method, err := ParseMethod(string(line[:sp1]))
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %s", ErrMalformedRequestLine, err)
	}

	path := string(line[sp1+1 : sp2])
	if path == "" {
		return "", "", "", ErrMalformedRequestLine
	}

	return method, path, string(line[sp2+1:]), nil
}

func parseHeaderLine(line []byte) (name, value string, ok bool) {
	colon := bytes.IndexByte(line, ':')
	if colon <= 0 {
		return "", "", false
	}
	name = string(bytes.TrimSpace(line[:colon]))
	for i := 0; i < len(name); i++ {
		if !isTokenByte(name[i]) {
			return "", "", false
		}
	}
	value = string(bytes.TrimSpace(line[colon+1:]))
	return name, value, true
}

// parseQuery splits a query string off the path and records its pairs
// on the builder, returning the bare path.
func parseQuery(b *RequestBuilder, path string) string {
	idx := strings.IndexByte(path, '?')
	if idx < 0 {
		return path
	}
	for _, pair := range strings.Split(path[idx+1:], "&") {
		if pair == "" {
			continue
		}
		if eq := strings.IndexByte(pair, '='); eq >= 0 {
			b.Query(pair[:eq], pair[eq+1:])
		} else {
			b.Query(pair, "")
		}
	}
	return path[:idx]
}
