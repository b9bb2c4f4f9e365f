package http

import (
	"fmt"
	"time"
)

// Hook for tests that pin the Date header.
var timeNow = time.Now

const dateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Response is an HTTP response: a status code, headers, and an optional
// body. It is produced by Responder conversion and consumed exactly
// once by serialization.
type Response struct {
	status Status
	header *Header
	body   []byte
}

// NewResponse creates an empty 200 response.
func NewResponse() *Response {
	return &Response{status: StatusOK, header: NewHeader()}
}

func (r *Response) Status() Status  { return r.status }
func (r *Response) Header() *Header { return r.header }
func (r *Response) Body() []byte    { return r.body }

func (r *Response) SetStatus(s Status) { r.status = s }

// SetBody sets the body. A nil body serializes without Content-Length;
// a non-nil body (even empty) carries one.
func (r *Response) SetBody(body []byte) { r.body = body }

// Response satisfies Responder so handlers can return a *Response
// directly.
func (r *Response) Response() *Response { return r }

// Serialize renders the response in HTTP/1.1 wire format: status line,
// one line per header value in insertion order, Content-Length when a
// body is present, the Date header, a blank line, then the body.
func (r *Response) Serialize() []byte {
	out := make([]byte, 0, 256+len(r.body))

	out = append(out, fmt.Sprintf("HTTP/1.1 %d %s\r\n", int(r.status), r.status.Reason())...)

	for _, name := range r.header.Names() {
		for _, value := range r.header.Values(name) {
			out = append(out, fmt.Sprintf("%s: %s\r\n", name, value)...)
		}
	}

	if r.body != nil {
		out = append(out, fmt.Sprintf("Content-Length: %d\r\n", len(r.body))...)
	}
	out = append(out, fmt.Sprintf("Date: %s\r\n", timeNow().UTC().Format(dateFormat))...)

	out = append(out, "\r\n"...)
	if r.body != nil {
		out = append(out, r.body...)
	}

	return out
}

// ResponseBuilder assembles a Response.
type ResponseBuilder struct {
	res Response
}

// NewResponseBuilder starts a 200 response with no headers or body.
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{res: Response{status: StatusOK, header: NewHeader()}}
}

func (b *ResponseBuilder) Status(s Status) *ResponseBuilder {
	b.res.status = s
	return b
}

// Header appends a header value.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.res.header.Add(name, value)
	return b
}

func (b *ResponseBuilder) Body(body []byte) *ResponseBuilder {
	b.res.body = body
	return b
}

func (b *ResponseBuilder) Build() *Response {
	res := b.res
	return &res
}
