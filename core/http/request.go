package http

import "net"

// Request is a parsed HTTP request. It is built once per connection and
// read-only afterwards, with one exception: the params map is filled in
// by the dispatcher after the router has matched a route.
type Request struct {
	method Method
	path   string
	proto  string
	header *Header
	query  map[string]string
	body   []byte
	peer   net.Addr
	params map[string]string
}

func (r *Request) Method() Method  { return r.method }
func (r *Request) Path() string    { return r.path }
func (r *Request) Proto() string   { return r.proto }
func (r *Request) Header() *Header { return r.header }
func (r *Request) Body() []byte    { return r.body }

// PeerAddr returns the remote address of the connection the request
// arrived on, or nil when unknown.
func (r *Request) PeerAddr() net.Addr { return r.peer }

// Query returns the value of a query-string parameter, or "".
func (r *Request) Query(name string) string { return r.query[name] }

// Param returns a placeholder capture merged from the matched route's
// host and path patterns, or "".
func (r *Request) Param(name string) string { return r.params[name] }

// Params returns the full parameter mapping for the matched route.
func (r *Request) Params() map[string]string { return r.params }

// SetParams records the placeholder captures for the matched route.
// Called once by the dispatcher; everything else treats the request as
// immutable.
func (r *Request) SetParams(params map[string]string) { r.params = params }

// RequestBuilder assembles a Request.
type RequestBuilder struct {
	req Request
}

// NewRequestBuilder starts a request with method GET and path "/".
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{req: Request{
		method: MethodGet,
		path:   "/",
		proto:  "HTTP/1.1",
		header: NewHeader(),
	}}
}

func (b *RequestBuilder) Method(m Method) *RequestBuilder {
	b.req.method = m
	return b
}

func (b *RequestBuilder) Path(path string) *RequestBuilder {
	b.req.path = path
	return b
}

func (b *RequestBuilder) Proto(proto string) *RequestBuilder {
	b.req.proto = proto
	return b
}

// Header appends a header value.
func (b *RequestBuilder) Header(name, value string) *RequestBuilder {
	b.req.header.Add(name, value)
	return b
}

func (b *RequestBuilder) Query(name, value string) *RequestBuilder {
	if b.req.query == nil {
		b.req.query = make(map[string]string)
	}
	b.req.query[name] = value
	return b
}

func (b *RequestBuilder) Body(body []byte) *RequestBuilder {
	b.req.body = body
	return b
}

func (b *RequestBuilder) PeerAddr(addr net.Addr) *RequestBuilder {
	b.req.peer = addr
	return b
}

func (b *RequestBuilder) Build() *Request {
	req := b.req
	return &req
}
