package http

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Responder is implemented by anything a handler can return. The
// dispatcher calls Response exactly once, inside the handler failure
// boundary, so a conversion that panics surfaces as a 500 rather than
// tearing down the worker.
type Responder interface {
	Response() *Response
}

// Text responds with a plain-text body.
type Text string

func (t Text) Response() *Response {
	res := NewResponse()
	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.SetBody([]byte(t))
	return res
}

// HTML responds with an HTML body.
type HTML string

func (h HTML) Response() *Response {
	res := NewResponse()
	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	res.SetBody([]byte(h))
	return res
}

// Status responds with a bare status code and no body.
func (s Status) Response() *Response {
	res := NewResponse()
	res.SetStatus(s)
	return res
}

// JSON responds with v serialized as a JSON body.
func JSON(v any) Responder {
	return jsonResponder{v: v}
}

type jsonResponder struct {
	v any
}

func (j jsonResponder) Response() *Response {
	body, err := json.Marshal(j.v)
	if err != nil {
		panic(fmt.Sprintf("failed to serialize value into json bytes: %v", err))
	}
	res := NewResponse()
	res.Header().Set("Content-Type", "application/json")
	res.SetBody(body)
	return res
}

// Proto responds with m serialized as a protobuf body.
func Proto(m proto.Message) Responder {
	return protoResponder{m: m}
}

type protoResponder struct {
	m proto.Message
}

func (p protoResponder) Response() *Response {
	body, err := proto.Marshal(p.m)
	if err != nil {
		panic(fmt.Sprintf("failed to serialize message into protobuf bytes: %v", err))
	}
	res := NewResponse()
	res.Header().Set("Content-Type", "application/x-protobuf")
	res.SetBody(body)
	return res
}

// WithStatus overrides the status of the wrapped Responder's response.
func WithStatus(s Status, r Responder) Responder {
	return statusResponder{s: s, r: r}
}

type statusResponder struct {
	s Status
	r Responder
}

func (sr statusResponder) Response() *Response {
	res := sr.r.Response()
	res.SetStatus(sr.s)
	return res
}

// WithHeader adds a header to the wrapped Responder's response.
func WithHeader(name, value string, r Responder) Responder {
	return headerResponder{name: name, value: value, r: r}
}

type headerResponder struct {
	name, value string
	r           Responder
}

func (hr headerResponder) Response() *Response {
	res := hr.r.Response()
	res.Header().Add(hr.name, hr.value)
	return res
}
