package http

import (
	"io"
	"os"
	"strconv"

	"github.com/searchktools/saaba/core/mime"
	"github.com/searchktools/saaba/core/pools"
)

// Response is a mutable response value. Constructors that attach content set
// Content-Length; the low-level mutators leave header consistency to the caller.
type Response struct {
	Status  int
	Headers Header
	Content []byte
}

// NewResponse returns a 200 response with no headers and no body
func NewResponse() *Response {
	return &Response{
		Status:  int(StatusOK),
		Headers: NewHeader(),
	}
}

// FromStatus returns an empty response carrying the given status
func FromStatus(code StatusCode) *Response {
	r := NewResponse()
	r.Status = int(code)
	return r
}

// FromBytes returns a 200 response with data as body
func FromBytes(data []byte) *Response {
	r := NewResponse()
	r.attach(data)
	return r
}

// FromString returns a 200 response with s as body
func FromString(s string) *Response {
	return FromBytes([]byte(s))
}

// HTML returns a 200 text/html response
func HTML(content string) *Response {
	r := FromString(content)
	r.Headers.Set(HeaderContentType, "text/html; charset=utf-8")
	return r
}

// File reads the file at path into a 200 response typed by its extension.
// Read failures produce a 500 response.
func File(path string) *Response {
	data, err := os.ReadFile(path)
	if err != nil {
		return InternalServerError()
	}
	r := FromBytes(data)
	if ct, ok := mime.Guess(path); ok {
		r.Headers.Set(HeaderContentType, ct)
	}
	return r
}

// Redirect returns a 307 response pointing at location
func Redirect(location string) *Response {
	return RedirectWith(location, StatusTemporaryRedirect)
}

// RedirectWith returns a redirect with an explicit 3xx status
func RedirectWith(location string, code StatusCode) *Response {
	r := FromStatus(code)
	r.Headers.Set(HeaderLocation, location)
	r.Headers.Set(HeaderContentLength, "0")
	return r
}

// NotFound returns the canned 404 page
func NotFound() *Response {
	return statusPage(StatusNotFound)
}

// BadRequest returns the canned 400 page
func BadRequest() *Response {
	return statusPage(StatusBadRequest)
}

// InternalServerError returns the canned 500 page
func InternalServerError() *Response {
	return statusPage(StatusInternalServerError)
}

func statusPage(code StatusCode) *Response {
	r := HTML("<html>\n  <head>\n    <title>" + code.String() + "</title>\n  </head>\n" +
		"  <body>\n    <h1>" + code.Reason() + "</h1>\n  </body>\n</html>\n")
	r.Status = int(code)
	return r
}

func (r *Response) attach(data []byte) {
	r.Content = data
	r.Headers.Set(HeaderContentLength, strconv.Itoa(len(data)))
}

// Clone returns a copy with its own header map. The content bytes are shared.
func (r *Response) Clone() *Response {
	c := *r
	c.Headers = r.Headers.Clone()
	return &c
}

// SetHeader sets a response header in place
func (r *Response) SetHeader(key, value string) {
	if r.Headers == nil {
		r.Headers = NewHeader()
	}
	r.Headers.Set(key, value)
}

// SetStatus sets the status in place
func (r *Response) SetStatus(code int) {
	r.Status = code
}

// SetContent replaces the body in place. Content-Length is not touched.
func (r *Response) SetContent(data []byte) {
	r.Content = data
}

// WithHeader is the chaining form of SetHeader
func (r *Response) WithHeader(key, value string) *Response {
	r.SetHeader(key, value)
	return r
}

// WithStatus is the chaining form of SetStatus
func (r *Response) WithStatus(code int) *Response {
	r.SetStatus(code)
	return r
}

// WithContent is the chaining form of SetContent
func (r *Response) WithContent(data []byte) *Response {
	r.SetContent(data)
	return r
}

// Build serializes the response to wire bytes. Headers are written in sorted
// order, so equal responses produce equal output.
func (r *Response) Build() []byte {
	return r.appendTo(make([]byte, 0, r.wireSize()))
}

// WriteTo writes the serialized response to w through a pooled buffer
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	buf := r.appendTo(pools.GetBytes(r.wireSize())[:0])
	defer pools.PutBytes(buf)

	n, err := w.Write(buf)
	return int64(n), err
}

func (r *Response) wireSize() int {
	size := 64 + len(r.Content)
	for k, v := range r.Headers {
		size += len(k) + len(v) + 4
	}
	return size
}

func (r *Response) appendTo(buf []byte) []byte {
	buf = append(buf, "HTTP/1.1 "...)
	buf = strconv.AppendInt(buf, int64(r.Status), 10)
	buf = append(buf, ' ')
	buf = append(buf, Reason(r.Status)...)
	buf = append(buf, "\r\n"...)

	for _, k := range r.Headers.Keys() {
		buf = append(buf, k...)
		buf = append(buf, ": "...)
		buf = append(buf, r.Headers[k]...)
		buf = append(buf, "\r\n"...)
	}
	buf = append(buf, "\r\n"...)
	return append(buf, r.Content...)
}
