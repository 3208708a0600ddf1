package http

// Request is a parsed HTTP request. It is treated as read-only once parsed.
type Request struct {
	Method Method
	// URL is the path component of the request target, without scheme, host or query
	URL     string
	Proto   string
	Headers Header
}

// NewRequest builds a request for the given method and path with empty headers
func NewRequest(method Method, url string) *Request {
	return &Request{
		Method:  method,
		URL:     url,
		Proto:   "HTTP/1.1",
		Headers: NewHeader(),
	}
}

// Header returns a request header value (case-insensitive)
func (r *Request) Header(key string) string {
	return r.Headers.Get(key)
}

// Clone returns a deep copy, so a handler cannot mutate what others observe
func (r *Request) Clone() *Request {
	c := *r
	c.Headers = r.Headers.Clone()
	return &c
}
