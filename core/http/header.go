package http

import (
	"net/textproto"
	"sort"
)

// Common header names
const (
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderLocation      = "Location"
	HeaderHost          = "Host"
	HeaderConnection    = "Connection"
	HeaderServer        = "Server"
	HeaderRequestID     = "X-Request-Id"
)

// Header maps header names to values. Names are stored in canonical form
// so lookups are case-insensitive.
type Header map[string]string

// NewHeader returns an empty header store
func NewHeader() Header {
	return make(Header)
}

// Get returns the value for key, or ""
func (h Header) Get(key string) string {
	return h[textproto.CanonicalMIMEHeaderKey(key)]
}

// Lookup returns the value for key and whether it was present
func (h Header) Lookup(key string) (string, bool) {
	v, ok := h[textproto.CanonicalMIMEHeaderKey(key)]
	return v, ok
}

// Has reports whether key is present
func (h Header) Has(key string) bool {
	_, ok := h[textproto.CanonicalMIMEHeaderKey(key)]
	return ok
}

// Set stores value under key, replacing any previous value
func (h Header) Set(key, value string) {
	h[textproto.CanonicalMIMEHeaderKey(key)] = value
}

// Add appends value to an existing entry as a comma-separated list
func (h Header) Add(key, value string) {
	key = textproto.CanonicalMIMEHeaderKey(key)
	if existing, ok := h[key]; ok && existing != "" {
		h[key] = existing + ", " + value
		return
	}
	h[key] = value
}

// Del removes key
func (h Header) Del(key string) {
	delete(h, textproto.CanonicalMIMEHeaderKey(key))
}

// Clone returns an independent copy
func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	c := make(Header, len(h))
	for k, v := range h {
		c[k] = v
	}
	return c
}

// Keys returns the header names in sorted order
func (h Header) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
