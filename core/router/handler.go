package router

import "github.com/searchktools/saaba/core/http"

// Handler produces the response for an exact route
type Handler interface {
	Serve(req *http.Request) *http.Response
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(req *http.Request) *http.Response

// Serve calls f(req)
func (f HandlerFunc) Serve(req *http.Request) *http.Response {
	return f(req)
}

// Vars holds the placeholder captures of a variable route
type Vars map[string]string

// Get returns the capture for name, or ""
func (v Vars) Get(name string) string {
	return v[name]
}

// VarHandler produces the response for a variable route
type VarHandler interface {
	ServeVars(req *http.Request, vars Vars) *http.Response
}

// VarHandlerFunc adapts a function to VarHandler
type VarHandlerFunc func(req *http.Request, vars Vars) *http.Response

// ServeVars calls f(req, vars)
func (f VarHandlerFunc) ServeVars(req *http.Request, vars Vars) *http.Response {
	return f(req, vars)
}
