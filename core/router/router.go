package router

import (
	"github.com/searchktools/saaba/core/http"
)

type routeKey struct {
	method http.Method
	path   string
}

type varRoute struct {
	method  http.Method
	tmpl    *Template
	handler VarHandler
}

// Router owns the exact, variable and static route tables. Tables are filled
// during setup and only read afterwards, so a Router may be shared freely once
// serving starts.
type Router struct {
	exact  map[routeKey]Handler
	vars   []varRoute
	static *Static
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{
		exact:  make(map[routeKey]Handler),
		static: NewStatic(),
	}
}

// Add registers an exact route. Re-registering the same method and path
// replaces the previous handler.
func (r *Router) Add(method http.Method, path string, handler Handler) {
	if path == "" || path[0] != '/' {
		panic("path must begin with '/'")
	}
	r.exact[routeKey{method: method, path: path}] = handler
}

// AddVar registers a variable route. The template is compiled once here.
func (r *Router) AddVar(method http.Method, template string, handler VarHandler) {
	r.vars = append(r.vars, varRoute{
		method:  method,
		tmpl:    MustCompile(template),
		handler: handler,
	})
}

// Mount registers a static directory under a URL prefix
func (r *Router) Mount(prefix, dir string) {
	r.static.Mount(prefix, dir)
}

// Find returns the response for req. Lookup order: exact route, variable
// routes in registration order, static mounts, then 404. Find never fails.
func (r *Router) Find(req *http.Request) *http.Response {
	if h, ok := r.exact[routeKey{method: req.Method, path: req.URL}]; ok {
		return orInternalError(h.Serve(req.Clone()))
	}

	for i := range r.vars {
		route := &r.vars[i]
		if route.method != req.Method {
			continue
		}
		if vars, ok := route.tmpl.Match(req.URL); ok {
			return orInternalError(route.handler.ServeVars(req.Clone(), vars))
		}
	}

	if resp, ok := r.static.Resolve(req); ok {
		return resp
	}

	return http.NotFound()
}

// Routes reports the number of exact and variable routes and static mounts
func (r *Router) Routes() (exact, variable, mounts int) {
	return len(r.exact), len(r.vars), len(r.static.Mounts())
}

func orInternalError(resp *http.Response) *http.Response {
	if resp == nil {
		return http.InternalServerError()
	}
	return resp
}
