package core

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/searchktools/saaba/core/http"
	"github.com/searchktools/saaba/core/middleware"
	"github.com/searchktools/saaba/core/router"
)

// Engine registers routes and serves connections one at a time: each
// connection is read, dispatched, answered and closed before the next Accept.
type Engine struct {
	router   *router.Router
	pipeline *middleware.Pipeline
	logger   zerolog.Logger

	readTimeout  time.Duration
	writeTimeout time.Duration
	reader       *http.Reader
	reusePort    bool

	started  atomic.Bool
	dispatch middleware.HandlerFunc
}

// NewEngine creates a new engine instance
func NewEngine() *Engine {
	return &Engine{
		router:         router.NewRouter(),
		pipeline:       middleware.NewPipeline(),
		logger:         zerolog.Nop(),
		readTimeout:  DefaultReadTimeout,
		writeTimeout: DefaultWriteTimeout,
		reader:       http.NewReader(http.DefaultMaxHeaderBytes),
	}
}

// SetLogger sets the engine logger
func (e *Engine) SetLogger(logger zerolog.Logger) {
	e.logger = logger
}

// SetTimeouts sets per-connection read and write deadlines. Zero disables one.
func (e *Engine) SetTimeouts(read, write time.Duration) {
	e.readTimeout = read
	e.writeTimeout = write
}

// SetMaxHeaderBytes bounds the request head size. Read buffers are pooled in
// tiers up to n.
func (e *Engine) SetMaxHeaderBytes(n int) {
	e.mustBeSetup()
	e.reader = http.NewReader(n)
}

// SetReusePort enables SO_REUSEPORT on listeners created by Listen
func (e *Engine) SetReusePort(on bool) {
	e.reusePort = on
}

func (e *Engine) mustBeSetup() {
	if e.started.Load() {
		panic("routes must be registered before the engine starts serving")
	}
}

// Use appends middlewares around dispatch
func (e *Engine) Use(m ...middleware.Middleware) {
	e.mustBeSetup()
	for _, mw := range m {
		e.pipeline.Use(mw)
	}
}

// Handle registers an exact route
func (e *Engine) Handle(method http.Method, path string, handler router.Handler) {
	e.mustBeSetup()
	e.router.Add(method, path, handler)
}

// HandleVar registers a variable route
func (e *Engine) HandleVar(method http.Method, template string, handler router.VarHandler) {
	e.mustBeSetup()
	e.router.AddVar(method, template, handler)
}

// Route registers an exact route from a function
func (e *Engine) Route(method http.Method, path string, handler router.HandlerFunc) {
	e.Handle(method, path, handler)
}

// RouteVar registers a variable route such as "/users/{id}" from a function
func (e *Engine) RouteVar(method http.Method, template string, handler router.VarHandlerFunc) {
	e.HandleVar(method, template, handler)
}

// Static serves files from dir under the URL prefix, for any method
func (e *Engine) Static(prefix, dir string) {
	e.mustBeSetup()
	e.router.Mount(prefix, dir)
}

// GET registers a GET route
func (e *Engine) GET(path string, handler router.HandlerFunc) {
	e.Route(http.MethodGET, path, handler)
}

// POST registers a POST route
func (e *Engine) POST(path string, handler router.HandlerFunc) {
	e.Route(http.MethodPOST, path, handler)
}

// PUT registers a PUT route
func (e *Engine) PUT(path string, handler router.HandlerFunc) {
	e.Route(http.MethodPUT, path, handler)
}

// DELETE registers a DELETE route
func (e *Engine) DELETE(path string, handler router.HandlerFunc) {
	e.Route(http.MethodDELETE, path, handler)
}

// PATCH registers a PATCH route
func (e *Engine) PATCH(path string, handler router.HandlerFunc) {
	e.Route(http.MethodPATCH, path, handler)
}

// HEAD registers a HEAD route
func (e *Engine) HEAD(path string, handler router.HandlerFunc) {
	e.Route(http.MethodHEAD, path, handler)
}

// OPTIONS registers an OPTIONS route
func (e *Engine) OPTIONS(path string, handler router.HandlerFunc) {
	e.Route(http.MethodOPTIONS, path, handler)
}

// GETVar registers a GET variable route
func (e *Engine) GETVar(template string, handler router.VarHandlerFunc) {
	e.RouteVar(http.MethodGET, template, handler)
}

// POSTVar registers a POST variable route
func (e *Engine) POSTVar(template string, handler router.VarHandlerFunc) {
	e.RouteVar(http.MethodPOST, template, handler)
}

// PUTVar registers a PUT variable route
func (e *Engine) PUTVar(template string, handler router.VarHandlerFunc) {
	e.RouteVar(http.MethodPUT, template, handler)
}

// DELETEVar registers a DELETE variable route
func (e *Engine) DELETEVar(template string, handler router.VarHandlerFunc) {
	e.RouteVar(http.MethodDELETE, template, handler)
}

// Dispatch runs the middleware pipeline and the router for req
func (e *Engine) Dispatch(req *http.Request) *http.Response {
	if e.dispatch != nil {
		return e.dispatch(req)
	}
	return e.pipeline.Execute(req, e.router.Find)
}

// Listen opens a TCP listener with the engine's socket options
func (e *Engine) Listen(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{Control: listenControl(e.reusePort)}
	return lc.Listen(ctx, "tcp", addr)
}

// Run listens on host:port and serves until the process exits
func (e *Engine) Run(host string, port int) error {
	return e.RunContext(context.Background(), net.JoinHostPort(host, strconv.Itoa(port)))
}

// RunContext listens on addr and serves until ctx is cancelled
func (e *Engine) RunContext(ctx context.Context, addr string) error {
	ln, err := e.Listen(ctx, addr)
	if err != nil {
		return err
	}
	return e.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is cancelled. Route tables are
// frozen when Serve starts.
func (e *Engine) Serve(ctx context.Context, ln net.Listener) error {
	if !e.started.CompareAndSwap(false, true) {
		return ErrAlreadyServing
	}
	e.dispatch = e.pipeline.Then(e.router.Find)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
		case <-done:
		}
	}()
	defer ln.Close()

	exact, variable, mounts := e.router.Routes()
	e.logger.Info().
		Str("addr", ln.Addr().String()).
		Int("exact_routes", exact).
		Int("variable_routes", variable).
		Int("static_mounts", mounts).
		Msg("server listening")

	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				e.logger.Info().Msg("server stopped")
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}

			delay = nextAcceptDelay(delay)
			e.logger.Warn().Err(err).Dur("retry_in", delay).Msg("accept failed")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
			}
			continue
		}
		delay = 0

		e.handleConnection(conn)
	}
}

// handleConnection serves exactly one request on conn and closes it
func (e *Engine) handleConnection(conn net.Conn) {
	defer conn.Close()

	if e.readTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(e.readTimeout))
	}

	req, err := e.reader.Read(conn)
	if err != nil {
		if errors.Is(err, http.ErrEmptyRequest) {
			e.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("empty request, connection dropped")
			return
		}
		e.logger.Warn().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("bad request")
		e.write(conn, http.BadRequest(), false)
		return
	}

	e.write(conn, e.Dispatch(req), req.Method == http.MethodHEAD)
}

// write sends a connection-scoped copy of resp. The handler's value may be
// shared across requests and is never modified.
func (e *Engine) write(conn net.Conn, resp *http.Response, headOnly bool) {
	out := resp.Clone()
	if headOnly {
		out.Content = nil
	}
	if !out.Headers.Has(http.HeaderConnection) {
		out.SetHeader(http.HeaderConnection, "close")
	}

	if e.writeTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(e.writeTimeout))
	}

	if _, err := out.WriteTo(conn); err != nil {
		e.logger.Warn().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("write response failed")
	}
}

// nextAcceptDelay doubles the retry delay after a failed Accept, from 5ms up
// to one second
func nextAcceptDelay(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	if d *= 2; d > time.Second {
		return time.Second
	}
	return d
}
