package middleware

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/searchktools/saaba/core/http"
	"github.com/searchktools/saaba/core/observability"
)

// HandlerFunc turns a request into a response
type HandlerFunc func(req *http.Request) *http.Response

// Middleware wraps dispatch. It may call next, or answer on its own to stop
// the chain.
type Middleware func(req *http.Request, next HandlerFunc) *http.Response

// Pipeline runs middlewares in registration order around a final handler
type Pipeline struct {
	handlers []Middleware
}

// NewPipeline creates an empty pipeline
func NewPipeline() *Pipeline {
	return &Pipeline{
		handlers: make([]Middleware, 0, 8),
	}
}

// Use appends a middleware
func (p *Pipeline) Use(m Middleware) *Pipeline {
	p.handlers = append(p.handlers, m)
	return p
}

// Len returns the number of middlewares
func (p *Pipeline) Len() int {
	return len(p.handlers)
}

// Then composes the pipeline with final once, for reuse across requests
func (p *Pipeline) Then(final HandlerFunc) HandlerFunc {
	h := final
	for i := len(p.handlers) - 1; i >= 0; i-- {
		m, next := p.handlers[i], h
		h = func(req *http.Request) *http.Response {
			return m(req, next)
		}
	}
	return h
}

// Execute runs the pipeline for a single request
func (p *Pipeline) Execute(req *http.Request, final HandlerFunc) *http.Response {
	if len(p.handlers) == 0 {
		return final(req)
	}
	return p.Then(final)(req)
}

// Recovery turns a panicking handler into a 500 response
func Recovery(logger zerolog.Logger) Middleware {
	return func(req *http.Request, next HandlerFunc) (resp *http.Response) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error().
					Interface("panic", err).
					Str("method", req.Method.String()).
					Str("url", req.URL).
					Msg("handler panic recovered")
				resp = http.InternalServerError()
			}
		}()
		return next(req)
	}
}

// Logger writes one debug line per request
func Logger(logger zerolog.Logger) Middleware {
	return func(req *http.Request, next HandlerFunc) *http.Response {
		start := time.Now()
		resp := next(req)
		logger.Debug().
			Str("method", req.Method.String()).
			Str("url", req.URL).
			Int("status", resp.Status).
			Int("bytes", len(resp.Content)).
			Dur("duration", time.Since(start)).
			Msg("request")
		return resp
	}
}

// RequestID tags every response with a sequential X-Request-Id
func RequestID() Middleware {
	var counter uint64

	return func(req *http.Request, next HandlerFunc) *http.Response {
		id := atomic.AddUint64(&counter, 1)
		resp := next(req).Clone()
		resp.SetHeader(http.HeaderRequestID, strconv.FormatUint(id, 10))
		return resp
	}
}

// Metrics records every request in m, keyed by method. Responses with a 5xx
// status count as errors.
func Metrics(m *observability.Monitor) Middleware {
	return func(req *http.Request, next HandlerFunc) *http.Response {
		start := time.Now()
		resp := next(req)
		m.Record(req.Method.String(), time.Since(start), resp.Status >= 500)
		return resp
	}
}

var corsMethods = strings.Join([]string{
	http.MethodGET.String(),
	http.MethodPOST.String(),
	http.MethodPUT.String(),
	http.MethodDELETE.String(),
	http.MethodOPTIONS.String(),
}, ", ")

// CORS allows cross-origin requests from origin ("*" for any). OPTIONS
// requests are answered with 204 without reaching the router.
func CORS(origin string) Middleware {
	return func(req *http.Request, next HandlerFunc) *http.Response {
		var resp *http.Response
		if req.Method == http.MethodOPTIONS {
			resp = http.FromStatus(http.StatusNoContent)
		} else {
			resp = next(req).Clone()
		}

		resp.SetHeader("Access-Control-Allow-Origin", origin)
		resp.SetHeader("Access-Control-Allow-Methods", corsMethods)
		resp.SetHeader("Access-Control-Allow-Headers", "Content-Type, Authorization")
		return resp
	}
}

// RateLimiter admits at most requestsPerSecond requests per one-second window
// and answers the rest with 429
func RateLimiter(requestsPerSecond int) Middleware {
	var (
		mu         sync.Mutex
		tokens     = requestsPerSecond
		lastRefill = time.Now()
	)

	allow := func() bool {
		mu.Lock()
		defer mu.Unlock()

		if now := time.Now(); now.Sub(lastRefill) >= time.Second {
			tokens = requestsPerSecond
			lastRefill = now
		}
		if tokens == 0 {
			return false
		}
		tokens--
		return true
	}

	return func(req *http.Request, next HandlerFunc) *http.Response {
		if !allow() {
			return http.FromString("Too Many Requests").
				WithStatus(int(http.StatusTooManyRequests)).
				WithHeader(http.HeaderContentType, "text/plain; charset=utf-8")
		}
		return next(req)
	}
}
