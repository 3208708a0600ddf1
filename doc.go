/*
Package saaba provides a small, synchronous HTTP/1.1 server framework for Go.

Saaba serves one connection at a time: a request head is read, dispatched
through the middleware pipeline and router, answered, and the connection is
closed before the next one is accepted.

Features

  - Exact routes keyed by method and path
  - Variable routes with {name} placeholders such as "/users/{id}"
  - Static directory mounts with index.html and trailing-slash redirects
  - Fluent response builder with deterministic serialization
  - Middleware pipeline: recovery, access logging, request ids, metrics, CORS, rate limiting
  - Structured logging with zerolog
  - Configuration from flags, a JSON file and SAABA_* environment variables

Quick Start

Basic usage example:

package main

import (
    "github.com/searchktools/saaba/app"
    "github.com/searchktools/saaba/config"
    "github.com/searchktools/saaba/core/http"
    "github.com/searchktools/saaba/core/router"
)

func main() {
    cfg := config.New()
    application := app.New(cfg)

    engine := application.Engine()
    engine.GET("/", func(req *http.Request) *http.Response {
        return http.HTML("Hello, world!")
    })

    engine.GETVar("/var/{variable}", func(req *http.Request, vars router.Vars) *http.Response {
        return http.FromString("Variable: " + vars.Get("variable"))
    })

    engine.Static("/static", "./static")

    application.Run()
}

Lookup Order

A request is resolved by the first of:

  - an exact route for the request method and path
  - the first variable route, in registration order, whose method and template match
  - the static mount sharing the most path segments with the URL
  - a 404 page

Modules

  - app: Application lifecycle and logger setup
  - config: Configuration loading and management
  - core: Engine, listener and connection loop
  - core/http: Methods, status codes, headers, request parsing and responses
  - core/router: Exact, variable and static routing
  - core/middleware: Middleware pipeline
  - core/mime: File extension to media type table
  - core/observability: Request statistics
  - core/pools: Byte buffer pooling

Route tables are frozen when the engine starts serving; registering a route
afterwards panics.
*/
package saaba
