package router

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/searchktools/saaba/core/http"
)

func text(s string) HandlerFunc {
	return func(req *http.Request) *http.Response {
		return http.FromString(s)
	}
}

func TestRouterExactBeforeVariable(t *testing.T) {
	r := NewRouter()
	r.AddVar(http.MethodGET, "/users/{id}", VarHandlerFunc(func(req *http.Request, vars Vars) *http.Response {
		return http.FromString("user " + vars.Get("id"))
	}))
	r.Add(http.MethodGET, "/users/me", text("me"))

	if got := string(r.Find(get("/users/me")).Content); got != "me" {
		t.Errorf("Expected exact route, got %q", got)
	}
	if got := string(r.Find(get("/users/42")).Content); got != "user 42" {
		t.Errorf("Expected variable route, got %q", got)
	}
}

func TestRouterMethodMismatch(t *testing.T) {
	r := NewRouter()
	r.Add(http.MethodPOST, "/submit", text("posted"))
	r.AddVar(http.MethodPOST, "/items/{id}", VarHandlerFunc(func(req *http.Request, vars Vars) *http.Response {
		return http.FromString("item")
	}))

	if resp := r.Find(get("/submit")); resp.Status != 404 {
		t.Errorf("GET /submit should be 404, got %d", resp.Status)
	}
	if resp := r.Find(get("/items/1")); resp.Status != 404 {
		t.Errorf("GET /items/1 should be 404, got %d", resp.Status)
	}
	if resp := r.Find(http.NewRequest(http.MethodPOST, "/submit")); string(resp.Content) != "posted" {
		t.Errorf("POST /submit should match, got %q", resp.Content)
	}
}

func TestRouterFirstVariableRouteWins(t *testing.T) {
	r := NewRouter()
	r.AddVar(http.MethodGET, "/a/{x}", VarHandlerFunc(func(req *http.Request, vars Vars) *http.Response {
		return http.FromString("first")
	}))
	r.AddVar(http.MethodGET, "/a/{y}", VarHandlerFunc(func(req *http.Request, vars Vars) *http.Response {
		return http.FromString("second")
	}))

	if got := string(r.Find(get("/a/1")).Content); got != "first" {
		t.Errorf("Expected first registered route, got %q", got)
	}
}

func TestRouterReRegisterReplaces(t *testing.T) {
	r := NewRouter()
	r.Add(http.MethodGET, "/", text("old"))
	r.Add(http.MethodGET, "/", text("new"))

	if got := string(r.Find(get("/")).Content); got != "new" {
		t.Errorf("Expected replaced handler, got %q", got)
	}
	if exact, _, _ := r.Routes(); exact != 1 {
		t.Errorf("Expected 1 exact route, got %d", exact)
	}
}

func TestRouterNotFound(t *testing.T) {
	r := NewRouter()
	r.Add(http.MethodGET, "/", text("home"))

	resp := r.Find(get("/missing"))
	if resp.Status != 404 {
		t.Errorf("Expected 404, got %d", resp.Status)
	}
}

func TestRouterNilResponse(t *testing.T) {
	r := NewRouter()
	r.Add(http.MethodGET, "/nil", HandlerFunc(func(req *http.Request) *http.Response { return nil }))

	if resp := r.Find(get("/nil")); resp.Status != 500 {
		t.Errorf("Expected 500 for nil response, got %d", resp.Status)
	}
}

func TestRouterHandlerGetsCopy(t *testing.T) {
	r := NewRouter()
	r.Add(http.MethodGET, "/mutate", HandlerFunc(func(req *http.Request) *http.Response {
		req.Headers.Set("X-Touched", "yes")
		return http.FromString("ok")
	}))

	req := get("/mutate")
	r.Find(req)
	if req.Headers.Has("X-Touched") {
		t.Error("Handler must not mutate the caller's request")
	}
}

func TestRouterStaticFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRouter()
	r.Add(http.MethodGET, "/static/app.js", text("route"))
	r.Mount("/static", dir)

	if got := string(r.Find(get("/static/app.js")).Content); got != "route" {
		t.Errorf("Routes must take priority over static files, got %q", got)
	}

	resp := r.Find(http.NewRequest(http.MethodPOST, "/static/app.js"))
	if resp.Status != 200 || string(resp.Content) != "x" {
		t.Errorf("Static mount should serve any method, got %d %q", resp.Status, resp.Content)
	}
}

func TestRouterRoutes(t *testing.T) {
	r := NewRouter()
	r.Add(http.MethodGET, "/", text("home"))
	r.Add(http.MethodPOST, "/", text("post"))
	r.AddVar(http.MethodGET, "/u/{id}", VarHandlerFunc(func(req *http.Request, vars Vars) *http.Response {
		return http.NewResponse()
	}))
	r.Mount("/static", t.TempDir())

	exact, variable, mounts := r.Routes()
	if exact != 2 || variable != 1 || mounts != 1 {
		t.Errorf("Expected 2/1/1, got %d/%d/%d", exact, variable, mounts)
	}
}

func TestRouterAddRejectsRelative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for relative path")
		}
	}()
	NewRouter().Add(http.MethodGET, "relative", text("x"))
}

func BenchmarkRouterFindVariable(b *testing.B) {
	r := NewRouter()
	r.Add(http.MethodGET, "/", text("home"))
	r.AddVar(http.MethodGET, "/users/{id}", VarHandlerFunc(func(req *http.Request, vars Vars) *http.Response {
		return http.FromString(vars.Get("id"))
	}))
	req := get("/users/123")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Find(req)
	}
}
