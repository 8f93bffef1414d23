package router

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

// recordMW appends name to order before calling next.
func recordMW(name string, order *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestComposeMiddlewareEmpty(t *testing.T) {
	called := false
	h := compose(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if !called {
		t.Error("handler was not called")
	}
}

func TestComposeMiddlewareOrder(t *testing.T) {
	var order []string
	h := compose([]Middleware{recordMW("first", &order), recordMW("second", &order)},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	want := []string{"first", "second", "handler"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestChain(t *testing.T) {
	var order []string
	mw := Chain(recordMW("a", &order), recordMW("b", &order))

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	want := []string{"a", "b", "handler"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestSkipAndOnly(t *testing.T) {
	isAPI := func(r *http.Request) bool { return r.URL.Path == "/api" }

	tests := []struct {
		name string
		mw   func(*[]string) Middleware
		path string
		want []string
	}{
		{"skip applies", func(o *[]string) Middleware { return Skip(isAPI, recordMW("mw", o)) }, "/page", []string{"mw", "handler"}},
		{"skip skips", func(o *[]string) Middleware { return Skip(isAPI, recordMW("mw", o)) }, "/api", []string{"handler"}},
		{"only applies", func(o *[]string) Middleware { return Only(isAPI, recordMW("mw", o)) }, "/api", []string{"mw", "handler"}},
		{"only skips", func(o *[]string) Middleware { return Only(isAPI, recordMW("mw", o)) }, "/page", []string{"handler"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var order []string
			h := tt.mw(&order)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, "handler")
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tt.path, nil))
			if !reflect.DeepEqual(order, tt.want) {
				t.Errorf("order = %v, want %v", order, tt.want)
			}
		})
	}
}

func TestRouterMiddlewareSeesRoute(t *testing.T) {
	r := quietRouter()
	r.Get("/users/:id", named("user"))

	var seen []string
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			seen = append(seen, Template(req))
			next.ServeHTTP(w, req)
		})
	})

	serve(r, "GET", "/users/1")
	serve(r, "GET", "/missing")

	want := []string{"/users/:id", ""}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("middleware saw %q, want %q", seen, want)
	}
}
