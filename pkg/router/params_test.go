package router

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/TheOfficialSeb/Styrene/pkg/pathpattern"
)

func TestParamParserTypes(t *testing.T) {
	type Params struct {
		Name   string   `param:"name"`
		ID     int64    `param:"id"`
		Count  uint     `param:"count"`
		Ratio  float64  `param:"ratio"`
		Active bool     `param:"active"`
		Rest   []string `param:"rest"`
		Joined string   `param:"rest"`
		Skip   string
	}

	params := pathpattern.Params{
		"name":   "test",
		"id":     "9223372036854775807",
		"count":  "42",
		"ratio":  "0.5",
		"active": "true",
		"rest":   []string{"a", "b"},
	}

	var p Params
	if err := NewParamParser().Parse(params, &p); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := Params{
		Name:   "test",
		ID:     9223372036854775807,
		Count:  42,
		Ratio:  0.5,
		Active: true,
		Rest:   []string{"a", "b"},
		Joined: "a/b",
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("Parse() = %+v, want %+v", p, want)
	}
}

func TestParamParserErrors(t *testing.T) {
	type IntParams struct {
		ID int8 `param:"id"`
	}
	type MapParams struct {
		M map[string]string `param:"m"`
	}

	tests := []struct {
		name   string
		params pathpattern.Params
		target any
	}{
		{"not a number", pathpattern.Params{"id": "abc"}, &IntParams{}},
		{"overflow", pathpattern.Params{"id": "300"}, &IntParams{}},
		{"unsupported kind", pathpattern.Params{"m": "x"}, &MapParams{}},
		{"not a pointer", pathpattern.Params{}, IntParams{}},
		{"pointer to non-struct", pathpattern.Params{}, new(string)},
	}

	for _, tt := range tests {
		if err := NewParamParser().Parse(tt.params, tt.target); err == nil {
			t.Errorf("%s: Parse() succeeded, want error", tt.name)
		}
	}
}

func TestParamParserMissingLeavesField(t *testing.T) {
	type Params struct {
		Page int `param:"page"`
	}
	p := Params{Page: 1}
	if err := NewParamParser().Parse(pathpattern.Params{}, &p); err != nil {
		t.Fatal(err)
	}
	if p.Page != 1 {
		t.Errorf("Page = %d, want 1", p.Page)
	}
}

func TestDecodeParams(t *testing.T) {
	type PostParams struct {
		Year int    `param:"year"`
		Slug string `param:"slug"`
	}

	r := quietRouter()
	var got PostParams
	var decodeErr error
	r.Get("/blog/:year{/:slug}", func(w http.ResponseWriter, req *http.Request) {
		decodeErr = DecodeParams(req, &got)
	})

	serve(r, "GET", "/blog/2024/hello-world")
	if decodeErr != nil {
		t.Fatalf("DecodeParams() error: %v", decodeErr)
	}
	if got.Year != 2024 || got.Slug != "hello-world" {
		t.Errorf("got %+v", got)
	}
}
