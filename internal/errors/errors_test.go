package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/TheOfficialSeb/Styrene/pkg/pathpattern"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "pattern error",
			code:    "P005",
			wantMsg: "Missing text between captures",
			wantCat: CategoryPattern,
		},
		{
			name:    "config error",
			code:    "C001",
			wantMsg: "Config file not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "server error",
			code:    "S001",
			wantMsg: "Server failed",
			wantCat: CategoryServer,
		},
		{
			name:    "unknown error code",
			code:    "X999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
			if err.Index != -1 {
				t.Errorf("Index = %d, want -1", err.Index)
			}
		})
	}
}

func TestStyreneError_Error(t *testing.T) {
	if got := New("P001").Error(); got != "P001: Unterminated quoted name" {
		t.Errorf("Error() = %q", got)
	}
	if got := Newf(CategoryCLI, "bad flag %q", "x").Error(); got != `bad flag "x"` {
		t.Errorf("Error() = %q", got)
	}
}

func TestFromSyntax(t *testing.T) {
	tests := []struct {
		template string
		code     string
		index    int
	}{
		{`/:"open`, "P001", 2},
		{"/:", "P002", 2},
		{"/{a", "P003", 3},
		{`/a\`, "P004", 2},
		{"/:a:b", "P005", 3},
	}

	for _, tt := range tests {
		_, err := pathpattern.Compile(tt.template)
		if err == nil {
			t.Fatalf("Compile(%q) succeeded", tt.template)
		}

		se := FromSyntax(fmt.Errorf("route: %w", err))
		if se == nil {
			t.Fatalf("FromSyntax(%q) = nil", tt.template)
		}
		if se.Code != tt.code {
			t.Errorf("%q: Code = %s, want %s", tt.template, se.Code, tt.code)
		}
		if se.Index != tt.index {
			t.Errorf("%q: Index = %d, want %d", tt.template, se.Index, tt.index)
		}
		if se.Template != tt.template {
			t.Errorf("%q: Template = %q", tt.template, se.Template)
		}
		if !stderrors.Is(se, err.(*pathpattern.SyntaxError).Kind) {
			t.Errorf("%q: coded error does not unwrap to its kind", tt.template)
		}
	}

	if FromSyntax(stderrors.New("plain")) != nil {
		t.Error("FromSyntax of a plain error should be nil")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "S001") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	se := New("C003")
	if FromError(fmt.Errorf("wrapped: %w", se), "S001") != se {
		t.Error("FromError should return the structured error as-is")
	}

	_, perr := pathpattern.Compile("/:")
	if got := FromError(perr, "S001"); got.Code != "P002" {
		t.Errorf("FromError(syntax) code = %s, want P002", got.Code)
	}

	plain := stderrors.New("listen tcp: address in use")
	got := FromError(plain, "S001")
	if got.Code != "S001" || got.Wrapped != plain {
		t.Errorf("FromError(plain) = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	_, err := pathpattern.Compile("/:a:b")
	formatted := FromSyntax(err).Format()

	want := "  /:a:b\n     ^\n"
	if !strings.Contains(formatted, want) {
		t.Errorf("Format() missing caret block %q:\n%s", want, formatted)
	}
	for _, part := range []string{"ERROR P005: Missing text between captures", "Hint:", `missing text after "b"`} {
		if !strings.Contains(formatted, part) {
			t.Errorf("Format() missing %q:\n%s", part, formatted)
		}
	}
	if strings.Contains(formatted, "\033[") {
		t.Error("Format() contains ANSI codes with colors disabled")
	}
}

func TestFormatCaretCountsCodepoints(t *testing.T) {
	DisableColors()
	defer EnableColors()

	_, err := pathpattern.Compile("/é:a:b")
	formatted := FromSyntax(err).Format()
	if !strings.Contains(formatted, "  /é:a:b\n      ^\n") {
		t.Errorf("caret misplaced:\n%s", formatted)
	}
}

func TestFormatCaretWideCharacters(t *testing.T) {
	DisableColors()
	defer EnableColors()

	_, err := pathpattern.Compile("/日:a:b")
	formatted := FromSyntax(err).Format()
	if !strings.Contains(formatted, "  /日:a:b\n       ^\n") {
		t.Errorf("caret misplaced:\n%s", formatted)
	}
}

func TestFormatColors(t *testing.T) {
	EnableColors()
	if !strings.Contains(New("S001").Format(), "\033[") {
		t.Error("Format() should contain ANSI codes when colors are enabled")
	}
}

func TestFormatCompact(t *testing.T) {
	_, err := pathpattern.Compile("/:a:b")
	got := FromSyntax(err).FormatCompact()
	want := `"/:a:b":3: P005: Missing text between captures (missing text after "b" at 3)`
	if got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}

	if got := New("C001").FormatCompact(); got != "C001: Config file not found" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	_, err := pathpattern.Compile("/{")
	var out map[string]any
	if err := json.Unmarshal([]byte(FromSyntax(err).FormatJSON()), &out); err != nil {
		t.Fatal(err)
	}
	if out["code"] != "P003" || out["category"] != "pattern" || out["template"] != "/{" {
		t.Errorf("FormatJSON() = %v", out)
	}
	if out["index"] != float64(2) {
		t.Errorf("index = %v, want 2", out["index"])
	}

	if err := json.Unmarshal([]byte(New("C002").FormatJSON()), &out); err != nil {
		t.Fatal(err)
	}
}

func TestGetTemplateAndRegister(t *testing.T) {
	if _, ok := GetTemplate("P001"); !ok {
		t.Error("P001 should exist")
	}
	if _, ok := GetTemplate("X999"); ok {
		t.Error("X999 should not exist")
	}

	Register("X999", ErrorTemplate{Category: CategoryCLI, Message: "Custom test error"})
	defer delete(registry, "X999")

	if got := New("X999").Message; got != "Custom test error" {
		t.Errorf("Message = %q", got)
	}

	found := false
	for _, code := range GetAllCodes() {
		if code == "X999" {
			found = true
		}
	}
	if !found {
		t.Error("registered code missing from GetAllCodes")
	}
}

func TestWrapText(t *testing.T) {
	if got := wrapText("short text", 100); len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}
	if got := wrapText("this is a longer text that should be wrapped", 20); len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}
	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}
