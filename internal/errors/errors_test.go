package errors

import (
	"bytes"
	"strings"
	"testing"

	crdb "github.com/cockroachdb/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "tree error",
			code:    "E101",
			wantMsg: "Tree file is not valid YAML or JSON",
			wantCat: CategoryTree,
		},
		{
			name:    "config error",
			code:    "E201",
			wantMsg: "Unknown module",
			wantCat: CategoryConfig,
		},
		{
			name:    "live error",
			code:    "E402",
			wantMsg: "Tree file reload failed",
			wantCat: CategoryLive,
		},
		{
			name:    "unknown error code",
			code:    "E999",
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
		})
	}
}

func TestErrorString(t *testing.T) {
	cause := crdb.New("boom")
	err := New("E300").Wrap(cause)

	if got, want := err.Error(), "E300: Invalid arguments: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !crdb.Is(err, cause) {
		t.Error("errors.Is should see the wrapped cause")
	}
	if got := Newf(CategoryCLI, "bad %d", 3).Error(); got != "bad 3" {
		t.Errorf("Newf Error() = %q", got)
	}
}

func TestWrapTakesHintAsSuggestion(t *testing.T) {
	cause := crdb.WithHint(crdb.New("text and children"), "move the text into a child text node")

	err := New("E102").Wrap(cause)
	if err.Suggestion != "move the text into a child text node" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}

	err = New("E102").WithSuggestion("keep me").Wrap(cause)
	if err.Suggestion != "keep me" {
		t.Errorf("explicit suggestion overwritten: %q", err.Suggestion)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E300") != nil {
		t.Error("FromError(nil) should be nil")
	}

	original := New("E201")
	wrapped := crdb.Wrap(original, "loading config")
	if got := FromError(wrapped, "E300"); got != original {
		t.Errorf("FromError should find the coded error in the chain, got %v", got)
	}

	plain := crdb.New("plain")
	if got := FromError(plain, "E301"); got.Code != "E301" || got.Wrapped != plain {
		t.Errorf("FromError(plain) = %+v", got)
	}
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  *Location
		want string
	}{
		{nil, ""},
		{&Location{File: "page.yaml"}, "page.yaml"},
		{&Location{File: "page.yaml", Line: 3}, "page.yaml:3"},
		{&Location{File: "page.yaml", Line: 3, Column: 7}, "page.yaml:3:7"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E102").
		WithLocation("page.yaml", 0, 0).
		WithSuggestion("move the text into a child text node").
		Wrap(crdb.New("div: text and children are exclusive"))

	out := err.Format()
	for _, want := range []string{
		"ERROR E102: Invalid tree structure",
		"page.yaml",
		"div: text and children are exclusive",
		"Hint: move the text into a child text node",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); !strings.HasPrefix(got, "page.yaml: E102: ") {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, crdb.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint(plain) = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, crdb.Wrap(New("E400"), "serve"))
	if !strings.Contains(buf.String(), "E400: Cannot start live server") {
		t.Errorf("Fprint(coded) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, line := range lines {
		if len(line) > 20 {
			t.Errorf("line too long: %q", line)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should produce no lines")
	}
}

func TestRegistryCodes(t *testing.T) {
	codes := GetAllCodes()
	for i, code := range codes {
		if i > 0 && codes[i-1] >= code {
			t.Errorf("codes not sorted: %v", codes)
		}
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("incomplete template for %s", code)
		}
	}
}
