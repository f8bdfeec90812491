package errors

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"binding error", "E101", "Path does not resolve", CategoryBinding},
		{"template error", "E201", "Template could not be parsed", CategoryTemplate},
		{"cli error", "E303", "Invalid --set assignment", CategoryCLI},
		{"unknown error code", "E999", "Unknown error", ""},
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

func TestWrapAndUnwrap(t *testing.T) {
	base := stderrors.New("boom")
	err := New("E301").Wrap(base)

	if !stderrors.Is(err, base) {
		t.Fatalf("errors.Is did not find the wrapped error")
	}
	if got := err.Error(); got != "E301: Data file could not be decoded: boom" {
		t.Fatalf("Error() = %q", got)
	}
	if FromError(err, "E101") != err {
		t.Fatalf("FromError re-wrapped an MVVMError")
	}
	if FromError(nil, "E101") != nil {
		t.Fatalf("FromError(nil) != nil")
	}
	if got := FromError(base, "E303"); got.Code != "E303" || got.Wrapped != base {
		t.Fatalf("FromError = %+v", got)
	}
}

func TestFormatWithLocation(t *testing.T) {
	DisableColors()
	defer EnableColors()

	dir := t.TempDir()
	file := filepath.Join(dir, "page.html")
	content := "<div>\n<p>{{ a }}</p>\n<p>{{ }}</p>\n<p>{{ b }}</p>\n</div>\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("E202").WithLocation(file, 3, 4).WithSuggestion("Name a path such as user.name")
	out := err.Format()

	for _, want := range []string{
		"ERROR E202: Empty binding expression",
		file + ":3:4",
		"→    3 │ <p>{{ }}</p>",
		"Hint: Name a path such as user.name",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != file+":3:4: E202: Empty binding expression" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestAllCodesHaveTemplates(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("no codes registered")
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("code %s has incomplete template %+v", code, tmpl)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)
	want := []string{"one two", "three", "four five"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("wrapText = %q, want %q", lines, want)
	}
}
