package reactive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromYAMLKeepsKeyOrder(t *testing.T) {
	v, err := FromYAML([]byte(`
zeta: 1
alpha:
  name: Alice
  tags: [a, b]
mid: true
none: null
`))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	obj := v.(*Object)

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid", "none"}, obj.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}

	want := map[string]any{
		"zeta":  float64(1),
		"alpha": map[string]any{"name": "Alice", "tags": []any{"a", "b"}},
		"mid":   true,
		"none":  nil,
	}
	if diff := cmp.Diff(want, ToGo(v)); diff != "" {
		t.Fatalf("ToGo mismatch (-want +got):\n%s", diff)
	}
	if obj.Tracked("zeta") {
		t.Fatalf("FromYAML returned an observed graph")
	}
}

func TestFromYAMLAcceptsJSON(t *testing.T) {
	v, err := FromYAML([]byte(`{"user": {"name": "Alice", "age": 30}}`))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	got, ok := Resolve(v.(*Object), ParsePath("user.age"))
	if !ok || Text(got) != "30" {
		t.Fatalf("user.age = %s, %v", Text(got), ok)
	}
}

func TestFromYAMLScalarsAndErrors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"42", "42"},
		{"0x10", "16"},
		{"2.5", "2.5"},
		{"yes", "yes"},
		{"false", "false"},
		{"", "null"},
		{"'007'", "007"},
	}
	for _, tt := range tests {
		v, err := FromYAML([]byte(tt.in))
		if err != nil {
			t.Fatalf("FromYAML(%q): %v", tt.in, err)
		}
		if got := Text(v); got != tt.want {
			t.Errorf("FromYAML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := FromYAML([]byte("a: [1, 2")); err == nil {
		t.Fatalf("expected error for malformed document")
	}
}

func TestFromGo(t *testing.T) {
	v, err := FromGo(map[string]any{
		"b": []any{1, int64(2), float32(0.5)},
		"a": map[string]any{"ok": true, "s": "x", "n": nil},
	})
	if err != nil {
		t.Fatalf("FromGo: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, v.(*Object).Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	want := map[string]any{
		"a": map[string]any{"n": nil, "ok": true, "s": "x"},
		"b": []any{float64(1), float64(2), float64(0.5)},
	}
	if diff := cmp.Diff(want, ToGo(v)); diff != "" {
		t.Fatalf("ToGo mismatch (-want +got):\n%s", diff)
	}

	if _, err := FromGo(map[string]any{"bad": struct{}{}}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestMustFromGo(t *testing.T) {
	v := MustFromGo(map[string]any{"user": map[string]any{"name": "Alice"}})
	if got, _ := Resolve(v.(*Object), ParsePath("user.name")); Text(got) != "Alice" {
		t.Fatalf("user.name = %q, want Alice", Text(got))
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustFromGo did not panic on an unsupported type")
		}
	}()
	MustFromGo([]any{make(chan int)})
}

func TestToGoCycle(t *testing.T) {
	a := NewObject().With("v", Int(1))
	a.With("self", a)
	want := map[string]any{"v": float64(1), "self": nil}
	if diff := cmp.Diff(want, ToGo(a)); diff != "" {
		t.Fatalf("ToGo mismatch (-want +got):\n%s", diff)
	}
}
