package vtest

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/mvvm/pkg/reactive"
)

// Recorder collects the values a watcher callback receives.
type Recorder struct {
	mu     sync.Mutex
	values []reactive.Value
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Func returns a callback suitable for reactive.NewWatcher.
//
// Example:
//
//	rec := vtest.NewRecorder()
//	reactive.NewWatcher(data, "user.name", rec.Func())
func (r *Recorder) Func() func(reactive.Value) {
	return func(v reactive.Value) {
		r.mu.Lock()
		r.values = append(r.values, v)
		r.mu.Unlock()
	}
}

// Values returns a copy of the recorded values.
func (r *Recorder) Values() []reactive.Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]reactive.Value, len(r.values))
	copy(out, r.values)
	return out
}

// Texts returns the recorded values rendered with reactive.Text.
func (r *Recorder) Texts() []string {
	values := r.Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = reactive.Text(v)
	}
	return out
}

// Len returns the number of recorded values.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Reset discards recorded values.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.values = nil
	r.mu.Unlock()
}

// ExpectTexts fails the test if the recorded values, rendered as text,
// differ from want.
func ExpectTexts(t testing.TB, r *Recorder, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, r.Texts()); diff != "" {
		t.Fatalf("recorded values mismatch (-want +got):\n%s", diff)
	}
}

// Data decodes a YAML or JSON document into an unobserved object and
// fails the test if that is not possible.
func Data(t testing.TB, doc string) *reactive.Object {
	t.Helper()
	v, err := reactive.FromYAML([]byte(doc))
	if err != nil {
		t.Fatalf("decode test data: %v", err)
	}
	obj, ok := v.(*reactive.Object)
	if !ok {
		t.Fatalf("test data root is %s, want object", v.Kind())
	}
	return obj
}

// ExpectContains fails the test if s does not contain every substring.
func ExpectContains(t testing.TB, s string, substrings ...string) {
	t.Helper()
	for _, sub := range substrings {
		if !strings.Contains(s, sub) {
			t.Errorf("expected output to contain %q, got:\n%s", sub, s)
		}
	}
}

// ExpectNotContains fails the test if s contains any of the substrings.
func ExpectNotContains(t testing.TB, s string, substrings ...string) {
	t.Helper()
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			t.Errorf("expected output NOT to contain %q, got:\n%s", sub, s)
		}
	}
}
