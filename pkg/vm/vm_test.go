package vm

import (
	stderrors "errors"
	"testing"

	"github.com/vango-dev/mvvm/internal/errors"
	"github.com/vango-dev/mvvm/pkg/reactive"
	"github.com/vango-dev/mvvm/pkg/vtest"
)

func fullName(m *VM) reactive.Value {
	return reactive.String(reactive.Text(m.Get("first")) + " " + reactive.Text(m.Get("last")))
}

func TestFacadeProxiesTopLevelFields(t *testing.T) {
	model, err := New(vtest.Data(t, `{a: 1, b: {c: 2}}`))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := reactive.Text(model.Get("a")); got != "1" {
		t.Fatalf("Get(a) = %q", got)
	}
	if err := model.Set("a", reactive.Int(5)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := reactive.Text(model.Data().Peek("a")); got != "5" {
		t.Fatalf("data.a = %q after facade write, want 5", got)
	}
	if !model.Data().Tracked("a") || !model.Data().Peek("b").(*reactive.Object).Tracked("c") {
		t.Fatalf("New did not observe the data")
	}
	if model.Get("zzz").Kind() != reactive.KindUndefined {
		t.Fatalf("unknown key should read as undefined")
	}
}

func TestFacadeWriteNotifiesWatchers(t *testing.T) {
	model, err := New(vtest.Data(t, `{user: {name: Alice}}`))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := vtest.NewRecorder()
	model.Watch("user.name", rec.Func())

	if err := model.SetPath("user.name", reactive.String("Bob")); err != nil {
		t.Fatalf("SetPath: %v", err)
	}
	vtest.ExpectTexts(t, rec, "Bob")
}

func TestComputedTracksItsReads(t *testing.T) {
	model, err := New(vtest.Data(t, `{first: Ada, last: Byron}`),
		WithComputed("fullName", fullName))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := vtest.NewRecorder()
	w := model.Watch("fullName", rec.Func())
	if got := reactive.Text(w.Value()); got != "Ada Byron" {
		t.Fatalf("initial fullName = %q", got)
	}

	model.Set("last", reactive.String("Lovelace"))
	model.Set("first", reactive.String("Augusta"))

	vtest.ExpectTexts(t, rec, "Ada Lovelace", "Augusta Lovelace")
}

func TestComputedReadingTwiceFiresPerRegistration(t *testing.T) {
	model, err := New(vtest.Data(t, `{n: 2}`),
		WithComputed("square", func(m *VM) reactive.Value {
			a := m.Get("n").(reactive.Primitive).Interface().(float64)
			b := m.Get("n").(reactive.Primitive).Interface().(float64)
			return reactive.Number(a * b)
		}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := vtest.NewRecorder()
	model.Watch("square", rec.Func())
	model.Set("n", reactive.Int(3))

	vtest.ExpectTexts(t, rec, "9", "9")
}

func TestComputedIsReadOnly(t *testing.T) {
	model, err := New(vtest.Data(t, `{first: A, last: B}`), WithComputed("fullName", fullName))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var me *errors.MVVMError
	err = model.Set("fullName", reactive.String("x"))
	if !stderrors.As(err, &me) || me.Code != "E102" {
		t.Fatalf("Set(computed) err = %v, want E102", err)
	}
	err = model.Set("nope", reactive.String("x"))
	if !stderrors.As(err, &me) || me.Code != "E103" {
		t.Fatalf("Set(unknown) err = %v, want E103", err)
	}
	err = model.SetPath("first.x", reactive.String("x"))
	if !stderrors.As(err, &me) || me.Code != "E101" || !stderrors.Is(err, reactive.ErrPathNotFound) {
		t.Fatalf("SetPath through string err = %v, want E101 wrapping ErrPathNotFound", err)
	}
}

func TestComputedCannotShadowData(t *testing.T) {
	_, err := New(vtest.Data(t, `{first: A}`), WithComputed("first", fullName))
	var me *errors.MVVMError
	if !stderrors.As(err, &me) || me.Code != "E104" {
		t.Fatalf("New err = %v, want E104", err)
	}
}

func TestKeys(t *testing.T) {
	model, err := New(vtest.Data(t, `{b: 1, a: 2}`), WithComputed("sum", func(*VM) reactive.Value { return reactive.Int(3) }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := model.Keys()
	if len(got) != 3 || got[0] != "b" || got[1] != "a" || got[2] != "sum" {
		t.Fatalf("Keys() = %v, want [b a sum]", got)
	}
}
