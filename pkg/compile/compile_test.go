package compile

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/mvvm/internal/errors"
	"github.com/vango-dev/mvvm/pkg/reactive"
	"github.com/vango-dev/mvvm/pkg/vm"
	"github.com/vango-dev/mvvm/pkg/vtest"
)

func newModel(t *testing.T, doc string, opts ...vm.Option) *vm.VM {
	t.Helper()
	model, err := vm.New(vtest.Data(t, doc), opts...)
	require.NoError(t, err)
	return model
}

func TestInterpolationRendersAndUpdates(t *testing.T) {
	model := newModel(t, `{user: {name: Alice}}`)

	tpl, err := CompileString(`<p>Hello {{ user.name }}!</p>`, model)
	require.NoError(t, err)
	assert.Equal(t, `<p>Hello Alice!</p>`, tpl.String())

	require.NoError(t, model.SetPath("user.name", reactive.String("Bob")))
	assert.Equal(t, `<p>Hello Bob!</p>`, tpl.String())
}

func TestMultipleInterpolationsInOneTextNode(t *testing.T) {
	model := newModel(t, `{a: 1, b: 2}`)

	tpl, err := CompileString(`<span>{{a}} + {{ b }} = {{a}}{{b}}</span>`, model)
	require.NoError(t, err)
	assert.Equal(t, `<span>1 + 2 = 12</span>`, tpl.String())
	assert.Len(t, tpl.Bindings(), 4)

	require.NoError(t, model.Set("b", reactive.Int(5)))
	assert.Equal(t, `<span>1 + 5 = 15</span>`, tpl.String())
}

func TestTwoWayBinding(t *testing.T) {
	model := newModel(t, `{user: {name: Alice}}`)

	tpl, err := CompileString(`<div><input id="name" v-model="user.name"><p>{{ user.name }}</p></div>`, model)
	require.NoError(t, err)

	input := tpl.NodeByID("name")
	require.NotNil(t, input)
	assert.Equal(t, []string{"user.name", "user.name"}, exprs(tpl))
	vtest.ExpectContains(t, tpl.String(), `value="Alice"`, `<p>Alice</p>`)

	require.NoError(t, tpl.Input(input, "Zed"))

	out := tpl.String()
	vtest.ExpectContains(t, out, `value="Zed"`, `<p>Zed</p>`)
	vtest.ExpectNotContains(t, out, "Alice")
	assert.Equal(t, "Zed", reactive.Text(model.Get("user").(*reactive.Object).Peek("name")))
}

func TestReplacingNestedObjectUpdatesText(t *testing.T) {
	model := newModel(t, `{user: {name: Alice}}`)
	tpl, err := CompileString(`<p>{{ user.name }}</p>`, model)
	require.NoError(t, err)

	require.NoError(t, model.Set("user", vtest.Data(t, `{name: Carol}`)))
	assert.Equal(t, `<p>Carol</p>`, tpl.String())
}

func TestComputedInterpolation(t *testing.T) {
	model := newModel(t, `{first: Ada, last: Byron}`,
		vm.WithComputed("fullName", func(m *vm.VM) reactive.Value {
			return reactive.String(reactive.Text(m.Get("first")) + " " + reactive.Text(m.Get("last")))
		}))

	tpl, err := CompileString(`<h1>{{ fullName }}</h1>`, model)
	require.NoError(t, err)
	assert.Equal(t, `<h1>Ada Byron</h1>`, tpl.String())

	require.NoError(t, model.Set("last", reactive.String("Lovelace")))
	assert.Equal(t, `<h1>Ada Lovelace</h1>`, tpl.String())
}

func TestValueFormatting(t *testing.T) {
	model := newModel(t, `{n: 3, f: 1.5, ok: true, none: null, list: [a, b], obj: {x: 1}, html: "<b>"}`)

	tpl, err := CompileString(`<p>{{n}}|{{f}}|{{ok}}|{{none}}|{{list}}|{{obj}}|{{missing.path}}|{{html}}</p>`, model)
	require.NoError(t, err)
	assert.Equal(t, `<p>3|1.5|true|null|a,b|[object Object]|undefined|&lt;b&gt;</p>`, tpl.String())
}

func TestCompileErrors(t *testing.T) {
	model := newModel(t, `{a: 1}`)

	tests := []struct {
		name string
		src  string
		code string
	}{
		{"empty interpolation", `<p>{{ }}</p>`, "E202"},
		{"empty directive", `<input v-model="  ">`, "E202"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileString(tt.src, model)
			var me *errors.MVVMError
			require.True(t, stderrors.As(err, &me), "err = %v", err)
			assert.Equal(t, tt.code, me.Code)
		})
	}
}

func TestRejectedTemplateLeavesNoWatchers(t *testing.T) {
	model := newModel(t, `{a: 1, b: 2}`)

	for _, src := range []string{
		`<p>{{ a }} and {{ }}</p>`,
		`<div><p>{{ a }}</p><input v-model="b"><input v-model=""></div>`,
	} {
		_, err := CompileString(src, model)
		var me *errors.MVVMError
		require.True(t, stderrors.As(err, &me), "err = %v", err)
		assert.Equal(t, "E202", me.Code)
	}

	assert.Equal(t, 0, model.Data().Dep("a").Len())
	assert.Equal(t, 0, model.Data().Dep("b").Len())
}

func TestInputErrors(t *testing.T) {
	model := newModel(t, `{a: 1}`)
	tpl, err := CompileString(`<p id="plain">{{ a }}</p><input id="bad" v-model="a.b">`, model)
	require.NoError(t, err)

	var me *errors.MVVMError
	err = tpl.Input(tpl.NodeByID("plain"), "x")
	require.True(t, stderrors.As(err, &me))
	assert.Equal(t, "E203", me.Code)

	err = tpl.Input(tpl.NodeByID("bad"), "x")
	require.True(t, stderrors.As(err, &me))
	assert.Equal(t, "E101", me.Code)
	assert.ErrorIs(t, err, reactive.ErrPathNotFound)

	assert.Nil(t, tpl.NodeByID("nope"))
	assert.Len(t, tpl.Inputs(), 1)
}

func exprs(tpl *Template) []string {
	var out []string
	for _, b := range tpl.Bindings() {
		out = append(out, b.Expr)
	}
	return out
}
