package compile

import (
	"bytes"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/mvvm/internal/errors"
	"github.com/vango-dev/mvvm/pkg/reactive"
)

// interpolation matches "{{ path }}" in text nodes.
var interpolation = regexp.MustCompile(`\{\{(.*?)\}\}`)

// DirectivePrefix marks attributes that bind an element's value.
const DirectivePrefix = "v-"

// BindingKind says which part of a node a binding writes.
type BindingKind int

const (
	// BindText rewrites a text node's content.
	BindText BindingKind = iota

	// BindValue rewrites an element's value attribute and accepts input.
	BindValue
)

// Binding is one watcher created by the compiler.
type Binding struct {
	Kind    BindingKind
	Node    *html.Node
	Expr    string
	Watcher *reactive.Watcher
}

// Template is a compiled HTML fragment whose bound nodes follow the model.
type Template struct {
	root     *html.Node
	model    reactive.Source
	bindings []Binding
	inputs   map[*html.Node]reactive.Path

	logger    *slog.Logger
	watchOpts []reactive.WatcherOption
}

// Option configures compilation.
type Option func(*Template)

// WithLogger sets the logger used for binding updates. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Template) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithWatcherOptions passes options to every watcher the compiler creates.
func WithWatcherOptions(opts ...reactive.WatcherOption) Option {
	return func(t *Template) {
		t.watchOpts = append(t.watchOpts, opts...)
	}
}

// Compile parses src as an HTML fragment and binds it to model.
//
// Text nodes containing {{ path }} interpolations get one watcher per
// interpolation. Elements carrying a v- directive (v-model="path") get
// their value attribute from the path, a watcher keeping it current and
// two-way binding through Input.
func Compile(src io.Reader, model reactive.Source, opts ...Option) (*Template, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(src, body)
	if err != nil {
		return nil, errors.New("E201").Wrap(err)
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return CompileNode(root, model, opts...)
}

// CompileString is Compile for a template held in memory.
func CompileString(src string, model reactive.Source, opts ...Option) (*Template, error) {
	return Compile(strings.NewReader(src), model, opts...)
}

// CompileNode binds an already parsed tree to model. The tree is modified
// in place as the model changes.
func CompileNode(root *html.Node, model reactive.Source, opts ...Option) (*Template, error) {
	t := &Template{
		root:   root,
		model:  model,
		inputs: make(map[*html.Node]reactive.Path),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := check(root); err != nil {
		return nil, err
	}
	t.walk(root)
	return t, nil
}

// check reports the first malformed binding in the tree rooted at n.
// It runs before any watcher exists, so a rejected template leaves
// nothing subscribed to the model.
func check(n *html.Node) error {
	switch n.Type {
	case html.TextNode:
		for _, m := range interpolation.FindAllStringSubmatch(n.Data, -1) {
			if strings.TrimSpace(m[1]) == "" {
				return errors.New("E202").WithDetail("text " + strings.TrimSpace(n.Data) + " contains an empty interpolation")
			}
		}
	case html.ElementNode:
		for _, attr := range n.Attr {
			if strings.HasPrefix(attr.Key, DirectivePrefix) && strings.TrimSpace(attr.Val) == "" {
				return errors.New("E202").WithDetail("directive " + attr.Key + " on <" + n.Data + "> names no path")
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}

func (t *Template) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		t.bindText(n)
	case html.ElementNode:
		t.bindElement(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t.walk(c)
	}
}

// bindText creates one watcher per interpolation in n and re-renders the
// node text from its original content whenever any of them fires.
func (t *Template) bindText(n *html.Node) {
	source := n.Data
	matches := interpolation.FindAllStringSubmatch(source, -1)
	if len(matches) == 0 {
		return
	}

	watchers := make([]*reactive.Watcher, len(matches))
	render := func() {
		i := 0
		n.Data = interpolation.ReplaceAllStringFunc(source, func(string) string {
			v := watchers[i].Value()
			i++
			return reactive.Text(v)
		})
	}

	for i, m := range matches {
		expr := strings.TrimSpace(m[1])
		watchers[i] = reactive.NewWatcher(t.model, expr, func(v reactive.Value) {
			t.logger.Debug("compile: text binding updated", "expr", expr, "value", reactive.Text(v))
			render()
		}, t.watchOpts...)
		t.bindings = append(t.bindings, Binding{Kind: BindText, Node: n, Expr: expr, Watcher: watchers[i]})
	}
	render()
}

// bindElement binds the value attribute of n to each v- directive.
func (t *Template) bindElement(n *html.Node) {
	for _, attr := range n.Attr {
		if !strings.HasPrefix(attr.Key, DirectivePrefix) {
			continue
		}
		expr := strings.TrimSpace(attr.Val)

		w := reactive.NewWatcher(t.model, expr, func(v reactive.Value) {
			t.logger.Debug("compile: value binding updated", "expr", expr, "value", reactive.Text(v))
			setAttr(n, "value", reactive.Text(v))
		}, t.watchOpts...)
		setAttr(n, "value", reactive.Text(w.Value()))

		t.inputs[n] = w.Path()
		t.bindings = append(t.bindings, Binding{Kind: BindValue, Node: n, Expr: expr, Watcher: w})
	}
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Input simulates an input event on a bound element: value is written as a
// string through the instrumented accessor at the element's path, which
// notifies every binding of that path.
func (t *Template) Input(n *html.Node, value string) error {
	path, ok := t.inputs[n]
	if !ok {
		return errors.New("E203")
	}
	if err := reactive.Assign(t.model, path, reactive.String(value)); err != nil {
		return errors.FromError(err, "E101")
	}
	return nil
}

// Bindings returns the bindings in document order.
func (t *Template) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Inputs returns the elements that accept Input, in document order.
func (t *Template) Inputs() []*html.Node {
	var out []*html.Node
	for _, b := range t.bindings {
		if b.Kind == BindValue {
			out = append(out, b.Node)
		}
	}
	return out
}

// NodeByID returns the first element whose id attribute equals id.
func (t *Template) NodeByID(id string) *html.Node {
	var found *html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == id {
					found = n
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(t.root)
	return found
}

// Render writes the current state of the fragment as HTML.
func (t *Template) Render(w io.Writer) error {
	for c := t.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// String renders the fragment to a string.
func (t *Template) String() string {
	var buf bytes.Buffer
	if err := t.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}
