package reactive

import "strings"

// Path is an ordered sequence of property names.
type Path []string

// ParsePath splits a dotted expression such as "user.name". Whitespace
// around the expression and around each segment is trimmed, so template
// text like "{{ user.name }}" parses the same as "user.name".
func ParsePath(expr string) Path {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	parts := strings.Split(expr, ".")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return Path(parts)
}

// String joins the path with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Resolve walks path from root, indexing into each intermediate value.
// Every traversed property is read through its accessor, so an active
// subscriber is registered along the way. It stops at the first missing
// segment and returns (Undefined, false). An empty path names no property
// and also resolves to (Undefined, false).
func Resolve(root Source, path Path) (Value, bool) {
	v, err := resolve(root, path)
	if err != nil {
		return Undefined, false
	}
	return v, true
}

// Lookup is the strict form of Resolve: a missing segment is reported as a
// *PathError instead of Undefined.
func Lookup(root Source, path Path) (Value, error) {
	return resolve(root, path)
}

func resolve(root Source, path Path) (Value, error) {
	if len(path) == 0 {
		return Undefined, ErrEmptyPath
	}

	src := root
	var value Value = Undefined
	for i, seg := range path {
		if src == nil {
			return Undefined, &PathError{Path: path, Index: i, Reason: "parent is " + kindOf(value)}
		}
		v, ok := src.Lookup(seg)
		if !ok {
			return Undefined, &PathError{Path: path, Index: i, Reason: "no such property"}
		}
		value = v
		src, _ = v.(Source)
	}
	return value, nil
}

func kindOf(v Value) string {
	if v == nil {
		return KindUndefined.String()
	}
	return v.Kind().String()
}

// Assign writes v at path, going through the instrumented accessor of the
// last segment. Intermediate segments are read untracked. It fails with a
// *PathError when an intermediate segment is missing or not an object.
func Assign(root Source, path Path, v Value) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	var parent Source
	var err error
	Untracked(func() {
		parent, err = parentOf(root, path)
	})
	if err != nil {
		return err
	}

	w, ok := parent.(Setter)
	if !ok {
		return &PathError{Path: path, Index: len(path) - 1, Reason: "parent is not writable"}
	}
	return w.Assign(path[len(path)-1], v)
}

// Setter is a Source whose properties can be written by name.
type Setter interface {
	Source
	Assign(key string, v Value) error
}

// Assign implements Setter.
func (o *Object) Assign(key string, v Value) error {
	o.Set(key, v)
	return nil
}

func parentOf(root Source, path Path) (Source, error) {
	if len(path) == 1 {
		return root, nil
	}
	v, err := resolve(root, path[:len(path)-1])
	if err != nil {
		pe := err.(*PathError)
		pe.Path = path
		return nil, pe
	}
	src, ok := v.(Source)
	if !ok {
		return nil, &PathError{Path: path, Index: len(path) - 1, Reason: "parent is " + kindOf(v)}
	}
	return src, nil
}
