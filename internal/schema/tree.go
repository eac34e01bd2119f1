package schema

import (
	"slices"
	"sync"
)

// Tree owns the draft schema. The root container is implicit: it has no name
// or type and is never serialized as a field.
//
// Every operation resolves its path fresh, validates fully and only then
// mutates, so a rejected call leaves the tree untouched.
type Tree struct {
	fields []*Field
	mu     sync.RWMutex
}

// NewTree starts a session with one empty root-level field.
func NewTree() *Tree {
	return &Tree{fields: []*Field{newField()}}
}

// resolveContainer returns a pointer to the children slice located at p.
// Stale children of a non-nested field are not addressable.
func (t *Tree) resolveContainer(op string, p Path) (*[]*Field, error) {
	children := &t.fields
	for depth, idx := range p {
		if idx < 0 || idx >= len(*children) {
			return nil, invalidPath(op, p[:depth+1], "index out of range")
		}
		f := (*children)[idx]
		if !f.Container() {
			return nil, invalidContainer(op, p[:depth+1], f.Type)
		}
		children = &f.Children
	}
	return children, nil
}

// resolveSlot returns the container holding the field at p and its index.
func (t *Tree) resolveSlot(op string, p Path) (*[]*Field, int, error) {
	if p.IsRoot() {
		return nil, -1, invalidPath(op, p, "root is not a field")
	}
	parent, idx := p.Parent()
	children, err := t.resolveContainer(op, parent)
	if err != nil {
		return nil, -1, err
	}
	if idx < 0 || idx >= len(*children) {
		return nil, -1, invalidPath(op, p, "index out of range")
	}
	return children, idx, nil
}

func (t *Tree) resolveField(op string, p Path) (*Field, error) {
	children, idx, err := t.resolveSlot(op, p)
	if err != nil {
		return nil, err
	}
	return (*children)[idx], nil
}

// AppendField adds an empty field at the end of the container at p and returns
// the new field's path.
func (t *Tree) AppendField(p Path) (Path, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	children, err := t.resolveContainer("append", p)
	if err != nil {
		return nil, err
	}
	*children = append(*children, newField())
	return p.Child(len(*children) - 1), nil
}

// RemoveField excises the field at p together with its subtree.
func (t *Tree) RemoveField(p Path) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	children, idx, err := t.resolveSlot("remove", p)
	if err != nil {
		return err
	}
	*children = slices.Delete(*children, idx, idx+1)
	return nil
}

// SetFieldName replaces the name. Sibling names may repeat.
func (t *Tree) SetFieldName(p Path, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := t.resolveField("rename", p)
	if err != nil {
		return err
	}
	f.Name = name
	return nil
}

// SetFieldType replaces the type. The first switch to nested seeds a single
// empty child; later switches keep whatever children exist.
func (t *Tree) SetFieldType(p Path, typ FieldType) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !typ.Valid() {
		return invalidType("retype", p, typ)
	}
	f, err := t.resolveField("retype", p)
	if err != nil {
		return err
	}
	f.Type = typ
	if typ.IsNested() && !f.HasChildren() {
		f.Children = []*Field{newField()}
	}
	return nil
}

// Field returns a copy of the field at p.
func (t *Tree) Field(p Path) (*Field, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	f, err := t.resolveField("get", p)
	if err != nil {
		return nil, err
	}
	return f.clone(), nil
}

// Len returns the number of children in the container at p.
func (t *Tree) Len(p Path) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	children, err := t.resolveContainer("len", p)
	if err != nil {
		return 0, err
	}
	return len(*children), nil
}

// Snapshot returns a deep copy of the full draft, stale children included.
func (t *Tree) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return Snapshot{Fields: cloneFields(t.fields)}
}

// BuildCleanedDocument derives the submittable document without touching the
// draft.
func (t *Tree) BuildCleanedDocument() Document {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return Document{Fields: cleanFields(t.fields)}
}

// WalkFunc receives each visible field in pre-order. Returning false skips the
// field's children.
type WalkFunc func(p Path, depth int, f *Field) bool

// Walk visits every field reachable through nested containers. Children kept
// on non-nested fields are not visited. It walks a copy taken under the read
// lock, so fn may modify the tree; changes show up on the next Walk.
func (t *Tree) Walk(fn WalkFunc) {
	t.mu.RLock()
	fields := cloneFields(t.fields)
	t.mu.RUnlock()

	walk(fields, Root(), 0, fn)
}

func walk(fields []*Field, parent Path, depth int, fn WalkFunc) {
	for i, f := range fields {
		p := parent.Child(i)
		if !fn(p, depth, f) {
			continue
		}
		if f.Container() {
			walk(f.Children, p, depth+1, fn)
		}
	}
}

// Snapshot is the unfiltered draft used for live display.
type Snapshot struct {
	Fields []*Field `json:"fields"`
}
