package schema

import (
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Path locates a container or field by sibling indices from the root.
// The empty path is the root container. Paths shift when siblings are removed,
// so they must be resolved again after every structural edit.
type Path []int

func Root() Path {
	return Path{}
}

func (p Path) IsRoot() bool {
	return len(p) == 0
}

func (p Path) Child(index int) Path {
	child := make(Path, 0, len(p)+1)
	child = append(child, p...)
	return append(child, index)
}

// Parent splits the path into its container and the index within it.
func (p Path) Parent() (Path, int) {
	if p.IsRoot() {
		return nil, -1
	}
	return append(Path{}, p[:len(p)-1]...), p[len(p)-1]
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// FieldPath mirrors the document shape, e.g. fields[1].fields[0].
func (p Path) FieldPath() *field.Path {
	fp := field.NewPath("fields")
	for i, idx := range p {
		if i > 0 {
			fp = fp.Child("fields")
		}
		fp = fp.Index(idx)
	}
	return fp
}

func (p Path) String() string {
	return p.FieldPath().String()
}
