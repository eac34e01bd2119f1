package schema

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

type FieldType string

const (
	TypeUnset  FieldType = ""
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeNested FieldType = "nested"
)

// FieldTypes lists the selectable types in display order.
var FieldTypes = []FieldType{TypeString, TypeNumber, TypeNested}

func ParseFieldType(s string) (FieldType, error) {
	switch t := FieldType(strings.TrimSpace(s)); t {
	case TypeString, TypeNumber, TypeNested:
		return t, nil
	}
	return TypeUnset, ErrInvalidType
}

func (t FieldType) Valid() bool {
	return t == TypeString || t == TypeNumber || t == TypeNested
}

func (t FieldType) IsNested() bool {
	return t == TypeNested
}

func (t FieldType) String() string {
	return string(t)
}

func fieldTypeValues() []string {
	values := make([]string, 0, len(FieldTypes))
	for _, t := range FieldTypes {
		values = append(values, string(t))
	}
	return values
}

// Field is one node of the schema tree.
// Children is only meaningful while Type is TypeNested; a field switched to
// another type keeps its children so switching back restores them.
type Field struct {
	ID       string
	Name     string
	Type     FieldType
	Children []*Field
}

func newField() *Field {
	return &Field{ID: uuid.New().String()}
}

// Container reports whether the field currently accepts children.
func (f *Field) Container() bool {
	return f.Type.IsNested()
}

// Complete reports whether the field survives cleaning.
func (f *Field) Complete() bool {
	return f.Name != "" && f.Type.Valid()
}

func (f *Field) HasChildren() bool {
	return f.Children != nil
}

func (f *Field) clone() *Field {
	c := &Field{ID: f.ID, Name: f.Name, Type: f.Type}
	if f.Children != nil {
		c.Children = cloneFields(f.Children)
	}
	return c
}

func cloneFields(fields []*Field) []*Field {
	result := make([]*Field, 0, len(fields))
	for _, f := range fields {
		result = append(result, f.clone())
	}
	return result
}

type rawField struct {
	Name   string    `json:"name"`
	Type   FieldType `json:"type"`
	Fields *[]*Field `json:"fields,omitempty"`
}

// MarshalJSON renders the raw draft state, stale children included.
// An empty children sequence is kept as `[]` to tell it apart from none.
func (f Field) MarshalJSON() ([]byte, error) {
	raw := rawField{Name: f.Name, Type: f.Type}
	if f.Children != nil {
		raw.Fields = &f.Children
	}
	return json.Marshal(raw)
}
