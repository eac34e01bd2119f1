package schema

import (
	json "github.com/goccy/go-json"
)

// Document is the cleaned, submittable form of a tree:
//
//	{"fields": [{"name": "age", "type": "number"},
//	            {"name": "address", "type": "nested", "fields": [...]}]}
type Document struct {
	Fields []DocumentField `json:"fields" yaml:"fields"`
}

// DocumentField is a complete field. Nested fields always carry Fields, even
// when empty; leaves never do.
type DocumentField struct {
	Name   string
	Type   FieldType
	Fields []DocumentField
}

type leafField struct {
	Name string    `json:"name" yaml:"name"`
	Type FieldType `json:"type" yaml:"type"`
}

type nestedField struct {
	Name   string          `json:"name" yaml:"name"`
	Type   FieldType       `json:"type" yaml:"type"`
	Fields []DocumentField `json:"fields" yaml:"fields"`
}

func (f DocumentField) shape() interface{} {
	if !f.Type.IsNested() {
		return leafField{Name: f.Name, Type: f.Type}
	}
	fields := f.Fields
	if fields == nil {
		fields = []DocumentField{}
	}
	return nestedField{Name: f.Name, Type: f.Type, Fields: fields}
}

func (f DocumentField) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.shape())
}

func (f DocumentField) MarshalYAML() (interface{}, error) {
	return f.shape(), nil
}

// cleanFields drops drafts missing a name or type, recursing into nested
// fields. It filters without reordering and never mutates its input.
func cleanFields(fields []*Field) []DocumentField {
	result := []DocumentField{}
	for _, f := range fields {
		if !f.Complete() {
			continue
		}
		df := DocumentField{Name: f.Name, Type: f.Type}
		if f.Type.IsNested() {
			df.Fields = cleanFields(f.Children)
		}
		result = append(result, df)
	}
	return result
}
