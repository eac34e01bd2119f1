package export

import (
	"k8s.io/kube-openapi/pkg/validation/spec"

	"github.com/flavono123/nestform/internal/schema"
)

var openAPITypes = map[schema.FieldType]string{
	schema.TypeString: "string",
	schema.TypeNumber: "number",
}

// OpenAPISchema converts the document into an object schema. Properties are a
// map, so sibling order is not kept and a repeated name keeps its last field.
func OpenAPISchema(doc schema.Document) *spec.Schema {
	return objectSchema(doc.Fields)
}

func objectSchema(fields []schema.DocumentField) *spec.Schema {
	props := make(map[string]spec.Schema, len(fields))
	for _, f := range fields {
		props[f.Name] = *fieldSchema(f)
	}
	return &spec.Schema{
		SchemaProps: spec.SchemaProps{
			Type:       spec.StringOrArray{"object"},
			Properties: props,
		},
	}
}

func fieldSchema(f schema.DocumentField) *spec.Schema {
	if f.Type.IsNested() {
		return objectSchema(f.Fields)
	}
	return &spec.Schema{
		SchemaProps: spec.SchemaProps{
			Type: spec.StringOrArray{openAPITypes[f.Type]},
		},
	}
}
