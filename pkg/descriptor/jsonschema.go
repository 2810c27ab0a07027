package descriptor

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Schema exports the descriptor as a JSON Schema for host-side discovery
// payloads. The mapping is structural: integer descriptors become "integer",
// floats become "number", optional shapes admit null, and object fields
// without an optional descriptor become required properties.
func (d *Descriptor) Schema() *jsonschema.Schema {
	switch d.kind {
	case KindString:
		return &jsonschema.Schema{Type: "string"}
	case KindInteger:
		return &jsonschema.Schema{Type: "integer"}
	case KindFloat:
		return &jsonschema.Schema{Type: "number"}
	case KindBoolean:
		return &jsonschema.Schema{Type: "boolean"}
	case KindOptional:
		inner := d.elem.Schema()
		if inner.Type != "" {
			inner.Types = []string{inner.Type, "null"}
			inner.Type = ""
		}
		return inner
	case KindSequence:
		return &jsonschema.Schema{
			Type:  "array",
			Items: d.elem.Schema(),
		}
	case KindObject:
		properties := make(map[string]*jsonschema.Schema, len(d.fields))
		var required []string
		for _, f := range d.fields {
			properties[f.Name] = f.Descriptor.Schema()
			if f.Descriptor.kind != KindOptional {
				required = append(required, f.Name)
			}
		}
		return &jsonschema.Schema{
			Type:       "object",
			Properties: properties,
			Required:   required,
		}
	default:
		return &jsonschema.Schema{}
	}
}
