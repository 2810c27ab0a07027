package descriptor

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Kind identifies the shape a descriptor expects
type Kind int

const (
	// KindString expects a text value
	KindString Kind = iota
	// KindInteger expects a whole number
	KindInteger
	// KindFloat expects a floating-point number
	KindFloat
	// KindBoolean expects a true/false value
	KindBoolean
	// KindObject expects a structured record with named fields
	KindObject
	// KindOptional expects the element shape or nil
	KindOptional
	// KindSequence expects a list whose elements all match the element shape
	KindSequence
)

// Field is one named sub-descriptor of an object descriptor. Field order is
// preserved from construction.
type Field struct {
	Name       string
	Descriptor *Descriptor
}

// Descriptor describes the expected shape of a parameter or return value.
// Descriptors are immutable once constructed; build them with the package
// constructors and share them freely across goroutines.
type Descriptor struct {
	kind   Kind
	elem   *Descriptor // element type for optional and sequence
	fields []Field     // ordered fields for object
}

var (
	stringDesc  = &Descriptor{kind: KindString}
	integerDesc = &Descriptor{kind: KindInteger}
	floatDesc   = &Descriptor{kind: KindFloat}
	booleanDesc = &Descriptor{kind: KindBoolean}
)

// String returns the descriptor for text values
func String() *Descriptor { return stringDesc }

// Integer returns the descriptor for whole numbers
func Integer() *Descriptor { return integerDesc }

// Float returns the descriptor for floating-point numbers
func Float() *Descriptor { return floatDesc }

// Boolean returns the descriptor for true/false values
func Boolean() *Descriptor { return booleanDesc }

// Optional returns a descriptor accepting either nil or a value matching elem
func Optional(elem *Descriptor) *Descriptor {
	if elem == nil {
		panic("descriptor: Optional requires a non-nil element descriptor")
	}
	return &Descriptor{kind: KindOptional, elem: elem}
}

// Sequence returns a descriptor for lists whose elements all match elem
func Sequence(elem *Descriptor) *Descriptor {
	if elem == nil {
		panic("descriptor: Sequence requires a non-nil element descriptor")
	}
	return &Descriptor{kind: KindSequence, elem: elem}
}

// Object returns a descriptor for structured records with the given fields.
// Field order is preserved for enumeration and schema export. Duplicate field
// names panic; object shapes are fixed at construction.
func Object(fields ...Field) *Descriptor {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			panic("descriptor: object field requires a name")
		}
		if f.Descriptor == nil {
			panic(fmt.Sprintf("descriptor: object field %q requires a descriptor", f.Name))
		}
		if _, dup := seen[f.Name]; dup {
			panic(fmt.Sprintf("descriptor: duplicate object field %q", f.Name))
		}
		seen[f.Name] = struct{}{}
	}

	copied := make([]Field, len(fields))
	copy(copied, fields)
	return &Descriptor{kind: KindObject, fields: copied}
}

// Kind returns the descriptor's kind tag
func (d *Descriptor) Kind() Kind {
	return d.kind
}

// Elem returns the element descriptor for optional and sequence kinds,
// or nil for other kinds
func (d *Descriptor) Elem() *Descriptor {
	return d.elem
}

// Fields returns a copy of the ordered fields of an object descriptor
func (d *Descriptor) Fields() []Field {
	if d.fields == nil {
		return nil
	}
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// String returns a human-readable type name used in listings and error messages
func (d *Descriptor) String() string {
	switch d.kind {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindOptional:
		return fmt.Sprintf("optional(%s)", d.elem)
	case KindSequence:
		return fmt.Sprintf("sequence(%s)", d.elem)
	case KindObject:
		var b strings.Builder
		b.WriteString("object{")
		for i, f := range d.fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			b.WriteString(f.Descriptor.String())
		}
		b.WriteString("}")
		return b.String()
	default:
		return "unknown"
	}
}

// Validate reports whether value conforms to the descriptor's shape. The check
// is purely structural and recursive; no coercion is performed. A nil return
// means the value conforms; otherwise the error describes the first mismatch,
// including the field path for nested shapes.
//
// Numbers decoded from JSON arrive as float64, so the integer kind accepts a
// float64 carrying a whole number in addition to Go integer types.
func (d *Descriptor) Validate(value interface{}) error {
	switch d.kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return mismatch(d, value)
		}
		return nil

	case KindBoolean:
		if _, ok := value.(bool); !ok {
			return mismatch(d, value)
		}
		return nil

	case KindInteger:
		switch v := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return nil
		case float64:
			if v == math.Trunc(v) && !math.IsInf(v, 0) {
				return nil
			}
			return mismatch(d, value)
		default:
			return mismatch(d, value)
		}

	case KindFloat:
		switch value.(type) {
		case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return nil
		default:
			return mismatch(d, value)
		}

	case KindOptional:
		if value == nil {
			return nil
		}
		return d.elem.Validate(value)

	case KindSequence:
		rv := reflect.ValueOf(value)
		if value == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
			return mismatch(d, value)
		}
		for i := 0; i < rv.Len(); i++ {
			if err := d.elem.Validate(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil

	case KindObject:
		record, ok := value.(map[string]interface{})
		if !ok {
			return mismatch(d, value)
		}
		for _, f := range d.fields {
			fv, present := record[f.Name]
			if !present {
				if f.Descriptor.kind == KindOptional {
					continue
				}
				return fmt.Errorf("field %q: missing (expected %s)", f.Name, f.Descriptor)
			}
			if err := f.Descriptor.Validate(fv); err != nil {
				return fmt.Errorf("field %q: %w", f.Name, err)
			}
		}
		for k := range record {
			if !d.hasField(k) {
				return fmt.Errorf("field %q: not declared", k)
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown descriptor kind %d", d.kind)
	}
}

func (d *Descriptor) hasField(name string) bool {
	for _, f := range d.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func mismatch(d *Descriptor, value interface{}) error {
	if value == nil {
		return fmt.Errorf("expected %s, got nil", d)
	}
	return fmt.Errorf("expected %s, got %T", d, value)
}
