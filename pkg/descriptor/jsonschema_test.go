package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveSchemas(t *testing.T) {
	assert.Equal(t, "string", String().Schema().Type)
	assert.Equal(t, "integer", Integer().Schema().Type)
	assert.Equal(t, "number", Float().Schema().Type)
	assert.Equal(t, "boolean", Boolean().Schema().Type)
}

func TestOptionalSchemaAdmitsNull(t *testing.T) {
	s := Optional(String()).Schema()

	assert.Empty(t, s.Type)
	assert.ElementsMatch(t, []string{"string", "null"}, s.Types)
}

func TestSequenceSchema(t *testing.T) {
	s := Sequence(Integer()).Schema()

	assert.Equal(t, "array", s.Type)
	require.NotNil(t, s.Items)
	assert.Equal(t, "integer", s.Items.Type)
}

func TestObjectSchema(t *testing.T) {
	s := Object(
		Field{Name: "name", Descriptor: String()},
		Field{Name: "age", Descriptor: Integer()},
		Field{Name: "nickname", Descriptor: Optional(String())},
	).Schema()

	assert.Equal(t, "object", s.Type)
	require.Len(t, s.Properties, 3)
	assert.Equal(t, "string", s.Properties["name"].Type)
	assert.Equal(t, "integer", s.Properties["age"].Type)

	// Optional fields are not required
	assert.ElementsMatch(t, []string{"name", "age"}, s.Required)
}
