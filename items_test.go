package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsSingleSchema(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"items": {"type": "integer"}}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate([]any{float64(1), float64(2), float64(3)}))
	assert.False(t, schema.Validate([]any{float64(1), "two"}))
}

func TestItemsTupleWithAdditionalItems(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"items": [{"type": "string"}, {"type": "integer"}],
		"additionalItems": false
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate([]any{"a", float64(1)}))
	assert.False(t, schema.Validate([]any{"a", float64(1), "extra"}))
	assert.True(t, schema.Validate([]any{"a"}))
}

func TestContainsRequiresOneMatch(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"contains": {"type": "integer", "minimum": 5}}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate([]any{float64(1), float64(7)}))
	assert.False(t, schema.Validate([]any{float64(1), float64(2)}))
}

func TestMinMaxItems(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"minItems": 1, "maxItems": 2}`))
	require.NoError(t, err)

	assert.False(t, schema.Validate([]any{}))
	assert.True(t, schema.Validate([]any{float64(1)}))
	assert.True(t, schema.Validate([]any{float64(1), float64(2)}))
	assert.False(t, schema.Validate([]any{float64(1), float64(2), float64(3)}))
}

func TestUniqueItems(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"uniqueItems": true}`))
	require.NoError(t, err)

	var a, b any
	require.NoError(t, json.Unmarshal([]byte(`[1, 2, 3]`), &a))
	require.NoError(t, json.Unmarshal([]byte(`[1, 2, 1]`), &b))

	assert.True(t, schema.Validate(a))
	assert.False(t, schema.Validate(b))
}

func TestUniqueItemsAcrossNumericRepresentations(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"uniqueItems": true}`))
	require.NoError(t, err)

	assert.False(t, schema.Validate([]any{float64(1), int(1)}))
}
