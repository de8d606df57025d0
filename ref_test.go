package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefResolvesUnderCustomKeyword(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"x-components": {
			"widget": {"type": "integer"}
		},
		"properties": {
			"a": {"$ref": "#/x-components/widget"}
		}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(map[string]any{"a": float64(3)}))
	assert.False(t, schema.Validate(map[string]any{"a": "not an integer"}))
}

func TestRefResolvesUnderNestedCustomKeywordArray(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"x-variants": {
			"list": [
				{"type": "string"},
				{"type": "boolean"}
			]
		},
		"properties": {
			"a": {"$ref": "#/x-variants/list/1"}
		}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(map[string]any{"a": true}))
	assert.False(t, schema.Validate(map[string]any{"a": "nope"}))
}

func TestResolvePathPublicAPI(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"definitions": {
			"widget": {"type": "integer"}
		},
		"properties": {
			"a": {"$ref": "#/definitions/widget"}
		}
	}`))
	require.NoError(t, err)

	target, err := schema.ResolvePath("#/definitions/widget")
	require.NoError(t, err)
	assert.Equal(t, []string{"integer"}, []string(target.Type))

	target2, err := schema.ResolvePath("/definitions/widget")
	require.NoError(t, err)
	assert.Same(t, target, target2)
}

func TestResolvePathFollowsRefChain(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"definitions": {
			"a": {"$ref": "#/definitions/b"},
			"b": {"type": "string"}
		}
	}`))
	require.NoError(t, err)

	target, err := schema.ResolvePath("#/definitions/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"string"}, []string(target.Type))
}
