package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultipleOf(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"multipleOf": 0.1}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(float64(0.3)))
	assert.False(t, schema.Validate(float64(0.31)))
}

func TestMaximumMinimumInclusive(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"minimum": 0, "maximum": 10}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(float64(0)))
	assert.True(t, schema.Validate(float64(10)))
	assert.False(t, schema.Validate(float64(-1)))
	assert.False(t, schema.Validate(float64(11)))
}

func TestDraft04BooleanExclusiveMinimum(t *testing.T) {
	compiler := NewCompiler().SetDefaultDraft(Draft04)
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"minimum": 0,
		"exclusiveMinimum": true
	}`))
	require.NoError(t, err)

	assert.False(t, schema.Validate(float64(0)))
	assert.True(t, schema.Validate(float64(0.01)))
}

func TestDraft06NumericExclusiveMaximum(t *testing.T) {
	compiler := NewCompiler().SetDefaultDraft(Draft06)
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-06/schema#",
		"exclusiveMaximum": 10
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(float64(9.999)))
	assert.False(t, schema.Validate(float64(10)))
}
