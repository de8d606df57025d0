package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goccy/go-json"
)

func TestTypeIntegerAcceptsLiteralInteger(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"type": "integer"}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(float64(3)))
	assert.True(t, schema.Validate(json.Number("3")))
}

func TestTypeIntegerDraft04RejectsFractionalLiteral(t *testing.T) {
	compiler := NewCompiler().SetDefaultDraft(Draft04)
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"type": "integer"
	}`))
	require.NoError(t, err)

	assert.False(t, schema.Validate(json.Number("3.0")))
}

func TestTypeIntegerDraft06AcceptsIntegralLiteral(t *testing.T) {
	compiler := NewCompiler().SetDefaultDraft(Draft06)
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-06/schema#",
		"type": "integer"
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(json.Number("3.0")))
	assert.False(t, schema.Validate(json.Number("3.1")))
}

func TestTypeIntegerDraft07AcceptsIntegralLiteral(t *testing.T) {
	compiler := NewCompiler().SetDefaultDraft(Draft07)
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "integer"
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(json.Number("3.0")))
}

func TestTypeIntegerParseJSONPreservesLiteralForm(t *testing.T) {
	compiler := NewCompiler().SetDefaultDraft(Draft04)
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"type": "integer"
	}`))
	require.NoError(t, err)

	errs := schema.ValidateWithErrors("3.0", ParseJSON(true))
	assert.NotEmpty(t, errs)

	errs = schema.ValidateWithErrors("3", ParseJSON(true))
	assert.Empty(t, errs)
}
