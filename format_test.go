package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAssertedByDefault(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"type": "string", "format": "email"}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate("user@example.com"))
	assert.False(t, schema.Validate("not-an-email"))
}

func TestFormatCanBeDisabled(t *testing.T) {
	compiler := NewCompiler().SetAssertFormat(false)
	schema, err := compiler.Compile([]byte(`{"type": "string", "format": "email"}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate("not-an-email"))
}

func TestFormatDraftGating(t *testing.T) {
	compiler := NewCompiler().SetDefaultDraft(Draft04)
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"type": "string",
		"format": "uri-reference"
	}`))
	require.NoError(t, err)

	// draft-04 does not define "uri-reference"; an unrecognized format is ignored.
	assert.True(t, schema.Validate("not a uri at all"))
}

func TestFormatCustomRegistration(t *testing.T) {
	compiler := NewCompiler()
	compiler.RegisterFormat("even-digits", func(v any) bool {
		s, ok := v.(string)
		return ok && len(s)%2 == 0
	}, "string")

	schema, err := compiler.Compile([]byte(`{"type": "string", "format": "even-digits"}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate("1234"))
	assert.False(t, schema.Validate("123"))
}
