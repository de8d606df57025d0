package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentUncheckedByDefault(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"contentEncoding": "base64",
		"contentMediaType": "application/json"
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate("not valid base64 at all!!"))
}

func TestContentAssertedWhenEnabled(t *testing.T) {
	compiler := NewCompiler().SetAssertContent(true)
	schema, err := compiler.Compile([]byte(`{
		"contentEncoding": "base64",
		"contentMediaType": "application/json"
	}`))
	require.NoError(t, err)

	assert.False(t, schema.Validate("not valid base64 at all!!"))

	valid := "eyJhIjogMX0=" // base64 of {"a": 1}
	assert.True(t, schema.Validate(valid))
}

func TestContentUnsupportedEncodingFails(t *testing.T) {
	compiler := NewCompiler().SetAssertContent(true)
	schema, err := compiler.Compile([]byte(`{"contentEncoding": "uuencode"}`))
	require.NoError(t, err)

	errs := schema.ValidateWithErrors("anything")
	require.Len(t, errs, 1)
	assert.Equal(t, "unsupported_encoding", errs[0].Code)
}
