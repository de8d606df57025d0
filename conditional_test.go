package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionalIfThenElse(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"if": {"properties": {"country": {"const": "US"}}},
		"then": {"required": ["zip"]},
		"else": {"required": ["postalCode"]}
	}`))
	require.NoError(t, err)

	tests := []struct {
		name  string
		data  string
		valid bool
	}{
		{"US with zip", `{"country": "US", "zip": "12345"}`, true},
		{"US without zip", `{"country": "US"}`, false},
		{"non-US with postalCode", `{"country": "CA", "postalCode": "A1A"}`, true},
		{"non-US without postalCode", `{"country": "CA"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var instance any
			require.NoError(t, json.Unmarshal([]byte(tt.data), &instance))
			assert.Equal(t, tt.valid, schema.Validate(instance))
		})
	}
}

func TestConditionalWithoutElseIsIgnoredWhenIfFails(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"if": {"type": "string"},
		"then": {"minLength": 3}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(float64(5)))
	assert.False(t, schema.Validate("ab"))
	assert.True(t, schema.Validate("abc"))
}

func TestConditionalEnvelopeErrorCode(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"if": {"type": "string"},
		"then": {"minLength": 3}
	}`))
	require.NoError(t, err)

	errs := schema.ValidateWithErrors("ab", ReportMultipleErrors(true))
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Code == "if_then_mismatch" {
			found = true
		}
	}
	assert.True(t, found)
}
