package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneOfExactlyOne(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"oneOf": [
			{"type": "string", "maxLength": 3},
			{"type": "string", "minLength": 5}
		]
	}`))
	require.NoError(t, err)

	tests := []struct {
		name  string
		data  string
		valid bool
	}{
		{"matches only the short branch", `"ab"`, true},
		{"matches only the long branch", `"abcdef"`, true},
		{"matches neither branch", `"abcd"`, false},
		{"empty string only matches the short branch", `""`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var instance any
			require.NoError(t, json.Unmarshal([]byte(tt.data), &instance))
			assert.Equal(t, tt.valid, schema.Validate(instance))
		})
	}
}

func TestOneOfBothBranchesMatchIsInvalid(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"oneOf": [
			{"type": "number"},
			{"minimum": 0}
		]
	}`))
	require.NoError(t, err)

	assert.False(t, schema.Validate(float64(5)))

	errs := schema.ValidateWithErrors(float64(5))
	require.Len(t, errs, 1)
	assert.Equal(t, "one_of_mismatch", errs[0].Code)
}

func TestOneOfNoneMatchReportsInnerErrors(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"oneOf": [
			{"type": "string"},
			{"type": "boolean"}
		]
	}`))
	require.NoError(t, err)

	errs := schema.ValidateWithErrors(float64(5), ReportMultipleErrors(true))
	require.NotEmpty(t, errs)
	codes := make([]string, 0, len(errs))
	for _, e := range errs {
		codes = append(codes, e.Code)
	}
	assert.Contains(t, codes, "one_of_mismatch")
	assert.Contains(t, codes, "type_mismatch")
}
