package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesAndAdditionalProperties(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"properties": {"name": {"type": "string"}},
		"patternProperties": {"^x-": {"type": "boolean"}},
		"additionalProperties": false
	}`))
	require.NoError(t, err)

	tests := []struct {
		name  string
		data  string
		valid bool
	}{
		{"declared property only", `{"name": "a"}`, true},
		{"pattern property matches", `{"name": "a", "x-debug": true}`, true},
		{"pattern property wrong type", `{"x-debug": "nope"}`, false},
		{"undeclared property rejected", `{"extra": 1}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var instance any
			require.NoError(t, json.Unmarshal([]byte(tt.data), &instance))
			assert.Equal(t, tt.valid, schema.Validate(instance))
		})
	}
}

func TestRequiredProperties(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"required": ["id", "name"]}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(map[string]any{"id": float64(1), "name": "a"}))
	assert.False(t, schema.Validate(map[string]any{"id": float64(1)}))
}

func TestPropertyNames(t *testing.T) {
	compiler := NewCompiler().SetDefaultDraft(Draft06)
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-06/schema#",
		"propertyNames": {"pattern": "^[a-z]+$"}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(map[string]any{"abc": float64(1)}))
	assert.False(t, schema.Validate(map[string]any{"ABC": float64(1)}))
}

func TestMinMaxProperties(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{"minProperties": 1, "maxProperties": 2}`))
	require.NoError(t, err)

	assert.False(t, schema.Validate(map[string]any{}))
	assert.True(t, schema.Validate(map[string]any{"a": float64(1)}))
	assert.False(t, schema.Validate(map[string]any{"a": float64(1), "b": float64(2), "c": float64(3)}))
}

func TestDependenciesSchemaForm(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"dependencies": {
			"creditCard": {"required": ["billingAddress"]}
		}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(map[string]any{}))
	assert.False(t, schema.Validate(map[string]any{"creditCard": "1234"}))
	assert.True(t, schema.Validate(map[string]any{"creditCard": "1234", "billingAddress": "x"}))
}

func TestDependenciesPropertyForm(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"dependencies": {
			"creditCard": ["billingAddress"]
		}
	}`))
	require.NoError(t, err)

	assert.False(t, schema.Validate(map[string]any{"creditCard": "1234"}))
	assert.True(t, schema.Validate(map[string]any{"creditCard": "1234", "billingAddress": "x"}))
}
