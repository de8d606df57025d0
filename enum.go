package jsonschema

// evaluateEnum checks the "enum" keyword: instance must deep-equal exactly
// one of the listed values.
func evaluateEnum(schema *Schema, instance any, st *validationState, instancePath, schemaPath string) error {
	if len(schema.Enum) == 0 {
		return nil
	}
	for _, candidate := range schema.Enum {
		if deepEqual(instance, candidate) {
			return nil
		}
	}
	return st.fail(instancePath, childPath(schemaPath, "enum"), "enum_mismatch",
		"Value should match one of the values specified by enum")
}
