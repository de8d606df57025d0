package jsonschema

// evaluateConst checks the "const" keyword (draft-06+): instance must be
// deep-equal to the declared value, including an explicit JSON null.
func evaluateConst(schema *Schema, instance any, st *validationState, instancePath, schemaPath string) error {
	if schema.Const == nil || !schema.Const.IsSet {
		return nil
	}
	if deepEqual(instance, schema.Const.Value) {
		return nil
	}
	return st.fail(instancePath, childPath(schemaPath, "const"), "const_mismatch",
		"Value does not match the const value")
}
