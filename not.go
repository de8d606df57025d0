package jsonschema

// evaluateNot checks the "not" keyword: instance must fail to validate
// against the given schema. Inner errors from the negated branch are
// never surfaced, since its passing is exactly the failure condition here.
func (s *Schema) evaluateNot(instance any, st *validationState, instancePath, schemaPath string) error {
	base := childPath(schemaPath, "not")
	errs := evaluateSub(s.Not, instance, instancePath, base, st.validateFormats)
	if len(errs) > 0 {
		return nil
	}
	return st.fail(instancePath, base, "not_mismatch", "Value should not match the schema specified by not")
}
