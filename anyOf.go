package jsonschema

// evaluateAnyOf checks the "anyOf" keyword: instance must validate against
// at least one listed schema. When none match, every branch's inner errors
// are merged in plus one envelope error.
func (s *Schema) evaluateAnyOf(instance any, st *validationState, instancePath, schemaPath string) error {
	base := childPath(schemaPath, "anyOf")

	var inner []*ValidationError
	for i, sub := range s.AnyOf {
		subPath := childPath(base, indexToken(i))
		errs := evaluateSub(sub, instance, instancePath, subPath, st.validateFormats)
		if len(errs) == 0 {
			return nil
		}
		inner = append(inner, errs...)
	}

	if err := st.mergeErrors(inner); err != nil {
		return err
	}
	return st.fail(instancePath, base, "any_of_mismatch", "Value does not match any of the schemas specified by anyOf")
}
