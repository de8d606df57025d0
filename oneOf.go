package jsonschema

// evaluateOneOf checks the "oneOf" keyword: instance must validate against
// exactly one listed schema. Every branch runs (no early exit) since the
// exact count of passing branches determines the outcome; inner errors from
// passing branches are never surfaced since there are none to surface.
func (s *Schema) evaluateOneOf(instance any, st *validationState, instancePath, schemaPath string) error {
	base := childPath(schemaPath, "oneOf")

	matches := 0
	var inner []*ValidationError
	for i, sub := range s.OneOf {
		subPath := childPath(base, indexToken(i))
		errs := evaluateSub(sub, instance, instancePath, subPath, st.validateFormats)
		if len(errs) == 0 {
			matches++
		} else {
			inner = append(inner, errs...)
		}
	}

	if matches == 1 {
		return nil
	}
	if err := st.mergeErrors(inner); err != nil {
		return err
	}
	return st.fail(instancePath, base, "one_of_mismatch", "Value must match exactly one schema specified by oneOf")
}
