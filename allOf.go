package jsonschema

// evaluateAllOf checks the "allOf" keyword: instance must validate against
// every listed schema. Every sub-schema runs against the shared state so
// its own violations surface individually, plus one envelope error if any
// of them failed.
func (s *Schema) evaluateAllOf(instance any, st *validationState, instancePath, schemaPath string) error {
	base := childPath(schemaPath, "allOf")
	anyFailed := false

	for i, sub := range s.AllOf {
		subPath := childPath(base, indexToken(i))
		before := len(st.errs)
		if err := sub.evaluateNode(instance, st, instancePath, subPath); err != nil {
			return err
		}
		if len(st.errs) > before {
			anyFailed = true
		}
	}

	if !anyFailed {
		return nil
	}
	return st.fail(instancePath, base, "all_of_mismatch", "Value does not match all the schemas specified by allOf")
}
