package jsonschema

// evaluateConditional applies "if"/"then"/"else". The branch selected by
// "if" runs against the shared state so its own violations surface
// individually, plus one envelope error at "/if" if that branch failed.
// "then"/"else" are ignored when "if" is absent; the unselected branch is
// never evaluated.
func (s *Schema) evaluateConditional(instance any, st *validationState, instancePath, schemaPath string) error {
	if s.If == nil {
		return nil
	}
	base := childPath(schemaPath, "if")

	ifErrs := evaluateSub(s.If, instance, instancePath, base, st.validateFormats)

	branch, branchPath := s.Then, childPath(schemaPath, "then")
	if len(ifErrs) > 0 {
		branch, branchPath = s.Else, childPath(schemaPath, "else")
	}
	if branch == nil {
		return nil
	}

	before := len(st.errs)
	if err := branch.evaluateNode(instance, st, instancePath, branchPath); err != nil {
		return err
	}
	if len(st.errs) == before {
		return nil
	}
	if len(ifErrs) == 0 {
		return st.fail(instancePath, base, "if_then_mismatch", "Value meets the 'if' condition but does not match the 'then' schema")
	}
	return st.fail(instancePath, base, "if_else_mismatch", "Value fails the 'if' condition and does not match the 'else' schema")
}
