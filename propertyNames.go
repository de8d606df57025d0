package jsonschema

// evaluatePropertyNames checks every instance property name against the
// propertyNames schema (draft-06+). The name under test is always a string.
func (s *Schema) evaluatePropertyNames(obj map[string]any, st *validationState, instancePath, schemaPath string) error {
	if s.PropertyNames == nil {
		return nil
	}
	base := childPath(schemaPath, "propertyNames")
	for name := range obj {
		propPath := childPath(instancePath, name)
		if err := s.PropertyNames.evaluateNode(name, st, propPath, base); err != nil {
			return err
		}
	}
	return nil
}
