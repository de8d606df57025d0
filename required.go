package jsonschema

// evaluateRequired checks that every listed property name is present.
func (s *Schema) evaluateRequired(obj map[string]any, st *validationState, instancePath, schemaPath string) error {
	if len(s.Required) == 0 {
		return nil
	}
	base := childPath(schemaPath, "required")
	for _, name := range s.Required {
		if _, exists := obj[name]; exists {
			continue
		}
		if err := st.fail(instancePath, base, "missing_required_property",
			"Required property '{property}' is missing", map[string]any{"property": name}); err != nil {
			return err
		}
	}
	return nil
}
