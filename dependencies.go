package jsonschema

// evaluateDependencies checks draft-04/06/07's single "dependencies"
// keyword: for each present property with a declared dependency, either
// every listed property must also be present, or the whole object must
// additionally validate against the dependency's schema.
func (s *Schema) evaluateDependencies(obj map[string]any, st *validationState, instancePath, schemaPath string) error {
	if len(s.Dependencies) == 0 {
		return nil
	}
	base := childPath(schemaPath, "dependencies")
	for name, dep := range s.Dependencies {
		if _, present := obj[name]; !present {
			continue
		}
		depPath := childPath(base, name)

		if dep.Schema != nil {
			if err := dep.Schema.evaluateNode(obj, st, instancePath, depPath); err != nil {
				return err
			}
			continue
		}

		for _, required := range dep.Required {
			if _, ok := obj[required]; ok {
				continue
			}
			if err := st.fail(instancePath, depPath, "dependency_missing",
				"Property '{property}' requires '{dependency}' to also be present",
				map[string]any{"property": name, "dependency": required}); err != nil {
				return err
			}
		}
	}
	return nil
}
