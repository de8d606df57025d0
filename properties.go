package jsonschema

// evaluateObject runs every object-specific keyword: minProperties/
// maxProperties, required, propertyNames, properties/patternProperties/
// additionalProperties, and dependencies.
func (s *Schema) evaluateObject(obj map[string]any, st *validationState, instancePath, schemaPath string) error {
	if s.MinProperties != nil && float64(len(obj)) < *s.MinProperties {
		if err := st.fail(instancePath, childPath(schemaPath, "minProperties"), "too_few_properties",
			"Value should have at least {min_properties} properties",
			map[string]any{"min_properties": *s.MinProperties, "count": len(obj)}); err != nil {
			return err
		}
	}
	if s.MaxProperties != nil && float64(len(obj)) > *s.MaxProperties {
		if err := st.fail(instancePath, childPath(schemaPath, "maxProperties"), "too_many_properties",
			"Value should have at most {max_properties} properties",
			map[string]any{"max_properties": *s.MaxProperties, "count": len(obj)}); err != nil {
			return err
		}
	}
	if err := s.evaluateRequired(obj, st, instancePath, schemaPath); err != nil {
		return err
	}
	if err := s.evaluatePropertyNames(obj, st, instancePath, schemaPath); err != nil {
		return err
	}
	if err := s.evaluateProperties(obj, st, instancePath, schemaPath); err != nil {
		return err
	}
	if err := s.evaluateDependencies(obj, st, instancePath, schemaPath); err != nil {
		return err
	}
	return nil
}

// evaluateProperties applies properties, patternProperties, and
// additionalProperties together: covered tracks which instance property
// names were matched by properties/patternProperties so additionalProperties
// only sees the rest.
func (s *Schema) evaluateProperties(obj map[string]any, st *validationState, instancePath, schemaPath string) error {
	covered := make(map[string]bool, len(obj))

	if s.Properties != nil {
		base := childPath(schemaPath, "properties")
		for name, sub := range *s.Properties {
			value, exists := obj[name]
			if !exists {
				continue
			}
			covered[name] = true
			propPath := childPath(instancePath, name)
			if err := sub.evaluateNode(value, st, propPath, childPath(base, name)); err != nil {
				return err
			}
		}
	}

	if s.PatternProperties != nil {
		base := childPath(schemaPath, "patternProperties")
		for pattern, sub := range *s.PatternProperties {
			re := s.compiledPatterns[pattern]
			if re == nil {
				continue // compiler guarantees this compiled at compile time
			}
			for name, value := range obj {
				if !re.MatchString(name) {
					continue
				}
				covered[name] = true
				propPath := childPath(instancePath, name)
				if err := sub.evaluateNode(value, st, propPath, childPath(base, escapeToken(pattern))); err != nil {
					return err
				}
			}
		}
	}

	if s.AdditionalProperties != nil {
		base := childPath(schemaPath, "additionalProperties")
		for name, value := range obj {
			if covered[name] {
				continue
			}
			propPath := childPath(instancePath, name)
			if err := s.AdditionalProperties.evaluateNode(value, st, propPath, base); err != nil {
				return err
			}
		}
	}

	return nil
}
