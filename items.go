package jsonschema

// evaluateArray runs every array-specific keyword against items: items/
// additionalItems, contains, maxItems, minItems, uniqueItems.
func (s *Schema) evaluateArray(items []any, st *validationState, instancePath, schemaPath string) error {
	if err := s.evaluateItems(items, st, instancePath, schemaPath); err != nil {
		return err
	}
	if err := s.evaluateContains(items, st, instancePath, schemaPath); err != nil {
		return err
	}
	if s.MaxItems != nil && float64(len(items)) > *s.MaxItems {
		if err := st.fail(instancePath, childPath(schemaPath, "maxItems"), "items_too_long",
			"Value should have at most {max_items} items",
			map[string]any{"max_items": *s.MaxItems, "count": len(items)}); err != nil {
			return err
		}
	}
	if s.MinItems != nil && float64(len(items)) < *s.MinItems {
		if err := st.fail(instancePath, childPath(schemaPath, "minItems"), "items_too_short",
			"Value should have at least {min_items} items",
			map[string]any{"min_items": *s.MinItems, "count": len(items)}); err != nil {
			return err
		}
	}
	if err := s.evaluateUniqueItems(items, st, instancePath, schemaPath); err != nil {
		return err
	}
	return nil
}

// evaluateItems applies the items keyword. Under the draft-04/06/07 sum
// type, either a single schema validates every element, or a tuple list
// validates positionally and additionalItems governs the rest.
func (s *Schema) evaluateItems(items []any, st *validationState, instancePath, schemaPath string) error {
	if len(s.ItemsTuple) > 0 {
		base := childPath(schemaPath, "items")
		for i, item := range items {
			itemPath := childPath(instancePath, indexToken(i))
			if i >= len(s.ItemsTuple) {
				if s.AdditionalItems == nil {
					break
				}
				if err := s.AdditionalItems.evaluateNode(item, st, itemPath, childPath(schemaPath, "additionalItems")); err != nil {
					return err
				}
				continue
			}
			if err := s.ItemsTuple[i].evaluateNode(item, st, itemPath, childPath(base, indexToken(i))); err != nil {
				return err
			}
		}
		return nil
	}

	if s.Items == nil {
		return nil
	}
	base := childPath(schemaPath, "items")
	for i, item := range items {
		itemPath := childPath(instancePath, indexToken(i))
		if err := s.Items.evaluateNode(item, st, itemPath, base); err != nil {
			return err
		}
	}
	return nil
}

// evaluateContains checks that at least one element satisfies the contains
// schema. Per-element failures for non-matching elements are not surfaced;
// only the overall "nothing matched" outcome is reported.
func (s *Schema) evaluateContains(items []any, st *validationState, instancePath, schemaPath string) error {
	if s.Contains == nil {
		return nil
	}
	base := childPath(schemaPath, "contains")
	for i, item := range items {
		itemPath := childPath(instancePath, indexToken(i))
		errs := evaluateSub(s.Contains, item, itemPath, base, st.validateFormats)
		if len(errs) == 0 {
			return nil
		}
	}
	return st.fail(instancePath, base, "contains_mismatch", "Value does not contain an item matching the contains schema")
}
