package jsonschema

// evaluateUniqueItems checks the "uniqueItems" keyword with pairwise
// deep-equality; the first offending pair found is reported.
func (s *Schema) evaluateUniqueItems(items []any, st *validationState, instancePath, schemaPath string) error {
	if s.UniqueItems == nil || !*s.UniqueItems || len(items) < 2 {
		return nil
	}
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if deepEqual(items[i], items[j]) {
				return st.fail(instancePath, childPath(schemaPath, "uniqueItems"), "unique_items_mismatch",
					"Items at index {first} and {second} are duplicates",
					map[string]any{"first": i, "second": j})
			}
		}
	}
	return nil
}
