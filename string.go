package jsonschema

import "unicode/utf8"

// evaluateString runs every string-specific keyword: maxLength/minLength
// (counted in Unicode scalar values per RFC 8259, not UTF-16 units),
// pattern, and contentEncoding/contentMediaType.
func (s *Schema) evaluateString(value string, st *validationState, instancePath, schemaPath string) error {
	length := utf8.RuneCountInString(value)

	if s.MaxLength != nil && length > int(*s.MaxLength) {
		if err := st.fail(instancePath, childPath(schemaPath, "maxLength"), "string_too_long",
			"Value should be at most {max_length} characters",
			map[string]any{"max_length": *s.MaxLength, "length": length}); err != nil {
			return err
		}
	}
	if s.MinLength != nil && length < int(*s.MinLength) {
		if err := st.fail(instancePath, childPath(schemaPath, "minLength"), "string_too_short",
			"Value should be at least {min_length} characters",
			map[string]any{"min_length": *s.MinLength, "length": length}); err != nil {
			return err
		}
	}
	if s.Pattern != nil {
		// compiler guarantees compiledStringPattern is already populated:
		// validateRegexSyntax ran at compile time and precompilePatterns
		// filled it right after.
		if s.compiledStringPattern != nil && !s.compiledStringPattern.MatchString(value) {
			if err := st.fail(instancePath, childPath(schemaPath, "pattern"), "pattern_mismatch",
				"Value does not match the required pattern {pattern}",
				map[string]any{"pattern": *s.Pattern, "value": value}); err != nil {
				return err
			}
		}
	}
	if err := s.evaluateContent(value, st, instancePath, schemaPath); err != nil {
		return err
	}
	return nil
}
