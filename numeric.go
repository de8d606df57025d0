package jsonschema

import "math/big"

// evaluateNumeric runs multipleOf/maximum/minimum against a numeric
// instance, using *Rat/big.Rat throughout for exact precision.
func (s *Schema) evaluateNumeric(instance any, st *validationState, instancePath, schemaPath string) error {
	value := NewRat(instance)
	if value == nil {
		return nil
	}

	if s.MultipleOf != nil {
		result := new(big.Rat).Quo(value.Rat, s.MultipleOf.Rat)
		if !result.IsInt() {
			if err := st.fail(instancePath, childPath(schemaPath, "multipleOf"), "not_multiple_of",
				"{value} should be a multiple of {multiple_of}",
				map[string]any{"value": FormatRat(value), "multiple_of": FormatRat(s.MultipleOf)}); err != nil {
				return err
			}
		}
	}

	if err := s.evaluateMaximumBound(value, st, instancePath, schemaPath); err != nil {
		return err
	}
	if err := s.evaluateMinimumBound(value, st, instancePath, schemaPath); err != nil {
		return err
	}
	return nil
}

// evaluateMaximumBound handles maximum together with exclusiveMaximum,
// whose shape differs by draft: a standalone number under draft-06/07
// (which then takes precedence over maximum and is checked instead of it),
// or a boolean flag paired with maximum under draft-04 (which switches the
// maximum comparison from inclusive to strict).
func (s *Schema) evaluateMaximumBound(value *Rat, st *validationState, instancePath, schemaPath string) error {
	if s.ExclusiveMaximum != nil && s.ExclusiveMaximum.NumValue != nil {
		if value.Cmp(s.ExclusiveMaximum.NumValue.Rat) >= 0 {
			return st.fail(instancePath, childPath(schemaPath, "exclusiveMaximum"), "exclusive_maximum_mismatch",
				"{value} should be less than {exclusive_maximum}",
				map[string]any{"value": FormatRat(value), "exclusive_maximum": FormatRat(s.ExclusiveMaximum.NumValue)})
		}
		return nil
	}

	if s.Maximum == nil {
		return nil
	}
	cmp := value.Cmp(s.Maximum.Rat)
	if s.ExclusiveMaximum.IsTrue() {
		if cmp >= 0 {
			return st.fail(instancePath, childPath(schemaPath, "exclusiveMaximum"), "exclusive_maximum_mismatch",
				"{value} should be less than {exclusive_maximum}",
				map[string]any{"value": FormatRat(value), "exclusive_maximum": FormatRat(s.Maximum)})
		}
		return nil
	}
	if cmp > 0 {
		return st.fail(instancePath, childPath(schemaPath, "maximum"), "value_above_maximum",
			"{value} should be at most {maximum}",
			map[string]any{"value": FormatRat(value), "maximum": FormatRat(s.Maximum)})
	}
	return nil
}

// evaluateMinimumBound mirrors evaluateMaximumBound for minimum/exclusiveMinimum.
func (s *Schema) evaluateMinimumBound(value *Rat, st *validationState, instancePath, schemaPath string) error {
	if s.ExclusiveMinimum != nil && s.ExclusiveMinimum.NumValue != nil {
		if value.Cmp(s.ExclusiveMinimum.NumValue.Rat) <= 0 {
			return st.fail(instancePath, childPath(schemaPath, "exclusiveMinimum"), "exclusive_minimum_mismatch",
				"{value} should be greater than {exclusive_minimum}",
				map[string]any{"value": FormatRat(value), "exclusive_minimum": FormatRat(s.ExclusiveMinimum.NumValue)})
		}
		return nil
	}

	if s.Minimum == nil {
		return nil
	}
	cmp := value.Cmp(s.Minimum.Rat)
	if s.ExclusiveMinimum.IsTrue() {
		if cmp <= 0 {
			return st.fail(instancePath, childPath(schemaPath, "exclusiveMinimum"), "exclusive_minimum_mismatch",
				"{value} should be greater than {exclusive_minimum}",
				map[string]any{"value": FormatRat(value), "exclusive_minimum": FormatRat(s.Minimum)})
		}
		return nil
	}
	if cmp < 0 {
		return st.fail(instancePath, childPath(schemaPath, "minimum"), "value_below_minimum",
			"{value} should be at least {minimum}",
			map[string]any{"value": FormatRat(value), "minimum": FormatRat(s.Minimum)})
	}
	return nil
}
