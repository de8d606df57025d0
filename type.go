package jsonschema

import "strings"

// evaluateType checks the "type" keyword: instanceType must equal one of the
// listed type names (the type list is an any-match). "number" always accepts
// an integer instance. "integer" accepts a "number" instance whose value has
// no fractional part only under draft-06/07 (spec.md §3: "draft-06/07 accept
// an integral number where integer is required"); draft-04 rejects a
// fractional-literal number like 3.0 for "integer" even though its value is
// whole.
func evaluateType(schema *Schema, instance any, st *validationState, instancePath, schemaPath string) error {
	if len(schema.Type) == 0 {
		return nil
	}

	instanceType := getDataType(instance)
	for _, wanted := range schema.Type {
		if wanted == instanceType {
			return nil
		}
		if wanted == "number" && instanceType == "integer" {
			return nil
		}
		if wanted == "integer" && instanceType == "number" && schema.draft >= Draft06 && isIntegralNumber(instance) {
			return nil
		}
	}

	return st.fail(instancePath, childPath(schemaPath, "type"), "type_mismatch",
		"Value is {received} but should be {expected}",
		map[string]any{"expected": strings.Join(schema.Type, ", "), "received": instanceType})
}

// isIntegralNumber reports whether a "number"-typed instance's value has
// zero remainder on division by 1, using exact rational arithmetic so large
// or precise literals aren't misjudged by floating-point rounding.
func isIntegralNumber(instance any) bool {
	r := NewRat(instance)
	return r != nil && r.IsInt()
}
