package jsonschema

// evaluateFormat checks the "format" keyword. Custom formats registered on
// the compiler take precedence over the built-in Formats registry; a name
// the active draft doesn't define, or that no validator recognizes, is
// ignored rather than rejected.
func (s *Schema) evaluateFormat(instance any, st *validationState, instancePath, schemaPath string) error {
	if s.Format == nil {
		return nil
	}
	name := *s.Format
	base := childPath(schemaPath, "format")

	if compiler := s.GetCompiler(); compiler != nil {
		compiler.customFormatsRW.RLock()
		def := compiler.customFormats[name]
		compiler.customFormatsRW.RUnlock()
		if def != nil {
			if def.Type != "" && !matchesType(getDataType(instance), def.Type) {
				return nil
			}
			if def.Validate(instance) {
				return nil
			}
			return st.fail(instancePath, base, "format_mismatch",
				"Value does not match format '{format}'", map[string]any{"format": name})
		}
	}

	if !formatRecognizedForDraft(name, s.draft) {
		return nil
	}
	validator, ok := Formats[name]
	if !ok || validator(instance) {
		return nil
	}
	return st.fail(instancePath, base, "format_mismatch",
		"Value does not match format '{format}'", map[string]any{"format": name})
}

// matchesType reports whether a value type satisfies a format's type
// restriction, treating "integer" as a valid "number".
func matchesType(valueType, requiredType string) bool {
	if requiredType == "" {
		return true
	}
	if requiredType == "number" && valueType == "integer" {
		return true
	}
	return valueType == requiredType
}

// draft04Formats lists the format names defined by draft-04 ("date-time",
// "uri", "email", "ipv4", "ipv6", "hostname") and carried unchanged forward.
var draft04Formats = map[string]bool{
	"date-time": true,
	"uri":       true,
	"email":     true,
	"ipv4":      true,
	"ipv6":      true,
	"hostname":  true,
}

// draft06Formats adds the names draft-06 introduced.
var draft06Formats = map[string]bool{
	"uri-reference": true,
	"uri-template":  true,
	"json-pointer":  true,
}

// draft07Formats adds the names draft-07 introduced. "idn-email" is
// deliberately left unchecked: no validator below implements it, so a
// schema naming it always passes (annotation-only behavior). "idn-hostname"
// is listed but has no entry in Formats either, so it is not checked and
// every value passes.
var draft07Formats = map[string]bool{
	"time":                  true,
	"date":                  true,
	"iri":                   true,
	"iri-reference":         true,
	"idn-hostname":          true,
	"relative-json-pointer": true,
	"regex":                 true,
}

func formatRecognizedForDraft(name string, draft Draft) bool {
	if draft04Formats[name] {
		return true
	}
	if draft >= Draft06 && draft06Formats[name] {
		return true
	}
	if draft >= Draft07 && draft07Formats[name] {
		return true
	}
	return false
}
