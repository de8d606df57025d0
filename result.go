package jsonschema

import "github.com/kaptinlin/go-i18n"

// ValidationError reports one violated keyword. InstancePath and SchemaPath
// are JSON Pointers (the latter with any leading "#" stripped); Message is
// human-readable English text. Code/Params additionally drive localization
// through Localize, mirroring the rest of this package's go-i18n usage.
type ValidationError struct {
	InstancePath string         `json:"instancePath"`
	SchemaPath   string         `json:"schemaPath"`
	Message      string         `json:"message"`
	Code         string         `json:"-"`
	Params       map[string]any `json:"-"`
}

func newValidationError(instancePath, schemaPath, code, message string, params ...map[string]any) *ValidationError {
	e := &ValidationError{
		InstancePath: instancePath,
		SchemaPath:   trimSchemaPath(schemaPath),
		Code:         code,
		Message:      message,
	}
	if len(params) > 0 {
		e.Params = params[0]
		e.Message = replace(message, params[0])
	}
	return e
}

// Error renders "<instance_path or '# (root)'>: <message>".
func (e *ValidationError) Error() string {
	loc := e.InstancePath
	if loc == "" {
		loc = "# (root)"
	}
	return loc + ": " + e.Message
}

// Localize renders the error's code/params through localizer, falling back
// to Error() when no localizer or no matching message is configured.
func (e *ValidationError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil || e.Code == "" {
		return e.Error()
	}
	return localizer.Get(e.Code, i18n.Vars(e.Params))
}

// trimSchemaPath drops a leading "#" so schema_path always reads as a bare
// JSON Pointer, per spec.
func trimSchemaPath(p string) string {
	if len(p) > 0 && p[0] == '#' {
		return p[1:]
	}
	return p
}
