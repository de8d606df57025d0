package jsonschema

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ValidateOption configures a single Validate/ValidateWithErrors call.
type ValidateOption func(*validateOptions)

type validateOptions struct {
	reportMultipleErrors bool
	parseJSON            bool
	validateFormats      *bool
}

// ReportMultipleErrors controls fast-fail (false, the default for Validate)
// vs. collect-all (true) error behavior.
func ReportMultipleErrors(v bool) ValidateOption {
	return func(o *validateOptions) { o.reportMultipleErrors = v }
}

// ParseJSON tells Validate/ValidateWithErrors that instance is a JSON text
// string to be decoded before evaluation, rather than an already-decoded
// Go value.
func ParseJSON(v bool) ValidateOption {
	return func(o *validateOptions) { o.parseJSON = v }
}

// ValidateFormats overrides whether the "format" keyword is asserted.
// Defaults to true: draft-04/06/07 both assert format by default.
func ValidateFormats(v bool) ValidateOption {
	return func(o *validateOptions) { o.validateFormats = &v }
}

// Validate reports whether instance conforms to s. report_multiple_errors
// defaults to false (fast-fail): the call stops at the first violation.
func (s *Schema) Validate(instance any, opts ...ValidateOption) bool {
	o := validateOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	errs, fatal := s.runValidation(instance, o)
	return !fatal && len(errs) == 0
}

// ValidateWithErrors runs in collect-all mode and returns every violation.
func (s *Schema) ValidateWithErrors(instance any, opts ...ValidateOption) []*ValidationError {
	o := validateOptions{reportMultipleErrors: true}
	for _, opt := range opts {
		opt(&o)
	}
	errs, _ := s.runValidation(instance, o)
	return errs
}

// runValidation decodes instance if requested and drives the dispatcher.
// The second result reports a fatal instance-parsing failure, distinct
// from an ordinary validation violation.
func (s *Schema) runValidation(instance any, o validateOptions) ([]*ValidationError, bool) {
	if o.parseJSON {
		if text, ok := instance.(string); ok {
			var decoded any
			dec := json.NewDecoder(strings.NewReader(text))
			dec.UseNumber() // preserve "3" vs "3.0" literal form for evaluateType's draft-06/07 integral check
			if err := dec.Decode(&decoded); err != nil {
				return []*ValidationError{
					newValidationError("", "", "invalid_json_input", "Instance text is not valid JSON: {error}", map[string]any{"error": err.Error()}),
				}, true
			}
			instance = decoded
		}
	}

	formats := true // draft-04/06/07 all assert format by default
	if compiler := s.GetCompiler(); compiler != nil {
		formats = compiler.AssertFormat
	}
	if o.validateFormats != nil {
		formats = *o.validateFormats
	}

	st := &validationState{reportMultiple: o.reportMultipleErrors, validateFormats: formats}
	_ = s.evaluateNode(instance, st, "", "")
	return st.errs, false
}

// validationState carries the running error list and evaluation options
// through a single top-level Validate/ValidateWithErrors call. It is
// allocated fresh per call; nothing here is retained on the Schema.
type validationState struct {
	errs            []*ValidationError
	reportMultiple  bool
	validateFormats bool
}

// fail records a violation. In fast-fail mode it returns errFastFail, which
// every evaluator propagates upward immediately to unwind the recursion; in
// collect-all mode it returns nil so evaluation continues.
func (st *validationState) fail(instancePath, schemaPath, code, message string, params ...map[string]any) error {
	st.errs = append(st.errs, newValidationError(instancePath, schemaPath, code, message, params...))
	if !st.reportMultiple {
		return errFastFail
	}
	return nil
}

// evaluateNode is the per-node dispatcher. Order matches the keyword
// evaluation order: booleans, refs, if/then/else, type, const, enum, the
// type-specific branches, the combinators, format, then the object branch.
func (s *Schema) evaluateNode(instance any, st *validationState, instancePath, schemaPath string) error {
	if s.Boolean != nil {
		if *s.Boolean {
			return nil
		}
		return st.fail(instancePath, schemaPath, "schema_false", "No value is allowed because the schema is 'false'")
	}

	if s.Ref != "" {
		target := s.ResolvedRef
		if target == nil {
			return nil // compilation guarantees this is already resolved
		}
		return target.evaluateNode(instance, st, instancePath, schemaPath)
	}

	if s.If != nil || s.Then != nil || s.Else != nil {
		if err := s.evaluateConditional(instance, st, instancePath, schemaPath); err != nil {
			return err
		}
	}

	if err := evaluateType(s, instance, st, instancePath, schemaPath); err != nil {
		return err
	}
	if err := evaluateConst(s, instance, st, instancePath, schemaPath); err != nil {
		return err
	}
	if err := evaluateEnum(s, instance, st, instancePath, schemaPath); err != nil {
		return err
	}

	switch v := instance.(type) {
	case []any:
		if err := s.evaluateArray(v, st, instancePath, schemaPath); err != nil {
			return err
		}
	case string:
		if err := s.evaluateString(v, st, instancePath, schemaPath); err != nil {
			return err
		}
	}
	if isNumericInstance(instance) {
		if err := s.evaluateNumeric(instance, st, instancePath, schemaPath); err != nil {
			return err
		}
	}

	if s.AllOf != nil {
		if err := s.evaluateAllOf(instance, st, instancePath, schemaPath); err != nil {
			return err
		}
	}
	if s.AnyOf != nil {
		if err := s.evaluateAnyOf(instance, st, instancePath, schemaPath); err != nil {
			return err
		}
	}
	if s.OneOf != nil {
		if err := s.evaluateOneOf(instance, st, instancePath, schemaPath); err != nil {
			return err
		}
	}
	if s.Not != nil {
		if err := s.evaluateNot(instance, st, instancePath, schemaPath); err != nil {
			return err
		}
	}

	if s.Format != nil && st.validateFormats {
		if err := s.evaluateFormat(instance, st, instancePath, schemaPath); err != nil {
			return err
		}
	}

	if obj, ok := instance.(map[string]any); ok {
		if err := s.evaluateObject(obj, st, instancePath, schemaPath); err != nil {
			return err
		}
	}

	return nil
}

func isNumericInstance(instance any) bool {
	switch instance.(type) {
	case float32, float64, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	default:
		return false
	}
}

// childPath appends one token to an instance/schema path, RFC 6901-escaping it.
func childPath(base, token string) string {
	return base + "/" + escapeToken(token)
}

func indexToken(i int) string {
	return strconv.Itoa(i)
}

// evaluateSub runs sub in an isolated collect-all state, used by the
// combinators to learn whether a branch passes and what it would have
// reported without letting fast-fail or partial results leak into the
// caller's own state before the caller decides whether the branch counts.
func evaluateSub(sub *Schema, instance any, instancePath, schemaPath string, validateFormats bool) []*ValidationError {
	scratch := &validationState{reportMultiple: true, validateFormats: validateFormats}
	_ = sub.evaluateNode(instance, scratch, instancePath, schemaPath)
	return scratch.errs
}

// mergeErrors appends already-collected errors into st, honoring fast-fail:
// in fast-fail mode it stops at (and reports) the first of them.
func (st *validationState) mergeErrors(errs []*ValidationError) error {
	for _, e := range errs {
		st.errs = append(st.errs, e)
		if !st.reportMultiple {
			return errFastFail
		}
	}
	return nil
}
