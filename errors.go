package jsonschema

import (
	"errors"
	"strconv"
)

// === Compile-time errors ===
var (
	// ErrInvalidJSON is returned when the raw schema document is not valid JSON.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrInvalidKeywordShape is returned when a recognized keyword holds a
	// value of the wrong shape, e.g. "required" not an array of strings.
	ErrInvalidKeywordShape = errors.New("invalid keyword shape")

	// ErrInvalidDraftConstruct is returned when a construct is used under a
	// draft that does not support it, e.g. a boolean schema under draft-04.
	ErrInvalidDraftConstruct = errors.New("construct not valid for draft")

	// ErrInterdependencyMissing is returned when a keyword requires a
	// sibling keyword that is absent, e.g. draft-04 exclusiveMinimum
	// without minimum.
	ErrInterdependencyMissing = errors.New("required sibling keyword missing")

	// ErrUnresolvableRef is returned when a $ref cannot be resolved in sync
	// mode because no provider supplied a document for its absolute URI.
	ErrUnresolvableRef = errors.New("unresolvable reference")

	// ErrRefCycle is returned when resolving a $ref revisits a URI already
	// on the current resolution path.
	ErrRefCycle = errors.New("reference cycle")

	// ErrSchemaCompilation wraps a schema tree's accumulated compile errors.
	ErrSchemaCompilation = errors.New("schema compilation failed")
)

// === Network and IO related errors (async fetcher) ===
var (
	// ErrNoLoaderRegistered is returned when no loader is registered for the specified scheme.
	ErrNoLoaderRegistered = errors.New("no loader registered for scheme")

	// ErrDataRead is returned when data cannot be read from the specified URL.
	ErrDataRead = errors.New("data read failed")

	// ErrNetworkFetch is returned when there is an error fetching from the URL.
	ErrNetworkFetch = errors.New("network fetch failed")

	// ErrInvalidStatusCode is returned when an invalid HTTP status code is returned.
	ErrInvalidStatusCode = errors.New("invalid http status code")

	// ErrUnsupportedContentType names a fetched document whose content type
	// has no registered decoder. The fetchers in this package do not inspect
	// the content type and never return it.
	ErrUnsupportedContentType = errors.New("unsupported content type")
)

// === Serialization related errors ===
var (
	// ErrJSONUnmarshal is returned when there is an error unmarshalling JSON.
	ErrJSONUnmarshal = errors.New("json unmarshal failed")

	// ErrYAMLUnmarshal is returned when there is an error unmarshalling YAML.
	ErrYAMLUnmarshal = errors.New("yaml unmarshal failed")
)

// === Reference resolution related errors ===
var (
	// ErrReferenceResolution is returned when a reference cannot be resolved.
	ErrReferenceResolution = errors.New("reference resolution failed")

	// ErrGlobalReferenceResolution is returned when a global reference cannot be resolved.
	ErrGlobalReferenceResolution = errors.New("global reference resolution failed")

	// ErrDefinitionResolution is returned when definitions cannot be resolved.
	ErrDefinitionResolution = errors.New("definition resolution failed")

	// ErrJSONPointerSegmentDecode is returned when a segment cannot be percent-decoded.
	ErrJSONPointerSegmentDecode = errors.New("json pointer segment decode failed")

	// ErrJSONPointerSegmentNotFound is returned when a segment is not found in the schema context.
	ErrJSONPointerSegmentNotFound = errors.New("json pointer segment not found")

	// ErrInvalidSchemaType is returned when the JSON schema "type" keyword is invalid.
	ErrInvalidSchemaType = errors.New("invalid schema type")
)

// === Type conversion related errors ===
var (
	// ErrRatConversion is returned when numeric conversion to *big.Rat fails.
	ErrRatConversion = errors.New("rat conversion failed")

	// ErrUnsupportedRatType is returned when the type is unsupported for conversion to *big.Rat.
	ErrUnsupportedRatType = errors.New("unsupported rat type")

	// ErrNilConstValue is returned when trying to unmarshal into a nil ConstValue.
	ErrNilConstValue = errors.New("cannot unmarshal into nil ConstValue")

	// ErrInvalidIPv6 is returned when the IPv6 address is invalid.
	ErrInvalidIPv6 = errors.New("invalid ipv6 address")

	// ErrIPv6AddressFormat is returned when an IPv6 address is not properly bracketed.
	ErrIPv6AddressFormat = errors.New("ipv6 address format error")

	// ErrInvalidJSONInput names the failure to decode an instance string when
	// ParseJSON is set. Validate reports it as false and ValidateWithErrors
	// as a ValidationError with code "invalid_json_input"; neither returns
	// this value.
	ErrInvalidJSONInput = errors.New("invalid json input")
)

// RegexPatternError reports a schema-tree-relative location whose
// pattern/patternProperties key failed to compile as a Go RE2 regular
// expression. Several of these are joined together by validateRegexSyntax
// so one Compile call surfaces every bad pattern at once.
type RegexPatternError struct {
	Keyword  string // "pattern" or "patternProperties"
	Location string // schema-relative JSON Pointer, e.g. "#/properties/name/pattern"
	Pattern  string
	Err      error
}

func (e *RegexPatternError) Error() string {
	return e.Keyword + " at " + e.Location + ": invalid pattern " + strconv.Quote(e.Pattern) + ": " + e.Err.Error()
}

func (e *RegexPatternError) Unwrap() error { return e.Err }

// === Validation-time control flow ===
// errFastFail never escapes the package: it unwinds the recursive evaluate
// call tree when the caller asked to stop at the first error, without
// threading a bool through every keyword evaluator.
var errFastFail = errors.New("fast-fail: stopping at first error")
