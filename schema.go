package jsonschema

import (
	stdjson "encoding/json"
	"errors"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// rawJSON is a byte-for-byte JSON value held until its shape (schema object
// vs. tuple array, bool vs. rational, etc.) can be inspected before decoding.
type rawJSON = stdjson.RawMessage

// knownSchemaFields lists every keyword draft-04/06/07 define. Anything else
// found on a schema object is collected into Extra rather than silently
// dropped, so vocabulary extensions round-trip through MarshalJSON.
var knownSchemaFields = map[string]struct{}{
	"id":          {}, // draft-04 spelling
	"$id":         {}, // draft-06/07 spelling
	"$schema":     {},
	"$ref":        {},
	"definitions": {},
	"$comment":    {}, // draft-07

	"allOf": {}, "anyOf": {}, "oneOf": {}, "not": {},
	"if": {}, "then": {}, "else": {}, // draft-07
	"items": {}, "additionalItems": {},
	"contains": {}, // draft-06+
	"properties": {}, "patternProperties": {}, "additionalProperties": {},
	"propertyNames": {}, // draft-06+

	"type": {}, "enum": {},
	"const": {}, // draft-06+

	"multipleOf": {}, "maximum": {}, "exclusiveMaximum": {},
	"minimum": {}, "exclusiveMinimum": {},

	"maxLength": {}, "minLength": {}, "pattern": {},

	"maxItems": {}, "minItems": {}, "uniqueItems": {},

	"maxProperties": {}, "minProperties": {}, "required": {},
	"dependencies": {},

	"format": {},

	"title": {}, "description": {}, "default": {},
	"examples": {}, // draft-06+

	"contentEncoding": {}, "contentMediaType": {}, // draft-07
}

// Schema is a single compiled node of a draft-04/06/07 JSON Schema document.
// Every subschema keyword (allOf, properties, items, ...) resolves to its
// own *Schema, forming a tree rooted at the document the Compiler compiled.
type Schema struct {
	compiledPatterns      map[string]*regexp.Regexp
	compiler              *Compiler
	parent                *Schema
	uri                   string // absolute URI this node was reached at
	baseURI               string // URI new relative refs inside this node resolve against
	schemas               map[string]*Schema
	anchors               map[string]*Schema // draft-04 plain-name id fragments ("id": "#foo")
	compiledStringPattern *regexp.Regexp
	draft                 Draft

	// extraSchemas holds sub-schemas discovered underneath unrecognized
	// keywords, keyed by the JSON Pointer path (relative to this node,
	// "/"-joined without a leading slash) that reaches them. Populated by
	// compileExtraSchemas regardless of Compiler.PreserveExtra, so a $ref
	// buried under a custom keyword keeps resolving even when Extra itself
	// is discarded after compilation.
	extraSchemas map[string]*Schema

	ID     string  `json:"-"`
	Schema string  `json:"$schema,omitempty"`
	Format *string `json:"format,omitempty"`

	Ref         string             `json:"$ref,omitempty"`
	Definitions map[string]*Schema `json:"definitions,omitempty"`
	ResolvedRef *Schema            `json:"-"`

	// Boolean JSON Schemas. Only valid under draft-06/07; initializeSchemaCore
	// rejects a bare true/false literal when the node's draft is draft-04.
	Boolean *bool `json:"-"`

	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`

	// if/then/else is draft-07 only.
	If   *Schema `json:"if,omitempty"`
	Then *Schema `json:"then,omitempty"`
	Else *Schema `json:"else,omitempty"`

	// items is a sum type: a single schema applies to every element, a
	// tuple list applies positionally and additionalItems governs the rest.
	Items           *Schema   `json:"-"`
	ItemsTuple      []*Schema `json:"-"`
	AdditionalItems *Schema   `json:"additionalItems,omitempty"`

	// contains is draft-06+.
	Contains *Schema `json:"contains,omitempty"`

	Properties           *SchemaMap `json:"properties,omitempty"`
	PatternProperties    *SchemaMap `json:"patternProperties,omitempty"`
	AdditionalProperties *Schema    `json:"additionalProperties,omitempty"`
	PropertyNames        *Schema    `json:"propertyNames,omitempty"` // draft-06+

	Type  SchemaType  `json:"type,omitempty"`
	Enum  []any       `json:"enum,omitempty"`
	Const *ConstValue `json:"-"` // draft-06+

	MultipleOf       *Rat            `json:"multipleOf,omitempty"`
	Maximum          *Rat            `json:"maximum,omitempty"`
	ExclusiveMaximum *ExclusiveBound `json:"-"`
	Minimum          *Rat            `json:"minimum,omitempty"`
	ExclusiveMinimum *ExclusiveBound `json:"-"`

	MaxLength *float64 `json:"maxLength,omitempty"`
	MinLength *float64 `json:"minLength,omitempty"`
	Pattern   *string  `json:"pattern,omitempty"`

	MaxItems    *float64 `json:"maxItems,omitempty"`
	MinItems    *float64 `json:"minItems,omitempty"`
	UniqueItems *bool    `json:"uniqueItems,omitempty"`

	MaxProperties *float64               `json:"maxProperties,omitempty"`
	MinProperties *float64               `json:"minProperties,omitempty"`
	Required      []string               `json:"required,omitempty"`
	Dependencies  map[string]*Dependency `json:"-"`

	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Default     any     `json:"default,omitempty"`
	Examples    []any   `json:"examples,omitempty"` // draft-06+

	// contentEncoding/contentMediaType are draft-07 annotations; this
	// implementation additionally asserts them against Compiler.Decoders
	// and Compiler.MediaTypes when AssertContent is enabled.
	ContentEncoding  *string `json:"contentEncoding,omitempty"`
	ContentMediaType *string `json:"contentMediaType,omitempty"`

	// Extra holds keywords this implementation does not recognize. Carried
	// through Marshal/Unmarshal so schemas round-trip; never consulted by
	// the validator. Compilation clears it unless Compiler.PreserveExtra is
	// set, so a compiled schema re-marshals without those keywords by default.
	Extra map[string]any `json:"-"`
}

// Draft identifies which of the three supported specification drafts a
// schema was compiled against. It decides whether boolean schemas are
// accepted, whether draft-04's exclusiveMinimum/exclusiveMaximum pairing is
// enforced, whether "integer" accepts an integral number literal, which
// format names are checked, and whether id or $id is written on marshal.
// Keywords introduced by later drafts (const, contains, propertyNames,
// if/then/else) are parsed and applied under every draft, and the shape of
// exclusiveMinimum/exclusiveMaximum (bool or number) is taken from the JSON
// value, not from the draft.
type Draft int

const (
	// DraftUnknown is the zero value; Compiler always resolves it before use.
	DraftUnknown Draft = iota
	Draft04
	Draft06
	Draft07
)

func (d Draft) String() string {
	switch d {
	case Draft04:
		return "draft-04"
	case Draft06:
		return "draft-06"
	case Draft07:
		return "draft-07"
	default:
		return "unknown"
	}
}

// draftFromSchemaURI maps a "$schema" value to a Draft, matching on the
// well-known meta-schema URIs (with or without trailing slash/fragment).
func draftFromSchemaURI(uri string) (Draft, bool) {
	switch uri {
	case "http://json-schema.org/draft-04/schema#", "http://json-schema.org/draft-04/schema":
		return Draft04, true
	case "http://json-schema.org/draft-06/schema#", "http://json-schema.org/draft-06/schema":
		return Draft06, true
	case "http://json-schema.org/draft-07/schema#", "http://json-schema.org/draft-07/schema":
		return Draft07, true
	default:
		return DraftUnknown, false
	}
}

// newSchema parses raw JSON schema bytes into a Schema, without yet knowing
// which draft applies to boolean-schema acceptance — that check happens in
// initializeSchemaCore once the effective draft is known.
func newSchema(jsonSchema []byte) (*Schema, error) {
	schema := &Schema{}
	if err := json.Unmarshal(jsonSchema, schema); err != nil {
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	return schema, nil
}

// initializeSchema sets up the schema structure, resolves URIs, and recurses
// into nested schemas, inheriting draft and compiler from parent.
func (s *Schema) initializeSchema(compiler *Compiler, parent *Schema) error {
	return s.initializeSchemaCore(compiler, parent)
}

func (s *Schema) initializeSchemaCore(compiler *Compiler, parent *Schema) error {
	if compiler != nil {
		s.compiler = compiler
	}
	s.parent = parent

	if parent != nil {
		s.draft = parent.draft
	} else if s.draft == DraftUnknown {
		if d, ok := draftFromSchemaURI(s.Schema); ok {
			s.draft = d
		} else if eff := s.GetCompiler(); eff != nil {
			s.draft = eff.DefaultDraft
		} else {
			s.draft = Draft07
		}
	}

	if s.Boolean != nil && s.draft == Draft04 {
		return ErrInvalidDraftConstruct
	}

	effectiveCompiler := s.GetCompiler()
	parentBaseURI := s.getParentBaseURI()
	if parentBaseURI == "" && effectiveCompiler != nil {
		parentBaseURI = effectiveCompiler.DefaultBaseURI
	}

	switch {
	case strings.HasPrefix(s.ID, "#"):
		// draft-04 plain-name fragment: "id": "#foo" names this node for
		// later "$ref": "#foo" lookup; it does not change the base URI.
		s.setAnchor(s.ID[1:])
		s.baseURI = parentBaseURI
	case s.ID != "":
		if isValidURI(s.ID) {
			s.uri = s.ID
			s.baseURI = getBaseURI(s.ID)
		} else {
			resolvedURL := resolveRelativeURI(parentBaseURI, s.ID)
			s.uri = resolvedURL
			s.baseURI = getBaseURI(resolvedURL)
		}
	default:
		s.baseURI = parentBaseURI
	}

	if s.baseURI == "" && s.uri != "" && isValidURI(s.uri) {
		s.baseURI = getBaseURI(s.uri)
	}

	if s.uri != "" && isValidURI(s.uri) {
		root := s.getRootSchema()
		root.setSchema(s.uri, s)
	}

	if err := initializeNestedSchemas(s, compiler); err != nil {
		return err
	}

	if err := s.compileExtraSchemas(compiler); err != nil {
		return err
	}

	if effectiveCompiler != nil && !effectiveCompiler.PreserveExtra {
		s.Extra = nil
	}
	return nil
}

// compileExtraSchemas walks the raw values of unrecognized keywords looking
// for object or boolean shapes that could hold a sub-schema, compiles each
// one into its own *Schema, and indexes it under extraSchemas by the JSON
// Pointer path (relative to s) that reaches it. The keyword itself is still
// never consulted by the validator; this only makes a $ref nested under it
// resolvable, per spec.md §4.1/§4.3.
func (s *Schema) compileExtraSchemas(compiler *Compiler) error {
	for key, val := range s.Extra {
		if err := s.compileExtraValue(compiler, []string{key}, val); err != nil {
			return err
		}
	}
	return nil
}

// compileExtraValue treats a single unknown-keyword value as a candidate
// sub-schema. A candidate that fails to parse or to initialize (e.g. a bare
// boolean under draft-04, which only a genuine schema keyword would ever
// reject) simply isn't indexed: this is best-effort discovery of real
// sub-schemas among arbitrary custom data, not validation of that data.
func (s *Schema) compileExtraValue(compiler *Compiler, path []string, val any) error {
	switch v := val.(type) {
	case map[string]any, bool:
		data, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		child := &Schema{}
		if err := json.Unmarshal(data, child); err != nil {
			return nil
		}
		if err := child.initializeSchemaCore(compiler, s); err != nil {
			return nil
		}
		if s.extraSchemas == nil {
			s.extraSchemas = make(map[string]*Schema)
		}
		s.extraSchemas[strings.Join(path, "/")] = child
	case []any:
		for i, inner := range v {
			nested := append(append([]string{}, path...), strconv.Itoa(i))
			if err := s.compileExtraValue(compiler, nested, inner); err != nil {
				return err
			}
		}
	}
	return nil
}

// initializeNestedSchemas recurses initializeSchemaCore into every keyword
// that holds a subschema or collection of subschemas.
func initializeNestedSchemas(s *Schema, compiler *Compiler) error {
	initChild := func(child *Schema) error {
		if child == nil {
			return nil
		}
		return child.initializeSchemaCore(compiler, s)
	}
	initList := func(children []*Schema) error {
		for _, c := range children {
			if err := initChild(c); err != nil {
				return err
			}
		}
		return nil
	}
	initMap := func(m map[string]*Schema) error {
		for _, c := range m {
			if err := initChild(c); err != nil {
				return err
			}
		}
		return nil
	}

	if err := initMap(s.Definitions); err != nil {
		return err
	}
	if err := initList(s.AllOf); err != nil {
		return err
	}
	if err := initList(s.AnyOf); err != nil {
		return err
	}
	if err := initList(s.OneOf); err != nil {
		return err
	}
	if err := initChild(s.Not); err != nil {
		return err
	}
	if err := initChild(s.If); err != nil {
		return err
	}
	if err := initChild(s.Then); err != nil {
		return err
	}
	if err := initChild(s.Else); err != nil {
		return err
	}
	if err := initChild(s.Items); err != nil {
		return err
	}
	if err := initList(s.ItemsTuple); err != nil {
		return err
	}
	if err := initChild(s.AdditionalItems); err != nil {
		return err
	}
	if err := initChild(s.Contains); err != nil {
		return err
	}
	if err := initChild(s.AdditionalProperties); err != nil {
		return err
	}
	if err := initChild(s.PropertyNames); err != nil {
		return err
	}
	if s.Properties != nil {
		if err := initMap(map[string]*Schema(*s.Properties)); err != nil {
			return err
		}
	}
	if s.PatternProperties != nil {
		if err := initMap(map[string]*Schema(*s.PatternProperties)); err != nil {
			return err
		}
	}
	for _, dep := range s.Dependencies {
		if dep != nil {
			if err := initChild(dep.Schema); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateRegexSyntax walks the whole tree once and joins every invalid
// "pattern"/"patternProperties" key into a single error, so a caller sees
// every offending location rather than just the first.
func (s *Schema) validateRegexSyntax() error {
	if s == nil {
		return nil
	}
	visited := make(map[*Schema]bool)
	errs := s.collectRegexErrors(nil, visited)
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrSchemaCompilation}, errs...)...)
}

func (s *Schema) collectRegexErrors(pathTokens []string, visited map[*Schema]bool) []error {
	if s == nil || visited[s] {
		return nil
	}
	visited[s] = true

	var errs []error

	if s.Pattern != nil {
		if err := compilePattern(*s.Pattern); err != nil {
			tokens := slices.Concat(pathTokens, []string{"pattern"})
			errs = append(errs, &RegexPatternError{Keyword: "pattern", Location: "#" + formatPointer(tokens), Pattern: *s.Pattern, Err: err})
		}
	}

	if s.PatternProperties != nil {
		for pattern, schema := range *s.PatternProperties {
			tokens := slices.Concat(pathTokens, []string{"patternProperties", pattern})
			if err := compilePattern(pattern); err != nil {
				errs = append(errs, &RegexPatternError{Keyword: "patternProperties", Location: "#" + formatPointer(tokens), Pattern: pattern, Err: err})
				continue
			}
			errs = append(errs, schema.collectRegexErrors(tokens, visited)...)
		}
	}

	addSchema := func(child *Schema, token string) {
		if child == nil {
			return
		}
		errs = append(errs, child.collectRegexErrors(slices.Concat(pathTokens, []string{token}), visited)...)
	}
	addSchemaMap := func(m map[string]*Schema, prefix string) {
		for key, schema := range m {
			errs = append(errs, schema.collectRegexErrors(slices.Concat(pathTokens, []string{prefix, key}), visited)...)
		}
	}
	addSchemaSlice := func(children []*Schema, prefix string) {
		for i, child := range children {
			errs = append(errs, child.collectRegexErrors(slices.Concat(pathTokens, []string{prefix, strconv.Itoa(i)}), visited)...)
		}
	}

	if s.Properties != nil {
		addSchemaMap(map[string]*Schema(*s.Properties), "properties")
	}
	addSchemaMap(s.Definitions, "definitions")

	addSchema(s.AdditionalProperties, "additionalProperties")
	addSchema(s.PropertyNames, "propertyNames")
	addSchema(s.Items, "items")
	addSchema(s.AdditionalItems, "additionalItems")
	addSchema(s.Contains, "contains")
	addSchema(s.Not, "not")
	addSchema(s.If, "if")
	addSchema(s.Then, "then")
	addSchema(s.Else, "else")
	addSchema(s.ResolvedRef, "$ref")

	addSchemaSlice(s.ItemsTuple, "items")
	addSchemaSlice(s.AllOf, "allOf")
	addSchemaSlice(s.AnyOf, "anyOf")
	addSchemaSlice(s.OneOf, "oneOf")

	for key, dep := range s.Dependencies {
		if dep != nil && dep.Schema != nil {
			errs = append(errs, dep.Schema.collectRegexErrors(slices.Concat(pathTokens, []string{"dependencies", key}), visited)...)
		}
	}

	for key, child := range s.extraSchemas {
		errs = append(errs, child.collectRegexErrors(slices.Concat(pathTokens, strings.Split(key, "/")), visited)...)
	}

	return errs
}

func compilePattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	_, err := regexp.Compile(pattern)
	return err
}

// precompilePatterns fills compiledStringPattern/compiledPatterns once per
// node so validation never recompiles a regex per instance. Called after
// validateRegexSyntax has already confirmed every pattern compiles, so
// errors here are unreachable in practice and simply skipped.
func (s *Schema) precompilePatterns() {
	if s == nil {
		return
	}
	if s.Pattern != nil {
		if re, err := regexp.Compile(*s.Pattern); err == nil {
			s.compiledStringPattern = re
		}
	}
	if s.PatternProperties != nil {
		s.compiledPatterns = make(map[string]*regexp.Regexp, len(*s.PatternProperties))
		for pattern := range *s.PatternProperties {
			if re, err := regexp.Compile(pattern); err == nil {
				s.compiledPatterns[pattern] = re
			}
		}
	}
	for _, child := range s.directChildren() {
		child.precompilePatterns()
	}
}

// setAnchor registers a draft-04 plain-name id fragment ("id": "#foo") so a
// sibling "$ref": "#foo" can find it without a JSON Pointer walk.
func (s *Schema) setAnchor(name string) {
	root := s.getRootSchema()
	if root.anchors == nil {
		root.anchors = make(map[string]*Schema)
	}
	root.anchors[name] = s
}

// setSchema registers schema under uri in the root's lookup cache, used by
// the Reference Resolver to resolve absolute $ref URIs.
func (s *Schema) setSchema(uri string, schema *Schema) *Schema {
	if s.schemas == nil {
		s.schemas = make(map[string]*Schema)
	}
	s.schemas[uri] = schema
	return s
}

func (s *Schema) getSchema(uri string) (*Schema, error) {
	if schema, exists := s.schemas[uri]; exists {
		return schema, nil
	}
	return nil, ErrReferenceResolution
}

// GetSchemaURI returns the resolved URI for the schema, falling back to the
// root schema's URI when this node has none of its own.
func (s *Schema) GetSchemaURI() string {
	if s.uri != "" {
		return s.uri
	}
	if root := s.getRootSchema(); root.uri != "" {
		return root.uri
	}
	return ""
}

// GetSchemaLocation returns uri#pointer for error/result reporting.
func (s *Schema) GetSchemaLocation(pointer string) string {
	return s.GetSchemaURI() + "#" + pointer
}

func (s *Schema) getRootSchema() *Schema {
	if s.parent != nil {
		return s.parent.getRootSchema()
	}
	return s
}

func (s *Schema) getParentBaseURI() string {
	for p := s.parent; p != nil; p = p.parent {
		if p.baseURI != "" {
			return p.baseURI
		}
	}
	return ""
}

// MarshalJSON serializes the schema back to JSON, restoring the id/$id and
// items sum-type spelling appropriate to the schema's draft.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.Boolean != nil {
		return json.Marshal(s.Boolean)
	}

	type Alias Schema
	result := make(map[string]any)
	data, err := json.Marshal((*Alias)(s))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	if s.ID != "" {
		if s.draft == Draft04 {
			result["id"] = s.ID
		} else {
			result["$id"] = s.ID
		}
	}
	if s.Const != nil && s.Const.IsSet {
		result["const"] = s.Const.Value
	}
	if s.ExclusiveMinimum != nil {
		result["exclusiveMinimum"] = s.ExclusiveMinimum.raw()
	}
	if s.ExclusiveMaximum != nil {
		result["exclusiveMaximum"] = s.ExclusiveMaximum.raw()
	}
	if len(s.ItemsTuple) > 0 {
		result["items"] = s.ItemsTuple
	} else if s.Items != nil {
		result["items"] = s.Items
	}
	if len(s.Dependencies) > 0 {
		deps := make(map[string]any, len(s.Dependencies))
		for k, dep := range s.Dependencies {
			deps[k] = dep.raw()
		}
		result["dependencies"] = deps
	}

	maps.Copy(result, s.Extra)
	return json.Marshal(result)
}

// UnmarshalJSON parses a schema document, handling the boolean-schema short
// circuit and the draft-dependent sum types: items (schema vs. tuple),
// exclusiveMinimum/Maximum (bool vs. number), dependencies (list vs. schema),
// and id/$id spelling.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		s.Boolean = &b
		return nil
	}

	type Alias Schema
	aux := &struct {
		ID              string                     `json:"$id,omitempty"`
		IDLegacy        string                     `json:"id,omitempty"`
		Items           rawJSON                    `json:"items,omitempty"`
		AdditionalItems *Schema                     `json:"additionalItems,omitempty"`
		Const           rawJSON                     `json:"const,omitempty"`
		ExclMin         rawJSON                     `json:"exclusiveMinimum,omitempty"`
		ExclMax         rawJSON                     `json:"exclusiveMaximum,omitempty"`
		Dependencies    map[string]rawJSON          `json:"dependencies,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(s),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return errors.Join(ErrInvalidKeywordShape, err)
	}

	if aux.ID != "" {
		s.ID = aux.ID
	} else if aux.IDLegacy != "" {
		s.ID = aux.IDLegacy
	}

	if len(aux.Items) > 0 {
		trimmed := bytesTrimSpace(aux.Items)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(aux.Items, &s.ItemsTuple); err != nil {
				return errors.Join(ErrInvalidKeywordShape, err)
			}
			s.AdditionalItems = aux.AdditionalItems
		} else {
			if err := json.Unmarshal(aux.Items, &s.Items); err != nil {
				return errors.Join(ErrInvalidKeywordShape, err)
			}
		}
	}

	if len(aux.Const) > 0 {
		s.Const = &ConstValue{}
		if err := s.Const.UnmarshalJSON(aux.Const); err != nil {
			return err
		}
	}

	if len(aux.ExclMin) > 0 {
		eb := &ExclusiveBound{}
		if err := eb.UnmarshalJSON(aux.ExclMin); err != nil {
			return err
		}
		s.ExclusiveMinimum = eb
	}
	if len(aux.ExclMax) > 0 {
		eb := &ExclusiveBound{}
		if err := eb.UnmarshalJSON(aux.ExclMax); err != nil {
			return err
		}
		s.ExclusiveMaximum = eb
	}

	if len(aux.Dependencies) > 0 {
		s.Dependencies = make(map[string]*Dependency, len(aux.Dependencies))
		for k, raw := range aux.Dependencies {
			dep := &Dependency{}
			if err := dep.UnmarshalJSON(raw); err != nil {
				return err
			}
			s.Dependencies[k] = dep
		}
	}

	return s.collectExtraFields(data)
}

func bytesTrimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && (b[start] == ' ' || b[start] == '\t' || b[start] == '\n' || b[start] == '\r') {
		start++
	}
	end := len(b)
	for end > start && (b[end-1] == ' ' || b[end-1] == '\t' || b[end-1] == '\n' || b[end-1] == '\r') {
		end--
	}
	return b[start:end]
}

func (s *Schema) collectExtraFields(raw []byte) error {
	var allFields map[string]any
	if err := json.Unmarshal(raw, &allFields); err != nil {
		return err
	}
	for key := range knownSchemaFields {
		delete(allFields, key)
	}
	if len(allFields) > 0 {
		s.Extra = allFields
	}
	return nil
}

// SchemaMap represents "properties"/"patternProperties": a map of keyword
// name (or regex) to subschema.
type SchemaMap map[string]*Schema

func (sm SchemaMap) MarshalJSON() ([]byte, error) {
	m := make(map[string]*Schema, len(sm))
	maps.Copy(m, sm)
	return json.Marshal(m)
}

func (sm *SchemaMap) UnmarshalJSON(data []byte) error {
	m := make(map[string]*Schema)
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*sm = SchemaMap(m)
	return nil
}

// SchemaType holds "type", which is either a single string or an array of
// strings; both forms are normalized to a slice.
type SchemaType []string

func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st) == 1 {
		return json.Marshal(st[0])
	}
	return json.Marshal([]string(st))
}

func (st *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*st = SchemaType{single}
		return nil
	}
	var multi []string
	if err := json.Unmarshal(data, &multi); err == nil {
		*st = SchemaType(multi)
		return nil
	}
	return ErrInvalidSchemaType
}

// ConstValue holds "const" (draft-06+), distinguishing an explicit JSON
// null from the keyword being absent altogether.
type ConstValue struct {
	Value any
	IsSet bool
}

func (cv *ConstValue) UnmarshalJSON(data []byte) error {
	if cv == nil {
		return ErrNilConstValue
	}
	cv.IsSet = true
	if string(data) == "null" {
		cv.Value = nil
		return nil
	}
	return json.Unmarshal(data, &cv.Value)
}

func (cv ConstValue) MarshalJSON() ([]byte, error) {
	if cv.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(cv.Value)
}

// ExclusiveBound models exclusiveMinimum/exclusiveMaximum, which changed
// shape between drafts: a bool flag on the paired minimum/maximum in
// draft-04, a standalone number in draft-06/07.
type ExclusiveBound struct {
	BoolValue *bool
	NumValue  *Rat
}

func (eb *ExclusiveBound) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		eb.BoolValue = &b
		return nil
	}
	r := &Rat{}
	if err := r.UnmarshalJSON(data); err != nil {
		return errors.Join(ErrInvalidKeywordShape, err)
	}
	eb.NumValue = r
	return nil
}

func (eb *ExclusiveBound) raw() any {
	if eb.BoolValue != nil {
		return *eb.BoolValue
	}
	if eb.NumValue != nil {
		return eb.NumValue
	}
	return nil
}

// IsTrue reports whether this bound is the draft-04 boolean form set to true.
func (eb *ExclusiveBound) IsTrue() bool {
	return eb != nil && eb.BoolValue != nil && *eb.BoolValue
}

// Dependency models one entry of draft-04/06/07's single "dependencies"
// keyword: either a list of property names that must also be present, or a
// schema the whole object must additionally validate against.
type Dependency struct {
	Required []string
	Schema   *Schema
}

func (d *Dependency) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		d.Required = list
		return nil
	}
	sch := &Schema{}
	if err := json.Unmarshal(data, sch); err != nil {
		return errors.Join(ErrInvalidKeywordShape, err)
	}
	d.Schema = sch
	return nil
}

func (d *Dependency) raw() any {
	if d.Schema != nil {
		return d.Schema
	}
	return d.Required
}

// SetCompiler sets a custom Compiler for the Schema, returning itself for chaining.
func (s *Schema) SetCompiler(compiler *Compiler) *Schema {
	s.compiler = compiler
	return s
}

// GetCompiler returns the effective Compiler: this schema's own, else its
// parent's, else the package-level default.
func (s *Schema) GetCompiler() *Compiler {
	if s.compiler != nil {
		return s.compiler
	}
	if s.parent != nil {
		return s.parent.GetCompiler()
	}
	return defaultCompiler
}

// GetDraft returns the draft this schema node was compiled under.
func (s *Schema) GetDraft() Draft {
	return s.draft
}
