package jsonschema

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/goccy/go-yaml"
)

// FormatDef defines a custom format validation rule.
type FormatDef struct {
	// Type restricts which JSON Schema type this format applies to; empty
	// means it applies regardless of instance type.
	Type string

	Validate func(any) bool
}

// RefProvider is the synchronous reference provider spec.md §6 describes:
// given an absolute URI, it returns raw schema JSON (as []byte), an already
// decoded value (bool or map[string]any), or an already-compiled *Schema.
// A nil value and nil error both mean "I don't have this document" — the
// compile call then fails with ErrUnresolvableRef.
type RefProvider func(uri string) (any, error)

// Compiler compiles draft-04/06/07 schema documents and caches the result
// by URI. The zero value is not usable; construct with NewCompiler.
type Compiler struct {
	mu             sync.RWMutex
	schemas        map[string]*Schema
	Decoders       map[string]func(string) ([]byte, error)
	MediaTypes     map[string]func([]byte) (any, error)
	Loaders        map[string]func(url string) (io.ReadCloser, error)
	DefaultBaseURI string
	DefaultDraft   Draft
	AssertFormat   bool
	AssertContent  bool
	PreserveExtra  bool
	RefProvider    RefProvider // consulted by sync Compile for remote/unregistered refs
	asyncFetcher   AsyncFetcher

	jsonEncoder func(v any) ([]byte, error)
	jsonDecoder func(data []byte, v any) error

	customFormats   map[string]*FormatDef
	customFormatsRW sync.RWMutex
}

// defaultCompiler is used by schemas constructed without an explicit
// Compiler (GetCompiler's final fallback).
var defaultCompiler = NewCompiler()

// NewCompiler creates a Compiler with draft-07 as the default draft and the
// standard JSON/XML/YAML media-type and HTTP/HTTPS loader registrations.
func NewCompiler() *Compiler {
	c := &Compiler{
		schemas:        make(map[string]*Schema),
		Decoders:       make(map[string]func(string) ([]byte, error)),
		MediaTypes:     make(map[string]func([]byte) (any, error)),
		Loaders:        make(map[string]func(url string) (io.ReadCloser, error)),
		DefaultBaseURI: "",
		DefaultDraft:   Draft07,
		AssertFormat:   true,
		customFormats:  make(map[string]*FormatDef),
		jsonEncoder:    func(v any) ([]byte, error) { return json.Marshal(v) },
		jsonDecoder:    func(data []byte, v any) error { return json.Unmarshal(data, v) },
	}
	c.initDefaults()
	return c
}

// WithEncoderJSON substitutes the JSON encoder used to re-encode decoded
// values returned by RefProvider before they are compiled, e.g. to plug in
// encoding/json instead of goccy. Schema documents themselves are always
// decoded with goccy.
func (c *Compiler) WithEncoderJSON(encoder func(v any) ([]byte, error)) *Compiler {
	c.jsonEncoder = encoder
	return c
}

// WithDecoderJSON substitutes the JSON decoder used by the
// "application/json" media type (contentMediaType checks).
func (c *Compiler) WithDecoderJSON(decoder func(data []byte, v any) error) *Compiler {
	c.jsonDecoder = decoder
	return c
}

// WithRefProvider installs the synchronous reference provider consulted by
// Compile whenever a $ref names a document this Compiler hasn't already
// cached or compiled.
func (c *Compiler) WithRefProvider(provider RefProvider) *Compiler {
	c.RefProvider = provider
	return c
}

// Compile compiles a raw JSON schema document synchronously. uris[0], if
// given, becomes the document's fetched-from URI (used as its $id when the
// document declares none). Any remote $ref not already cached is resolved
// through RefProvider; an unresolvable one fails the whole call with
// ErrUnresolvableRef, and no partial schema is returned.
func (c *Compiler) Compile(jsonSchema []byte, uris ...string) (*Schema, error) {
	schema, cached, err := c.compileNode(jsonSchema, uris...)
	if err != nil {
		return nil, err
	}
	if cached {
		return schema, nil
	}

	if err := c.resolveTreeSync(schema); err != nil {
		return nil, err
	}

	if unresolved := schema.GetUnresolvedReferenceURIs(); len(unresolved) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvableRef, unresolved[0])
	}

	return schema, nil
}

// compileNode parses, initializes, and caches a single document without
// resolving its $refs, so both Compile and the async fetch loop can build
// the node tree first and decide separately how to drain its references.
// The bool result reports whether an already-cached schema was returned.
func (c *Compiler) compileNode(jsonSchema []byte, uris ...string) (*Schema, bool, error) {
	schema, err := newSchema(jsonSchema)
	if err != nil {
		return nil, false, err
	}

	if schema.ID == "" && len(uris) > 0 {
		schema.ID = uris[0]
	}

	if schema.ID != "" && isValidURI(schema.ID) {
		c.mu.RLock()
		existing, exists := c.schemas[schema.ID]
		c.mu.RUnlock()
		if exists {
			return existing, true, nil
		}
	}

	if err := schema.initializeSchema(c, nil); err != nil {
		return nil, false, err
	}
	if err := schema.validateRegexSyntax(); err != nil {
		return nil, false, err
	}
	if err := checkDraft04Interdependencies(schema); err != nil {
		return nil, false, err
	}
	schema.precompilePatterns()

	c.mu.Lock()
	if schema.uri != "" && isValidURI(schema.uri) {
		c.schemas[schema.uri] = schema
	}
	c.mu.Unlock()

	return schema, false, nil
}

// resolveTreeSync resolves every $ref in schema's tree, fetching any
// missing remote document through RefProvider as it goes. It loops because
// resolving one ref can introduce a freshly compiled document with refs of
// its own.
func (c *Compiler) resolveTreeSync(schema *Schema) error {
	for i := 0; i < 8; i++ { // bounded: a well-formed document reaches a fixed point quickly
		if err := schema.resolveReferences(); err != nil {
			if errors.Is(err, ErrRefCycle) {
				return err
			}
			// resolveReferences stops at the first failure; finish the pass
			// so every missing document is listed for the provider below.
			schema.ResolveUnresolvedReferences()
		}
		unresolved := schema.GetUnresolvedReferenceURIs()
		if len(unresolved) == 0 {
			return nil
		}

		progressed := false
		for _, uri := range unresolved {
			base, _ := splitRef(uri)
			if _, err := c.fetchViaProvider(base); err == nil {
				progressed = true
			}
		}
		if !progressed {
			return nil // leave remaining unresolved; caller reports ErrUnresolvableRef
		}
	}
	return nil
}

// fetchViaProvider consults RefProvider for uri, compiling whatever it
// returns and caching it under uri.
func (c *Compiler) fetchViaProvider(uri string) (*Schema, error) {
	c.mu.RLock()
	existing, exists := c.schemas[uri]
	c.mu.RUnlock()
	if exists {
		return existing, nil
	}

	if c.RefProvider == nil {
		return nil, ErrUnresolvableRef
	}
	value, err := c.RefProvider(uri)
	if err != nil || value == nil {
		return nil, ErrUnresolvableRef
	}

	switch v := value.(type) {
	case *Schema:
		c.mu.Lock()
		c.schemas[uri] = v
		c.mu.Unlock()
		return v, nil
	case []byte:
		return c.Compile(v, uri)
	case string:
		return c.Compile([]byte(v), uri)
	default:
		raw, err := c.jsonEncoder(v)
		if err != nil {
			return nil, err
		}
		return c.Compile(raw, uri)
	}
}

// checkDraft04Interdependencies enforces that draft-04's boolean-flavored
// exclusiveMinimum/exclusiveMaximum only appear alongside their paired
// minimum/maximum.
func checkDraft04Interdependencies(s *Schema) error {
	if s == nil || s.Boolean != nil {
		return nil
	}
	if s.draft == Draft04 {
		if s.ExclusiveMaximum != nil && s.Maximum == nil {
			return ErrInterdependencyMissing
		}
		if s.ExclusiveMinimum != nil && s.Minimum == nil {
			return ErrInterdependencyMissing
		}
	}
	for _, c := range s.directChildren() {
		if err := checkDraft04Interdependencies(c); err != nil {
			return err
		}
	}
	return nil
}

// SetSchema pre-registers a compiled schema under uri, e.g. to seed a
// Compiler with documents the caller already has in hand.
func (c *Compiler) SetSchema(uri string, schema *Schema) *Compiler {
	c.mu.Lock()
	c.schemas[uri] = schema
	c.mu.Unlock()
	return c
}

// GetSchema retrieves a schema by absolute URI (optionally with a fragment),
// falling back to the registered Loaders when it isn't already cached.
func (c *Compiler) GetSchema(ref string) (*Schema, error) {
	base, fragment := splitRef(ref)

	c.mu.RLock()
	schema, exists := c.schemas[base]
	c.mu.RUnlock()

	if !exists {
		var err error
		schema, err = c.resolveSchemaURL(base)
		if err != nil {
			return nil, err
		}
	}
	if fragment == "" {
		return schema, nil
	}
	return schema.resolveAnchor(fragment)
}

// resolveSchemaURL fetches and compiles a schema via a registered Loader
// for the URL's scheme.
func (c *Compiler) resolveSchemaURL(id string) (*Schema, error) {
	c.mu.RLock()
	schema, exists := c.schemas[id]
	c.mu.RUnlock()
	if exists {
		return schema, nil
	}

	loader, ok := c.Loaders[getURLScheme(id)]
	if !ok {
		return nil, ErrNoLoaderRegistered
	}

	body, err := loader(id)
	if err != nil {
		return nil, errors.Join(ErrNetworkFetch, err)
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Join(ErrDataRead, err)
	}

	return c.Compile(data, id)
}

// SetDefaultBaseURI sets the base URI new top-level documents resolve
// relative refs against when they declare no $id of their own.
func (c *Compiler) SetDefaultBaseURI(baseURI string) *Compiler {
	c.DefaultBaseURI = baseURI
	return c
}

// SetDefaultDraft sets which draft applies when a document has no
// recognized $schema. A recognized $schema always takes precedence; Compile
// and CompileAsync take no per-call draft argument that overrides it.
func (c *Compiler) SetDefaultDraft(d Draft) *Compiler {
	c.DefaultDraft = d
	return c
}

// SetAssertFormat enables or disables "format" keyword assertion.
func (c *Compiler) SetAssertFormat(assert bool) *Compiler {
	c.AssertFormat = assert
	return c
}

// SetAssertContent enables or disables validating contentEncoding/
// contentMediaType against registered Decoders/MediaTypes. Both keywords
// are annotation-only per draft-07 and left unchecked by default.
func (c *Compiler) SetAssertContent(assert bool) *Compiler {
	c.AssertContent = assert
	return c
}

// RegisterDecoder adds a contentEncoding decoder (e.g. "base64").
func (c *Compiler) RegisterDecoder(name string, decoder func(string) ([]byte, error)) *Compiler {
	c.Decoders[name] = decoder
	return c
}

// RegisterMediaType adds a contentMediaType decoder.
func (c *Compiler) RegisterMediaType(name string, unmarshal func([]byte) (any, error)) *Compiler {
	c.MediaTypes[name] = unmarshal
	return c
}

// RegisterLoader adds a fetcher for a URI scheme, used by both GetSchema's
// fallback and the async compiler.
func (c *Compiler) RegisterLoader(scheme string, loader func(url string) (io.ReadCloser, error)) *Compiler {
	c.Loaders[scheme] = loader
	return c
}

func (c *Compiler) initDefaults() {
	c.Decoders["base64"] = base64.StdEncoding.DecodeString
	c.setupMediaTypes()
	c.setupLoaders()
}

func (c *Compiler) setupMediaTypes() {
	c.MediaTypes["application/json"] = func(data []byte) (any, error) {
		var temp any
		if err := c.jsonDecoder(data, &temp); err != nil {
			return nil, errors.Join(ErrJSONUnmarshal, err)
		}
		return temp, nil
	}

	c.MediaTypes["application/xml"] = func(data []byte) (any, error) {
		var temp any
		if err := xml.Unmarshal(data, &temp); err != nil {
			return nil, errors.Join(ErrJSONUnmarshal, err) // no dedicated XML sentinel: schema validators treat it as opaque text content
		}
		return temp, nil
	}

	c.MediaTypes["application/yaml"] = func(data []byte) (any, error) {
		var temp any
		if err := yaml.Unmarshal(data, &temp); err != nil {
			return nil, errors.Join(ErrYAMLUnmarshal, err)
		}
		return temp, nil
	}
}

// setupLoaders registers the default HTTP/HTTPS fetcher. It returns the
// response body as is; the Content-Type is not inspected, and the fetched
// document is always compiled as JSON.
func (c *Compiler) setupLoaders() {
	client := &http.Client{Timeout: 10 * time.Second}

	httpLoader := func(url string) (io.ReadCloser, error) {
		resp, err := client.Get(url) //nolint:noctx // one-shot document fetch, no caller context to thread through this interface
		if err != nil {
			return nil, errors.Join(ErrNetworkFetch, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close() //nolint:errcheck
			return nil, ErrInvalidStatusCode
		}
		return resp.Body, nil
	}

	c.RegisterLoader("http", httpLoader)
	c.RegisterLoader("https", httpLoader)
}

// RegisterFormat installs a custom format predicate, optionally restricted
// to a single instance type.
func (c *Compiler) RegisterFormat(name string, validator func(any) bool, typeName ...string) *Compiler {
	c.customFormatsRW.Lock()
	defer c.customFormatsRW.Unlock()

	var t string
	if len(typeName) > 0 {
		t = typeName[0]
	}
	c.customFormats[name] = &FormatDef{Type: t, Validate: validator}
	return c
}

// UnregisterFormat removes a previously registered custom format.
func (c *Compiler) UnregisterFormat(name string) *Compiler {
	c.customFormatsRW.Lock()
	defer c.customFormatsRW.Unlock()
	delete(c.customFormats, name)
	return c
}
