package jsonschema

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// resolveRef resolves a $ref string relative to s into the Schema node it
// names, chasing ref-to-ref chains (a subschema whose only content is
// itself a $ref) until it lands on a non-ref node, detecting cycles along
// the way per spec: a chain that revisits a URI it has already visited
// fails with ErrRefCycle instead of looping forever.
func (s *Schema) resolveRef(ref string) (*Schema, error) {
	return s.resolveRefVisited(ref, make(map[string]bool))
}

func (s *Schema) resolveRefVisited(ref string, visited map[string]bool) (*Schema, error) {
	key := s.absoluteRefKey(ref)
	if visited[key] {
		return nil, ErrRefCycle
	}
	visited[key] = true

	target, err := s.resolveRefOnce(ref)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrReferenceResolution
	}

	// If the landed node is itself nothing but a $ref, chase it so that
	// ResolvedRef always points at a substantive node (or reports a cycle).
	if target.Ref != "" && target != s {
		return target.resolveRefVisited(target.Ref, visited)
	}
	return target, nil
}

// absoluteRefKey canonicalizes ref against s's base URI so that equivalent
// refs spelled differently (relative vs. absolute) collide in the visited
// set the same way they would collide as resolution targets.
func (s *Schema) absoluteRefKey(ref string) string {
	if ref == "#" || strings.HasPrefix(ref, "#") {
		base := s.GetSchemaURI()
		return base + ref
	}
	if !isAbsoluteURI(ref) && s.baseURI != "" {
		return resolveRelativeURI(s.baseURI, ref)
	}
	return ref
}

func (s *Schema) resolveRefOnce(ref string) (*Schema, error) {
	if ref == "#" {
		return s.getRootSchema(), nil
	}

	if strings.HasPrefix(ref, "#") {
		return s.resolveAnchor(ref[1:])
	}

	resolved := ref
	if !isAbsoluteURI(ref) && s.baseURI != "" {
		resolved = resolveRelativeURI(s.baseURI, ref)
	}
	return s.resolveRefWithFullURL(resolved)
}

// resolveAnchor resolves the fragment portion of a $ref: either a JSON
// Pointer ("/a/b"), or (draft-04) a plain anchor name registered via "id".
func (s *Schema) resolveAnchor(fragment string) (*Schema, error) {
	if fragment == "" || fragment == "/" {
		return s.getRootSchema(), nil
	}

	if isJSONPointer(fragment) {
		return s.getRootSchema().resolveJSONPointer(fragment)
	}

	root := s.getRootSchema()
	if schema, ok := root.anchors[fragment]; ok {
		return schema, nil
	}
	return nil, ErrReferenceResolution
}

// resolveRefWithFullURL resolves a ref that is (now) an absolute URI,
// looking first in this document's own schema cache, then falling back to
// the compiler's registry of other compiled/provided documents.
func (s *Schema) resolveRefWithFullURL(ref string) (*Schema, error) {
	base, fragment := splitRef(ref)

	root := s.getRootSchema()
	if resolved, err := root.getSchema(base); err == nil {
		if fragment == "" {
			return resolved, nil
		}
		return resolved.resolveAnchor(fragment)
	}

	compiler := s.GetCompiler()
	compiler.mu.RLock()
	resolved, exists := compiler.schemas[base]
	compiler.mu.RUnlock()
	if !exists {
		return nil, ErrGlobalReferenceResolution
	}
	if fragment == "" {
		return resolved, nil
	}
	return resolved.resolveAnchor(fragment)
}

// resolveJSONPointer walks a JSON Pointer fragment through the compiled
// node tree, following the keyword-specific accessor table named in
// spec.md §4.2 (properties/<key>, items/<index>, definitions/<key>), or,
// for segments that don't name a recognized keyword, the per-schema
// extraSchemas map built from sub-schemas nested under custom keywords.
func (s *Schema) resolveJSONPointer(pointer string) (*Schema, error) {
	if pointer == "" || pointer == "/" {
		return s, nil
	}

	segments := jsonpointer.Parse(pointer)
	current := s
	previous := ""
	var pending []string

	for i, segment := range segments {
		decoded, err := url.PathUnescape(segment)
		if err != nil {
			return nil, ErrJSONPointerSegmentDecode
		}

		pending = append(pending, decoded)
		if next, ok := current.extraSchemas[strings.Join(pending, "/")]; ok {
			current = next
			previous = ""
			pending = nil
			continue
		}

		if next, found := findSchemaInSegment(current, decoded, previous); found {
			current = next
			previous = decoded
			pending = nil
			continue
		}

		if i == len(segments)-1 {
			return nil, ErrJSONPointerSegmentNotFound
		}
		previous = decoded
	}

	return current, nil
}

func findSchemaInSegment(current *Schema, segment, previous string) (*Schema, bool) {
	switch previous {
	case "properties":
		if current.Properties != nil {
			if schema, exists := (*current.Properties)[segment]; exists {
				return schema, true
			}
		}
	case "patternProperties":
		if current.PatternProperties != nil {
			if schema, exists := (*current.PatternProperties)[segment]; exists {
				return schema, true
			}
		}
	case "items":
		if idx, err := strconv.Atoi(segment); err == nil {
			if idx < len(current.ItemsTuple) {
				return current.ItemsTuple[idx], true
			}
		} else if current.Items != nil {
			return current.Items, true
		}
	case "definitions":
		if schema, exists := current.Definitions[segment]; exists {
			return schema, true
		}
	case "allOf":
		if idx, err := strconv.Atoi(segment); err == nil && idx < len(current.AllOf) {
			return current.AllOf[idx], true
		}
	case "anyOf":
		if idx, err := strconv.Atoi(segment); err == nil && idx < len(current.AnyOf) {
			return current.AnyOf[idx], true
		}
	case "oneOf":
		if idx, err := strconv.Atoi(segment); err == nil && idx < len(current.OneOf) {
			return current.OneOf[idx], true
		}
	case "dependencies":
		if dep, exists := current.Dependencies[segment]; exists && dep.Schema != nil {
			return dep.Schema, true
		}
	case "not":
		if current.Not != nil {
			return current.Not, true
		}
	case "additionalProperties":
		if current.AdditionalProperties != nil {
			return current.AdditionalProperties, true
		}
	case "additionalItems":
		if current.AdditionalItems != nil {
			return current.AdditionalItems, true
		}
	case "contains":
		if current.Contains != nil {
			return current.Contains, true
		}
	case "propertyNames":
		if current.PropertyNames != nil {
			return current.PropertyNames, true
		}
	case "if":
		if current.If != nil {
			return current.If, true
		}
	case "then":
		if current.Then != nil {
			return current.Then, true
		}
	case "else":
		if current.Else != nil {
			return current.Else, true
		}
	}
	return nil, false
}

// ResolvePath resolves a JSON Pointer (optionally prefixed with "#", per
// fragment syntax) against this schema, following findSchemaInSegment's
// keyword accessor table and extraSchemas' custom-keyword sub-schemas. If
// the resolved node is itself nothing but a $ref, resolution continues to
// its target rather than returning the $ref node.
func (s *Schema) ResolvePath(pointer string) (*Schema, error) {
	pointer = strings.TrimPrefix(pointer, "#")
	resolved, err := s.getRootSchema().resolveJSONPointer(pointer)
	if err != nil {
		return nil, err
	}
	return resolved.followPureRef(make(map[string]bool))
}

// followPureRef chases a chain of nodes whose only content is a $ref,
// mirroring resolveRefVisited's cycle handling so ResolvePath never loops.
func (s *Schema) followPureRef(visited map[string]bool) (*Schema, error) {
	if s.Ref == "" {
		return s, nil
	}
	key := s.absoluteRefKey(s.Ref)
	if visited[key] {
		return nil, ErrRefCycle
	}
	visited[key] = true

	target := s.ResolvedRef
	if target == nil {
		resolved, err := s.resolveRefOnce(s.Ref)
		if err != nil {
			return nil, err
		}
		target = resolved
	}
	if target == nil || target == s {
		return s, nil
	}
	return target.followPureRef(visited)
}

// resolveReferences walks the whole tree once, resolving every $ref it
// finds into ResolvedRef. Forward references within the same document
// already work because the whole tree's $id-bearing nodes were registered
// during the initializeSchema pass, before this pass runs.
func (s *Schema) resolveReferences() error {
	if s.Ref != "" {
		resolved, err := s.resolveRef(s.Ref)
		if err != nil {
			return err
		}
		s.ResolvedRef = resolved
	}

	for _, child := range s.directChildren() {
		if err := child.resolveReferences(); err != nil {
			return err
		}
	}
	return nil
}

// ResolveUnresolvedReferences re-attempts resolution for any $ref left
// unresolved by an earlier pass (async mode: documents that have since
// arrived). It never returns ErrUnresolvableRef — callers check
// GetUnresolvedReferenceURIs afterward.
func (s *Schema) ResolveUnresolvedReferences() {
	if s.Ref != "" && s.ResolvedRef == nil {
		if resolved, err := s.resolveRef(s.Ref); err == nil {
			s.ResolvedRef = resolved
		}
	}
	for _, child := range s.directChildren() {
		child.ResolveUnresolvedReferences()
	}
}

// GetUnresolvedReferenceURIs lists every $ref in the tree that has not
// resolved to a node, for the async compiler's retrieval fan-out.
func (s *Schema) GetUnresolvedReferenceURIs() []string {
	var uris []string
	if s.Ref != "" && s.ResolvedRef == nil {
		uris = append(uris, s.absoluteRefKey(s.Ref))
	}
	for _, child := range s.directChildren() {
		uris = append(uris, child.GetUnresolvedReferenceURIs()...)
	}
	return uris
}

// directChildren enumerates every subschema reachable by exactly one
// keyword hop, used by the three tree-walk passes above so they stay in
// sync with whatever Schema.UnmarshalJSON populates.
func (s *Schema) directChildren() []*Schema {
	var children []*Schema
	add := func(c *Schema) {
		if c != nil {
			children = append(children, c)
		}
	}
	for _, c := range s.Definitions {
		add(c)
	}
	for _, c := range s.AllOf {
		add(c)
	}
	for _, c := range s.AnyOf {
		add(c)
	}
	for _, c := range s.OneOf {
		add(c)
	}
	add(s.Not)
	add(s.If)
	add(s.Then)
	add(s.Else)
	add(s.Items)
	for _, c := range s.ItemsTuple {
		add(c)
	}
	add(s.AdditionalItems)
	add(s.Contains)
	add(s.AdditionalProperties)
	add(s.PropertyNames)
	if s.Properties != nil {
		for _, c := range *s.Properties {
			add(c)
		}
	}
	if s.PatternProperties != nil {
		for _, c := range *s.PatternProperties {
			add(c)
		}
	}
	for _, dep := range s.Dependencies {
		if dep != nil {
			add(dep.Schema)
		}
	}
	for _, c := range s.extraSchemas {
		add(c)
	}
	return children
}
