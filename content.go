package jsonschema

// evaluateContent checks contentEncoding/contentMediaType. Per draft-07
// both are annotations only; this implementation additionally asserts them
// against the compiler's registered Decoders/MediaTypes when AssertContent
// is enabled, since an unregistered encoding/media type is otherwise silent.
func (s *Schema) evaluateContent(value string, st *validationState, instancePath, schemaPath string) error {
	compiler := s.GetCompiler()
	if compiler == nil || !compiler.AssertContent {
		return nil
	}

	content := []byte(value)
	if s.ContentEncoding != nil {
		decoder, ok := compiler.Decoders[*s.ContentEncoding]
		if !ok {
			return st.fail(instancePath, childPath(schemaPath, "contentEncoding"), "unsupported_encoding",
				"Unsupported encoding '{encoding}'", map[string]any{"encoding": *s.ContentEncoding})
		}
		decoded, err := decoder(value)
		if err != nil {
			if ferr := st.fail(instancePath, childPath(schemaPath, "contentEncoding"), "invalid_encoding",
				"Value is not valid {encoding}-encoded data", map[string]any{"encoding": *s.ContentEncoding}); ferr != nil {
				return ferr
			}
			return nil
		}
		content = decoded
	}

	if s.ContentMediaType != nil {
		unmarshal, ok := compiler.MediaTypes[*s.ContentMediaType]
		if !ok {
			return st.fail(instancePath, childPath(schemaPath, "contentMediaType"), "unsupported_media_type",
				"Unsupported media type '{media_type}'", map[string]any{"media_type": *s.ContentMediaType})
		}
		if _, err := unmarshal(content); err != nil {
			return st.fail(instancePath, childPath(schemaPath, "contentMediaType"), "invalid_media_type",
				"Value does not decode as {media_type}", map[string]any{"media_type": *s.ContentMediaType})
		}
	}

	return nil
}
