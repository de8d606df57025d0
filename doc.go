// Package jsonschema compiles and evaluates JSON Schema drafts 04, 06, and
// 07. A Compiler resolves $ref graphs, either synchronously against
// registered schemas and a caller-supplied RefProvider, or asynchronously
// through an AsyncFetcher that fetches remote documents concurrently; the
// resulting Schema validates
// instances and reports every violation as a flat ValidationError rather
// than a nested annotation tree.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package jsonschema
