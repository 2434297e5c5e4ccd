// Package schemadefaults derives the nested default-value document implied by
// a JSON Schema: the document that would pre-populate an instance before any
// user input. It resolves local #/ pointers and external file: references
// while walking the schema's properties, but performs no schema or value
// validation.
//
// The root package wires the internal reference loader to the public
// extractor; the pieces live in pkg/defaults (extraction), pkg/reencode
// (charset conversion of externally loaded documents), pkg/schema (source and
// document primitives), and pkg/openapi (OpenAPI component adapter).
package schemadefaults
