// Package openapi exports field definitions as OpenAPI 3 schemas. Each field
// becomes an object whose properties are the camelCase component keys, so
// JSON payloads produced by field.Field.MarshalJSON can be validated by any
// OpenAPI tooling, including kin-openapi itself.
package openapi
