// Package descriptor provides structural type descriptors for capability
// parameters and return values.
//
// A Descriptor describes an expected value shape: a primitive (string,
// integer, float, boolean), a structured record with ordered named fields, an
// optional wrapper admitting nil, or a homogeneous sequence. Descriptors are
// immutable once constructed and safe for concurrent use.
//
// Validation is purely structural. Validate walks the value recursively and
// reports the first mismatch with its field path; it never coerces values.
// The one accommodation to transport reality is numeric: JSON decoding
// produces float64 for every number, so an integral float64 satisfies the
// integer kind.
//
// Descriptors also export themselves as JSON Schema (via
// github.com/google/jsonschema-go) so hosts can publish capability
// listings in a standard discovery format.
package descriptor
