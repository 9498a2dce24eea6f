// Package model defines the canonical, format-independent representation
// of a REST API endpoint. Every loader's output is normalized into these
// types, and all downstream consumers (serializers, report renderers,
// future tool generators) depend only on them.
//
// Instances are immutable by convention: they are created through the
// package constructors, which enforce the structural invariants, and are
// never modified afterwards.
package model

import "fmt"

// DataType is the closed set of canonical data types. Source vocabularies
// (integer, long, float, ...) are collapsed into this set during
// normalization; no canonical value ever falls outside it.
type DataType string

const (
	TypeString  DataType = "string"
	TypeNumber  DataType = "number"
	TypeBoolean DataType = "boolean"
	TypeObject  DataType = "object"
	TypeArray   DataType = "array"
	TypeNull    DataType = "null"
)

// ValidTypes lists every canonical data type.
var ValidTypes = []DataType{TypeString, TypeNumber, TypeBoolean, TypeObject, TypeArray, TypeNull}

// IsValid reports whether t is one of the canonical data types.
func (t DataType) IsValid() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean, TypeObject, TypeArray, TypeNull:
		return true
	}
	return false
}

// ValidationError describes a violated model invariant. Constructors return
// it instead of ever producing a partially-valid instance.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Schema is a simplified, recursive description of a JSON-like shape,
// used for request and response bodies. Properties is set for object
// types, Items for array types.
type Schema struct {
	Type        DataType           `json:"type"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Format      string             `json:"format,omitempty"`
	Enum        []any              `json:"enum,omitempty"`
	Description string             `json:"description,omitempty"`
}

// Validate checks the schema tree: every node must carry a canonical type,
// and the tree must be finite. A node reachable from itself means the
// normalizer failed to flatten a reference cycle; that is rejected here
// rather than risking unbounded recursion in consumers.
func (s *Schema) Validate() error {
	return s.validate(map[*Schema]bool{})
}

func (s *Schema) validate(ancestors map[*Schema]bool) error {
	if s == nil {
		return nil
	}
	if ancestors[s] {
		return &ValidationError{Field: "schema", Reason: "cyclic schema reference"}
	}
	if !s.Type.IsValid() {
		return &ValidationError{Field: "schema.type", Reason: fmt.Sprintf("%q is not a canonical type", s.Type)}
	}
	ancestors[s] = true
	for _, prop := range s.Properties {
		if err := prop.validate(ancestors); err != nil {
			return err
		}
	}
	if err := s.Items.validate(ancestors); err != nil {
		return err
	}
	delete(ancestors, s)
	return nil
}
