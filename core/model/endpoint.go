package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Location says where a parameter travels in an HTTP request.
type Location string

const (
	LocationQuery  Location = "query"
	LocationPath   Location = "path"
	LocationHeader Location = "header"
	LocationBody   Location = "body"
	LocationCookie Location = "cookie"
)

// IsValid reports whether l is one of the canonical parameter locations.
func (l Location) IsValid() bool {
	switch l {
	case LocationQuery, LocationPath, LocationHeader, LocationBody, LocationCookie:
		return true
	}
	return false
}

// httpMethods is the fixed set of allowed endpoint methods.
var httpMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true,
}

// nameRe matches valid endpoint and parameter identifiers: lowercase
// letters, digits and underscores, not starting with a digit.
var nameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Parameter is a single canonical API parameter.
type Parameter struct {
	Name        string   `json:"name"`
	Location    Location `json:"location"`
	Type        DataType `json:"type"`
	Required    bool     `json:"required"`
	Description string   `json:"description,omitempty"`
}

// NewParameter validates and returns a canonical parameter.
// Path parameters must be required: a URL template segment is never optional.
func NewParameter(name string, loc Location, typ DataType, required bool, description string) (Parameter, error) {
	if strings.TrimSpace(name) == "" {
		return Parameter{}, &ValidationError{Field: "parameter.name", Reason: "must not be empty"}
	}
	if !loc.IsValid() {
		return Parameter{}, &ValidationError{Field: "parameter.location", Reason: fmt.Sprintf("%q is not a canonical location", loc)}
	}
	if !typ.IsValid() {
		return Parameter{}, &ValidationError{Field: "parameter.type", Reason: fmt.Sprintf("%q is not a canonical type", typ)}
	}
	if loc == LocationPath && !required {
		return Parameter{}, &ValidationError{Field: "parameter.required", Reason: "path parameters must be required"}
	}
	return Parameter{
		Name:        strings.TrimSpace(name),
		Location:    loc,
		Type:        typ,
		Required:    required,
		Description: description,
	}, nil
}

// Endpoint is the canonical representation of a single REST API operation.
// It is the primary value exchanged with downstream consumers.
type Endpoint struct {
	Name           string      `json:"name"`
	Method         string      `json:"method"`
	Path           string      `json:"path"`
	Summary        string      `json:"summary,omitempty"`
	Description    string      `json:"description,omitempty"`
	Parameters     []Parameter `json:"parameters"`
	BodySchema     *Schema     `json:"body_schema,omitempty"`
	ResponseSchema *Schema     `json:"response_schema,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	Deprecated     bool        `json:"deprecated"`
}

// NewEndpoint validates e and returns the canonical copy. The HTTP method
// is upper-cased; everything else must already satisfy the invariants:
// a snake_case name, a path starting with "/", valid parameters, and
// finite schemas.
func NewEndpoint(e Endpoint) (Endpoint, error) {
	if !nameRe.MatchString(e.Name) {
		return Endpoint{}, &ValidationError{Field: "endpoint.name", Reason: fmt.Sprintf("%q is not a valid identifier", e.Name)}
	}
	e.Method = strings.ToUpper(strings.TrimSpace(e.Method))
	if !httpMethods[e.Method] {
		return Endpoint{}, &ValidationError{Field: "endpoint.method", Reason: fmt.Sprintf("%q is not an allowed HTTP method", e.Method)}
	}
	if e.Path == "" || !strings.HasPrefix(e.Path, "/") {
		return Endpoint{}, &ValidationError{Field: "endpoint.path", Reason: "must be non-empty and begin with /"}
	}
	for i, p := range e.Parameters {
		// Re-run the parameter checks so an endpoint assembled from raw
		// Parameter literals cannot smuggle in an invalid one.
		validated, err := NewParameter(p.Name, p.Location, p.Type, p.Required, p.Description)
		if err != nil {
			return Endpoint{}, err
		}
		e.Parameters[i] = validated
	}
	if err := e.BodySchema.Validate(); err != nil {
		return Endpoint{}, err
	}
	if err := e.ResponseSchema.Validate(); err != nil {
		return Endpoint{}, err
	}
	return e, nil
}
