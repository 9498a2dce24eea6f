package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParameter(t *testing.T) {
	p, err := NewParameter("user_id", LocationPath, TypeNumber, true, "the user")
	require.NoError(t, err)
	assert.Equal(t, "user_id", p.Name)
	assert.Equal(t, LocationPath, p.Location)
	assert.Equal(t, TypeNumber, p.Type)
	assert.True(t, p.Required)
	assert.Equal(t, "the user", p.Description)
}

func TestNewParameterInvalid(t *testing.T) {
	tests := []struct {
		name     string
		argName  string
		loc      Location
		typ      DataType
		required bool
	}{
		{"empty name", "", LocationQuery, TypeString, false},
		{"blank name", "   ", LocationQuery, TypeString, false},
		{"bad location", "id", Location("formData"), TypeString, false},
		{"bad type", "id", LocationQuery, DataType("integer"), false},
		{"optional path parameter", "id", LocationPath, TypeString, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParameter(tt.argName, tt.loc, tt.typ, tt.required, "")
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestNewEndpoint(t *testing.T) {
	param, err := NewParameter("limit", LocationQuery, TypeNumber, false, "")
	require.NoError(t, err)

	ep, err := NewEndpoint(Endpoint{
		Name:       "list_users",
		Method:     "get",
		Path:       "/users",
		Parameters: []Parameter{param},
	})
	require.NoError(t, err)
	assert.Equal(t, "GET", ep.Method, "method is upper-cased")
	assert.Equal(t, "/users", ep.Path)
}

func TestNewEndpointInvalid(t *testing.T) {
	valid := Endpoint{Name: "list_users", Method: "GET", Path: "/users"}

	tests := []struct {
		name   string
		mutate func(e *Endpoint)
	}{
		{"camelCase name", func(e *Endpoint) { e.Name = "listUsers" }},
		{"name starting with digit", func(e *Endpoint) { e.Name = "2users" }},
		{"empty name", func(e *Endpoint) { e.Name = "" }},
		{"unknown method", func(e *Endpoint) { e.Method = "FETCH" }},
		{"relative path", func(e *Endpoint) { e.Path = "users" }},
		{"empty path", func(e *Endpoint) { e.Path = "" }},
		{"invalid parameter", func(e *Endpoint) {
			e.Parameters = []Parameter{{Name: "id", Location: LocationPath, Type: TypeString, Required: false}}
		}},
		{"invalid body schema", func(e *Endpoint) {
			e.BodySchema = &Schema{Type: DataType("integer")}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			_, err := NewEndpoint(e)
			require.Error(t, err)
		})
	}
}
