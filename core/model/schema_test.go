package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	schema := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"id":   {Type: TypeNumber},
			"tags": {Type: TypeArray, Items: &Schema{Type: TypeString}},
		},
		Required: []string{"id"},
	}
	assert.NoError(t, schema.Validate())
}

func TestSchemaValidateNil(t *testing.T) {
	var schema *Schema
	assert.NoError(t, schema.Validate())
}

func TestSchemaValidateBadType(t *testing.T) {
	schema := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"count": {Type: DataType("integer")},
		},
	}
	err := schema.Validate()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "schema.type", verr.Field)
}

func TestSchemaValidateCycle(t *testing.T) {
	node := &Schema{Type: TypeObject}
	node.Properties = map[string]*Schema{"self": node}

	err := node.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cyclic")
}

func TestSchemaValidateSharedSubtree(t *testing.T) {
	// The same node referenced from two siblings is a DAG, not a cycle.
	shared := &Schema{Type: TypeString}
	schema := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"a": shared,
			"b": shared,
		},
	}
	assert.NoError(t, schema.Validate())
}

func TestDataTypeIsValid(t *testing.T) {
	for _, typ := range ValidTypes {
		assert.True(t, typ.IsValid(), "%s", typ)
	}
	assert.False(t, DataType("integer").IsValid())
	assert.False(t, DataType("").IsValid())
}
