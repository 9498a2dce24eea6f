package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/specpipe/core"
	"github.com/gaurav-prasanna/specpipe/core/model"
)

// maxSchemaDepth bounds schema recursion independently of reference
// tracking, so pathological hand-written nesting cannot blow the stack.
const maxSchemaDepth = 64

// normalizeType collapses a source type vocabulary into the canonical set.
// The second return value is false for unknown or absent types, which the
// caller records as a warning; the mapping itself is total and defaults
// to string.
func normalizeType(raw string) (model.DataType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "string", "str", "text", "byte", "binary", "date", "date-time", "password", "file", "uuid", "email":
		return model.TypeString, true
	case "number", "integer", "int", "int32", "int64", "long", "float", "double", "decimal":
		return model.TypeNumber, true
	case "boolean", "bool":
		return model.TypeBoolean, true
	case "object", "map", "dict":
		return model.TypeObject, true
	case "array", "list":
		return model.TypeArray, true
	case "null", "nil", "none":
		return model.TypeNull, true
	default:
		return model.TypeString, false
	}
}

// schemaConverter turns raw schema maps into canonical model.Schema trees.
// It resolves local $ref pointers against the document root and flattens
// reference cycles: a schema that would become its own ancestor is emitted
// as a bare object with a warning, never looped over.
type schemaConverter struct {
	root    map[string]any
	records []core.IngestError
}

func (c *schemaConverter) warn(format string, args ...any) {
	c.records = append(c.records, core.IngestError{
		Stage:    core.StageNormalize,
		Message:  fmt.Sprintf(format, args...),
		Severity: core.SeverityWarning,
	})
}

// convert maps a raw schema node into a canonical schema. where names the
// location for warning messages; visiting tracks $ref targets on the
// current ancestor chain.
func (c *schemaConverter) convert(node any, where string, visiting map[string]bool, depth int) *model.Schema {
	if node == nil {
		return nil
	}
	raw, ok := node.(map[string]any)
	if !ok {
		c.warn("%s: schema is not an object, ignoring", where)
		return nil
	}
	if depth > maxSchemaDepth {
		c.warn("%s: schema nesting exceeds %d levels, flattening", where, maxSchemaDepth)
		return &model.Schema{Type: model.TypeObject}
	}

	if ref, ok := raw["$ref"].(string); ok {
		if visiting[ref] {
			c.warn("%s: cyclic schema reference %s flattened", where, ref)
			return &model.Schema{Type: model.TypeObject}
		}
		target, err := c.resolveRef(ref)
		if err != nil {
			c.warn("%s: %v", where, err)
			return &model.Schema{Type: model.TypeObject}
		}
		visiting[ref] = true
		out := c.convert(target, where+" -> "+ref, visiting, depth+1)
		delete(visiting, ref)
		return out
	}

	schema := &model.Schema{}

	rawType, _ := raw["type"].(string)
	typ, known := normalizeType(rawType)
	switch {
	case known:
		schema.Type = typ
	case raw["properties"] != nil:
		schema.Type = model.TypeObject
	case raw["items"] != nil:
		schema.Type = model.TypeArray
	default:
		schema.Type = model.TypeString
		c.warn("%s: unknown schema type %q, defaulting to string", where, rawType)
	}

	if props, ok := raw["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*model.Schema, len(props))
		for _, name := range sortedKeys(props) {
			if converted := c.convert(props[name], where+"."+name, visiting, depth+1); converted != nil {
				schema.Properties[name] = converted
			}
		}
	}
	if items, ok := raw["items"]; ok && schema.Type == model.TypeArray {
		schema.Items = c.convert(items, where+"[]", visiting, depth+1)
	}
	if required, ok := raw["required"].([]any); ok {
		for _, name := range required {
			if s, ok := name.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}
	if format, ok := raw["format"].(string); ok {
		schema.Format = format
	}
	if enum, ok := raw["enum"].([]any); ok {
		schema.Enum = enum
	}
	if desc, ok := raw["description"].(string); ok {
		schema.Description = desc
	}

	return schema
}

// resolveRef looks up a local JSON pointer of the forms used by OpenAPI
// 3.x (#/components/schemas/X) and Swagger 2.x (#/definitions/X).
func (c *schemaConverter) resolveRef(ref string) (any, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, fmt.Errorf("unsupported external reference %s", ref)
	}
	node := any(c.root)
	for _, part := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unresolvable reference %s", ref)
		}
		node, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("unresolvable reference %s", ref)
		}
	}
	return node, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
