// Package normalize converts a loaded specification tree into canonical
// endpoints. Normalization is a pure function: the same document and spec
// version always produce the same output, byte for byte, because paths
// and methods are visited in a fixed order and every map traversal is
// sorted.
//
// The partial-failure policy is per operation: a malformed operation is
// skipped with a recorded warning and never aborts the rest of the
// document.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/specpipe/core"
	"github.com/gaurav-prasanna/specpipe/core/model"
)

// methodOrder fixes the visit order of operations within a path item.
var methodOrder = []string{"get", "put", "post", "delete", "options", "head", "patch"}

var status2xxRe = regexp.MustCompile(`^2\d\d$`)

// Endpoints normalizes every (path, method) operation in the document
// into a canonical endpoint. Problems that only affect a single operation
// or parameter are reported as warning records alongside the endpoints
// that did normalize.
func Endpoints(doc *core.SpecDocument) ([]model.Endpoint, []core.IngestError) {
	conv := &schemaConverter{root: doc.Root}

	rawPaths, ok := doc.Root["paths"].(map[string]any)
	if !ok {
		if _, present := doc.Root["paths"]; present {
			conv.warn("'paths' is not an object, nothing to normalize")
		}
		return nil, conv.records
	}

	var endpoints []model.Endpoint
	seen := map[string]bool{}

	for _, path := range sortedKeys(rawPaths) {
		item, ok := rawPaths[path].(map[string]any)
		if !ok {
			conv.warn("path %s: item is not an object, skipping", path)
			continue
		}
		for _, method := range methodOrder {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			endpoint, err := buildEndpoint(conv, doc.Version, method, path, op, seen)
			if err != nil {
				conv.warn("%s %s: %v, skipping operation", strings.ToUpper(method), path, err)
				continue
			}
			endpoints = append(endpoints, endpoint)
		}
	}

	return endpoints, conv.records
}

// buildEndpoint assembles one canonical endpoint from a raw operation map.
func buildEndpoint(conv *schemaConverter, version core.SpecVersion, method, path string, op map[string]any, seen map[string]bool) (model.Endpoint, error) {
	where := strings.ToUpper(method) + " " + path

	name := ""
	if opID, ok := op["operationId"].(string); ok && strings.TrimSpace(opID) != "" {
		name = snakeCase(opID)
	}
	if name == "" {
		name = deriveName(method, path)
	}
	name = uniqueName(name, method, seen)

	endpoint := model.Endpoint{
		Name:   name,
		Method: strings.ToUpper(method),
		Path:   path,
	}
	if summary, ok := op["summary"].(string); ok {
		endpoint.Summary = summary
	}
	if desc, ok := op["description"].(string); ok {
		endpoint.Description = desc
	}
	if deprecated, ok := op["deprecated"].(bool); ok {
		endpoint.Deprecated = deprecated
	}
	if rawTags, ok := op["tags"].([]any); ok {
		for _, t := range rawTags {
			if tag, ok := t.(string); ok {
				endpoint.Tags = append(endpoint.Tags, tag)
			}
		}
	}

	params, bodySchema := normalizeParameters(conv, version, where, op)
	endpoint.Parameters = params
	endpoint.BodySchema = bodySchema

	if endpoint.BodySchema == nil && version == core.SpecVersionOpenAPI3 {
		endpoint.BodySchema = requestBodySchema(conv, where, op)
	}
	endpoint.ResponseSchema = responseSchema(conv, version, where, op)

	return model.NewEndpoint(endpoint)
}

// normalizeParameters maps the operation's parameter list into canonical
// parameters. Swagger 2.x body parameters become the endpoint's body
// schema instead of a parameter entry; path parameters are forced
// required regardless of the source declaration.
func normalizeParameters(conv *schemaConverter, version core.SpecVersion, where string, op map[string]any) ([]model.Parameter, *model.Schema) {
	raw, ok := op["parameters"].([]any)
	if !ok {
		return nil, nil
	}

	var params []model.Parameter
	var bodySchema *model.Schema

	for i, entry := range raw {
		p, ok := entry.(map[string]any)
		if !ok {
			conv.warn("%s: parameter %d is not an object, skipping", where, i)
			continue
		}
		if ref, ok := p["$ref"].(string); ok {
			resolved, err := conv.resolveRef(ref)
			if err != nil {
				conv.warn("%s: parameter %d: %v, skipping", where, i, err)
				continue
			}
			p, ok = resolved.(map[string]any)
			if !ok {
				conv.warn("%s: parameter reference %s is not an object, skipping", where, ref)
				continue
			}
		}

		name, _ := p["name"].(string)
		location, _ := p["in"].(string)
		required, _ := p["required"].(bool)
		description, _ := p["description"].(string)

		if location == "body" {
			// Swagger 2.x body parameter: its schema is the request body.
			bodySchema = conv.convert(p["schema"], where+" body", map[string]bool{}, 0)
			continue
		}

		loc, ok := canonicalLocation(location)
		if !ok {
			conv.warn("%s: parameter %q has unknown location %q, treating as query", where, name, location)
			loc = model.LocationQuery
		}
		if loc == model.LocationPath {
			required = true
		}

		typ := parameterType(conv, version, where, name, p)

		param, err := model.NewParameter(snakeCase(name), loc, typ, required, description)
		if err != nil {
			conv.warn("%s: parameter %q: %v, skipping", where, name, err)
			continue
		}
		params = append(params, param)
	}

	return params, bodySchema
}

// parameterType extracts and normalizes a parameter's type. Swagger 2.x
// declares it directly on the parameter; OpenAPI 3.x nests it under a
// schema object.
func parameterType(conv *schemaConverter, version core.SpecVersion, where, name string, p map[string]any) model.DataType {
	raw := ""
	if version == core.SpecVersionSwagger2 {
		raw, _ = p["type"].(string)
	} else if schema, ok := p["schema"].(map[string]any); ok {
		raw, _ = schema["type"].(string)
	}
	typ, known := normalizeType(raw)
	if !known {
		conv.warn("%s: parameter %q has unknown type %q, defaulting to string", where, name, raw)
	}
	return typ
}

// canonicalLocation maps an OpenAPI `in` value to the canonical location
// enum.
func canonicalLocation(in string) (model.Location, bool) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "query":
		return model.LocationQuery, true
	case "path":
		return model.LocationPath, true
	case "header":
		return model.LocationHeader, true
	case "cookie":
		return model.LocationCookie, true
	case "body":
		return model.LocationBody, true
	default:
		return "", false
	}
}

// requestBodySchema extracts the OpenAPI 3.x request body schema,
// preferring application/json and falling back to the first content type
// in sorted order.
func requestBodySchema(conv *schemaConverter, where string, op map[string]any) *model.Schema {
	body, ok := op["requestBody"].(map[string]any)
	if !ok {
		return nil
	}
	return contentSchema(conv, where+" requestBody", body)
}

// responseSchema extracts the body schema of the first 2xx response in
// sorted status order. Absence of any 2xx entry leaves the response
// schema unset.
func responseSchema(conv *schemaConverter, version core.SpecVersion, where string, op map[string]any) *model.Schema {
	responses, ok := op["responses"].(map[string]any)
	if !ok {
		return nil
	}
	for _, status := range sortedKeys(responses) {
		if !status2xxRe.MatchString(status) {
			continue
		}
		resp, ok := responses[status].(map[string]any)
		if !ok {
			continue
		}
		respWhere := fmt.Sprintf("%s response %s", where, status)
		if version == core.SpecVersionSwagger2 {
			if schema, ok := resp["schema"]; ok {
				return conv.convert(schema, respWhere, map[string]bool{}, 0)
			}
			continue
		}
		if schema := contentSchema(conv, respWhere, resp); schema != nil {
			return schema
		}
	}
	return nil
}

// contentSchema digs the schema out of an OpenAPI 3.x content map,
// preferring application/json over the sorted content-type order.
func contentSchema(conv *schemaConverter, where string, node map[string]any) *model.Schema {
	content, ok := node["content"].(map[string]any)
	if !ok {
		return nil
	}
	types := sortedKeys(content)
	for i, ct := range types {
		if ct == "application/json" && i != 0 {
			types = append([]string{ct}, append(types[:i:i], types[i+1:]...)...)
			break
		}
	}
	for _, ct := range types {
		media, ok := content[ct].(map[string]any)
		if !ok {
			continue
		}
		if schema, ok := media["schema"]; ok {
			return conv.convert(schema, where+" ("+ct+")", map[string]bool{}, 0)
		}
	}
	return nil
}
