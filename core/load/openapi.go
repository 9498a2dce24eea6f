package load

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/specpipe/core"
)

// OpenAPILoader parses OpenAPI 3.x and Swagger 2.x specifications in JSON
// or YAML and produces a *core.SpecDocument.
//
// The loader is resilient by default: malformed syntax or missing
// mandatory top-level fields become structured error records instead of
// failures, and missing optional sections get sensible defaults. Strict
// mode flips the policy, turning the first structural violation into a
// hard failure.
type OpenAPILoader struct{}

// NewOpenAPILoader creates an OpenAPILoader.
func NewOpenAPILoader() *OpenAPILoader {
	return &OpenAPILoader{}
}

// Load parses content into the spec-tree intermediate representation.
// Under opts.UseKin, OpenAPI 3.x documents are parsed and validated with
// kin-openapi; Swagger 2.x documents and the opts.UseKin=false path use
// the manual JSON/YAML parser. Either way the returned tree has the same
// JSON shape.
func (l *OpenAPILoader) Load(content string, opts core.Options) (any, []core.IngestError, error) {
	var records []core.IngestError

	root, err := parseTree(content)
	if err != nil {
		rec := core.IngestError{Stage: core.StageLoad, Message: err.Error(), Severity: core.SeverityError}
		if opts.Strict {
			return nil, []core.IngestError{rec}, err
		}
		return nil, []core.IngestError{rec}, nil
	}

	version, versionRecords, err := specVersion(root, opts.Strict)
	records = append(records, versionRecords...)
	if err != nil {
		return nil, records, err
	}

	if opts.UseKin && version == core.SpecVersionOpenAPI3 {
		kinRoot, kinErr := parseWithKin(content)
		switch {
		case kinErr == nil:
			root = kinRoot
		case opts.Strict:
			records = append(records, core.IngestError{Stage: core.StageLoad, Message: kinErr.Error(), Severity: core.SeverityError})
			return nil, records, kinErr
		default:
			records = append(records, core.IngestError{
				Stage:    core.StageLoad,
				Message:  fmt.Sprintf("kin-openapi rejected the document, falling back to manual parse: %v", kinErr),
				Severity: core.SeverityWarning,
			})
		}
	}

	fieldRecords, err := validateSpec(root, opts.Strict)
	records = append(records, fieldRecords...)
	if err != nil {
		return nil, records, err
	}

	return &core.SpecDocument{Version: version, Root: root}, records, nil
}

// parseTree parses JSON or YAML content into a JSON-shaped tree. Content
// starting with "{" is treated as JSON; everything else goes through the
// YAML parser and is then canonicalized so both syntaxes produce
// identical shapes.
func parseTree(content string) (map[string]any, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, fmt.Errorf("empty document")
	}

	if strings.HasPrefix(trimmed, "{") {
		var tree map[string]any
		if err := json.Unmarshal([]byte(trimmed), &tree); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return tree, nil
	}

	var raw any
	if err := yaml.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	tree, ok := stringifyKeys(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a mapping at the document root, got %T", raw)
	}
	return canonicalTree(tree)
}

// stringifyKeys rewrites YAML map keys as strings. YAML allows non-string
// keys (a bare 200 response code is an int), which JSON marshaling and the
// normalizer both choke on.
func stringifyKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = stringifyKeys(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = stringifyKeys(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = stringifyKeys(item)
		}
		return out
	default:
		return v
	}
}

// canonicalTree round-trips a tree through JSON so every parsing strategy
// produces the same shape: string keys and float64 numbers.
func canonicalTree(tree map[string]any) (map[string]any, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("canonicalizing tree: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("canonicalizing tree: %w", err)
	}
	return out, nil
}

// specVersion reads the version marker key. A document with neither
// `openapi` nor `swagger` is assumed to be 3.x with a warning in resilient
// mode, and is a hard failure in strict mode.
func specVersion(root map[string]any, strict bool) (core.SpecVersion, []core.IngestError, error) {
	if _, ok := root["swagger"]; ok {
		return core.SpecVersionSwagger2, nil, nil
	}
	if _, ok := root["openapi"]; ok {
		return core.SpecVersionOpenAPI3, nil, nil
	}

	err := fmt.Errorf("document has neither 'openapi' nor 'swagger' version field")
	if strict {
		rec := core.IngestError{Stage: core.StageLoad, Message: err.Error(), Severity: core.SeverityError}
		return "", []core.IngestError{rec}, err
	}
	rec := core.IngestError{
		Stage:    core.StageLoad,
		Message:  "missing 'openapi'/'swagger' version field, assuming OpenAPI 3.x",
		Severity: core.SeverityWarning,
	}
	return core.SpecVersionOpenAPI3, []core.IngestError{rec}, nil
}

// validateSpec checks the mandatory top-level fields. In resilient mode a
// missing `info` is defaulted and a missing `paths` is only warned about,
// since partial specs are common in documentation; strict mode fails on
// either, and additionally requires info.title and info.version.
func validateSpec(root map[string]any, strict bool) ([]core.IngestError, error) {
	var records []core.IngestError

	info, hasInfo := root["info"].(map[string]any)
	if !hasInfo {
		err := fmt.Errorf("missing required field: info")
		if strict {
			records = append(records, core.IngestError{Stage: core.StageLoad, Message: err.Error(), Severity: core.SeverityError})
			return records, err
		}
		info = map[string]any{"title": "Unknown API", "version": "1.0.0"}
		root["info"] = info
		records = append(records, core.IngestError{
			Stage:    core.StageLoad,
			Message:  "missing 'info' section, defaulting title and version",
			Severity: core.SeverityWarning,
		})
	}

	if strict {
		if _, ok := info["title"].(string); !ok {
			err := fmt.Errorf("'info' must contain 'title'")
			records = append(records, core.IngestError{Stage: core.StageLoad, Message: err.Error(), Severity: core.SeverityError})
			return records, err
		}
		if _, ok := info["version"].(string); !ok {
			err := fmt.Errorf("'info' must contain 'version'")
			records = append(records, core.IngestError{Stage: core.StageLoad, Message: err.Error(), Severity: core.SeverityError})
			return records, err
		}
	}

	if _, ok := root["paths"]; !ok {
		err := fmt.Errorf("missing required field: paths")
		if strict {
			records = append(records, core.IngestError{Stage: core.StageLoad, Message: err.Error(), Severity: core.SeverityError})
			return records, err
		}
		records = append(records, core.IngestError{
			Stage:    core.StageLoad,
			Message:  "missing 'paths' section, no endpoints will be produced",
			Severity: core.SeverityWarning,
		})
	}

	return records, nil
}
