package load

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// parseWithKin parses and validates an OpenAPI 3.x document with
// kin-openapi, then marshals the typed document back into the same
// JSON-shaped tree the manual parser produces. Having both strategies
// converge on one shape keeps the choice invisible to the normalizer.
func parseWithKin(content string) (map[string]any, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("kin-openapi parse: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("kin-openapi validation: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling validated document: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("rebuilding document tree: %w", err)
	}
	return tree, nil
}
