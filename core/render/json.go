// Package render — JSON renderer.
// Serializes the canonical endpoint list, with its source metadata, into
// the JSON document consumed by downstream tool-generation stages.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/specpipe/core"
	"github.com/gaurav-prasanna/specpipe/core/model"
)

// endpointDocument is the JSON output for a normalized source.
type endpointDocument struct {
	Metadata  core.SourceMeta  `json:"metadata"`
	Count     int              `json:"count"`
	Endpoints []model.Endpoint `json:"endpoints"`
}

// JSONRenderer produces the structured JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals endpoints and metadata into indented JSON. Endpoints
// are emitted in the order the normalizer produced them, which is
// deterministic for a given document.
func (r *JSONRenderer) Render(endpoints []model.Endpoint, meta core.SourceMeta) ([]byte, error) {
	if endpoints == nil {
		endpoints = []model.Endpoint{}
	}
	doc := endpointDocument{
		Metadata:  meta,
		Count:     len(endpoints),
		Endpoints: endpoints,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
