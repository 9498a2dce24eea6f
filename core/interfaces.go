// Package core defines the shared types and stage interfaces for specpipe.
// Each stage of the ingestion pipeline — detection, loading, normalization,
// rendering — is a clean, testable interface over these types.
package core

import (
	"errors"

	"github.com/gaurav-prasanna/specpipe/core/model"
)

// Format classifies a raw documentation artifact.
type Format string

const (
	FormatOpenAPIJSON Format = "openapi_json"
	FormatOpenAPIYAML Format = "openapi_yaml"
	FormatSwagger     Format = "swagger"
	FormatHTML        Format = "html"
	FormatUnknown     Format = "unknown"
)

// Confidence is the ordinal strength of a detection signal.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

// String returns the lowercase name of the confidence level.
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// DetectionResult is the outcome of format detection. Detection never
// fails; total ambiguity is reported as FormatUnknown with low confidence.
type DetectionResult struct {
	Format     Format     `json:"format"`
	Confidence Confidence `json:"confidence"`
}

// Stage identifies the pipeline stage an error record originated from.
type Stage string

const (
	StageDetect    Stage = "detect"
	StageLoad      Stage = "load"
	StageNormalize Stage = "normalize"
)

// Severity distinguishes fatal problems from degradations.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// IngestError is a structured record of a problem encountered during
// ingestion. Expected error conditions are reported as these records
// inside results rather than raised to the caller.
type IngestError struct {
	Stage    Stage    `json:"stage"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ErrUnsupportedFormat is returned by the loader registry when no loader
// is registered for a detected format.
var ErrUnsupportedFormat = errors.New("no loader registered for format")

// SpecVersion annotates a loaded specification tree with the spec family
// it was written against. Normalization rules differ between the two:
// Swagger 2.x parameters embed their type directly, OpenAPI 3.x nests it
// under a schema object.
type SpecVersion string

const (
	SpecVersionSwagger2 SpecVersion = "2.x"
	SpecVersionOpenAPI3 SpecVersion = "3.x"
)

// SpecDocument is the intermediate representation produced by the OpenAPI
// loader: the parsed document tree plus the detected spec version.
//
// Root is always JSON-shaped — string keys, float64 numbers — regardless
// of which parsing strategy produced it, so the normalizer never has to
// care how the tree was obtained.
type SpecDocument struct {
	Version SpecVersion    `json:"version"`
	Root    map[string]any `json:"root"`
}

// Heading is a single heading found in documentation-style content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// TextDocument is the intermediate representation produced by the HTML
// loader: cleaned text plus cheap structure hints for a future structured
// extractor. It does not attempt endpoint extraction.
type TextDocument struct {
	Text      string    `json:"text"`
	Markdown  string    `json:"markdown"`
	Headings  []Heading `json:"headings"`
	ListItems []string  `json:"list_items"`
}

// IngestionResult is the outcome of one pipeline invocation. Loaded holds
// the loader's intermediate representation (*SpecDocument or *TextDocument)
// and is set only on success. Errors is ordered and empty on full success.
type IngestionResult struct {
	Success bool          `json:"success"`
	Format  Format        `json:"format"`
	Source  string        `json:"source"`
	Loaded  any           `json:"loaded_data,omitempty"`
	Errors  []IngestError `json:"errors"`
}

// Options is the per-call configuration surface. The zero value disables
// the third-party parsing strategy; use DefaultOptions for the documented
// defaults.
type Options struct {
	// Strict turns structural violations (unparseable syntax, missing
	// mandatory top-level fields) into hard failures instead of warnings.
	Strict bool
	// UseKin selects the kin-openapi parsing strategy for OpenAPI 3.x
	// documents. When false the manual parser is used throughout. Both
	// strategies produce the same intermediate representation shape.
	UseKin bool
}

// DefaultOptions returns the default configuration: resilient parsing
// with the third-party strategy preferred.
func DefaultOptions() Options {
	return Options{Strict: false, UseKin: true}
}

// Loader parses raw content of one format into that format's intermediate
// representation. A loader must not fail outright for malformed but
// partially usable input: it reports a structured error set alongside
// whatever it could extract, and reserves the error return for hard
// failures (strict-mode violations).
type Loader interface {
	Load(content string, opts Options) (loaded any, records []IngestError, err error)
}

// SourceMeta describes the provenance of a normalized endpoint set,
// carried alongside the endpoints into rendered output.
type SourceMeta struct {
	Source     string `json:"source"`
	Format     Format `json:"format"`
	Title      string `json:"title,omitempty"`
	Version    string `json:"version,omitempty"`
	IngestedAt string `json:"ingested_at"` // ISO8601
}

// Renderer converts a canonical endpoint list into a final output format.
type Renderer interface {
	Render(endpoints []model.Endpoint, meta SourceMeta) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json").
	Extension() string
}
