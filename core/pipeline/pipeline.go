// Package pipeline orchestrates detection and loading into a single call.
// It deliberately does not normalize: a caller can inspect the raw loaded
// data (a spec tree, cleaned HTML text) before deciding whether and how
// to canonicalize it.
//
// The pipeline holds no state across calls. A caller always receives an
// IngestionResult, never a panic or a raw error, for any input that
// classifies into a known or unknown format.
package pipeline

import (
	"github.com/gaurav-prasanna/specpipe/core"
	"github.com/gaurav-prasanna/specpipe/core/detect"
	"github.com/gaurav-prasanna/specpipe/core/load"
)

// Ingest detects the format of content and runs the matching loader.
// sourceName is advisory: it only feeds extension-based detection hints.
func Ingest(sourceName, content string, opts core.Options) core.IngestionResult {
	res := detect.Detect(sourceName, content)
	result := run(sourceName, content, res.Format, opts)
	if res.Format == core.FormatUnknown {
		// Detection ambiguity is non-fatal on its own; surface it ahead of
		// the unsupported-format record the registry produced.
		ambiguous := core.IngestError{
			Stage:    core.StageDetect,
			Message:  "format could not be determined from content or filename",
			Severity: core.SeverityWarning,
		}
		result.Errors = append([]core.IngestError{ambiguous}, result.Errors...)
	}
	return result
}

// IngestAs skips detection and loads content as the given format. It is
// the escape hatch for callers that already know what they are holding.
func IngestAs(sourceName, content string, format core.Format, opts core.Options) core.IngestionResult {
	return run(sourceName, content, format, opts)
}

func run(sourceName, content string, format core.Format, opts core.Options) core.IngestionResult {
	result := core.IngestionResult{Format: format, Source: sourceName}

	loader, err := load.For(format)
	if err != nil {
		result.Errors = []core.IngestError{{
			Stage:    core.StageLoad,
			Message:  err.Error(),
			Severity: core.SeverityError,
		}}
		return result
	}

	loaded, records, err := loader.Load(content, opts)
	result.Errors = records
	if err != nil || loaded == nil {
		return result
	}

	result.Success = true
	result.Loaded = loaded
	return result
}
