// Package detect classifies raw API-documentation content into one of the
// known formats. Detection layers two kinds of signal:
//
//  1. Content sniffing — an `openapi` or `swagger` key in a document that
//     parses as JSON/YAML, or HTML tokens near the start of the content.
//  2. Filename extension hints — a weak signal that can raise confidence
//     but never overrides what the content says.
//
// Detection never fails: total ambiguity yields FormatUnknown with low
// confidence, and a document that parses as JSON/YAML but carries neither
// marker key is classified unknown rather than guessed at.
package detect

import (
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/specpipe/core"
)

// Signal is a custom detection predicate for an externally registered
// format. It reports a result and whether it matched.
type Signal func(sourceName, content string) (core.DetectionResult, bool)

var (
	signalsMu sync.RWMutex
	signals   []Signal
)

// RegisterSignal adds a detection predicate for a new format. Custom
// signals run before the built-in heuristics. Registration belongs in
// process setup, alongside load.Register for the matching loader; it must
// not race with concurrent Detect calls.
func RegisterSignal(s Signal) {
	signalsMu.Lock()
	defer signalsMu.Unlock()
	signals = append(signals, s)
}

// sniffLimit bounds how much of the content the HTML token heuristics
// inspect for leading markers.
const sniffLimit = 512

// extensionHints maps filename suffixes to the format they weakly suggest.
var extensionHints = map[string]core.Format{
	".json": core.FormatOpenAPIJSON,
	".yaml": core.FormatOpenAPIYAML,
	".yml":  core.FormatOpenAPIYAML,
	".html": core.FormatHTML,
	".htm":  core.FormatHTML,
}

var (
	leadingHTMLRe = regexp.MustCompile(`^\s*<(!doctype\s+html|html|head|body|div|meta)[\s>]`)
	commonTags    = []string{"<html", "<head", "<body", "<div", "<span", "<p", "<a"}
)

// Detect classifies content, optionally using sourceName as an extension
// hint. It never returns an error; see the package comment for the
// signal ordering.
func Detect(sourceName, content string) core.DetectionResult {
	signalsMu.RLock()
	custom := signals
	signalsMu.RUnlock()
	for _, s := range custom {
		if res, ok := s(sourceName, content); ok {
			return res
		}
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return core.DetectionResult{Format: core.FormatUnknown, Confidence: core.ConfidenceLow}
	}

	hint := hintFromExtension(sourceName)

	if res, ok := sniffSpec(trimmed); ok {
		return res
	}

	if res, ok := sniffHTML(trimmed, hint); ok {
		return res
	}

	// Content neither parses as a spec nor looks like HTML. The extension
	// alone is too weak a signal to classify on.
	return core.DetectionResult{Format: core.FormatUnknown, Confidence: core.ConfidenceLow}
}

// hintFromExtension returns the format a filename suffix suggests, or
// FormatUnknown when the name carries no usable hint.
func hintFromExtension(sourceName string) core.Format {
	lower := strings.ToLower(sourceName)
	for ext, format := range extensionHints {
		if strings.HasSuffix(lower, ext) {
			return format
		}
	}
	return core.FormatUnknown
}

// sniffSpec tries to parse the content as JSON, then YAML, and looks for
// the top-level `openapi` (3.x) or `swagger` (2.x) marker keys. A parse
// success without either marker reports no match: the caller classifies
// that as unknown instead of guessing.
func sniffSpec(content string) (core.DetectionResult, bool) {
	if strings.HasPrefix(content, "{") {
		var tree map[string]any
		if err := json.Unmarshal([]byte(content), &tree); err == nil {
			if _, ok := tree["openapi"]; ok {
				return core.DetectionResult{Format: core.FormatOpenAPIJSON, Confidence: core.ConfidenceHigh}, true
			}
			if _, ok := tree["swagger"]; ok {
				return core.DetectionResult{Format: core.FormatSwagger, Confidence: core.ConfidenceHigh}, true
			}
			return core.DetectionResult{}, false
		}
	}

	var tree map[string]any
	if err := yaml.Unmarshal([]byte(content), &tree); err == nil && tree != nil {
		if _, ok := tree["openapi"]; ok {
			return core.DetectionResult{Format: core.FormatOpenAPIYAML, Confidence: core.ConfidenceHigh}, true
		}
		if _, ok := tree["swagger"]; ok {
			return core.DetectionResult{Format: core.FormatSwagger, Confidence: core.ConfidenceHigh}, true
		}
	}
	return core.DetectionResult{}, false
}

// sniffHTML applies the HTML token heuristics. A doctype or leading <html>
// tag is a strong signal; a leading structural tag or several common tags
// scattered through the content is a medium one, raised to high when the
// filename extension agrees.
func sniffHTML(content string, hint core.Format) (core.DetectionResult, bool) {
	head := strings.ToLower(content)
	if len(head) > sniffLimit {
		head = head[:sniffLimit]
	}

	if strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html") {
		return core.DetectionResult{Format: core.FormatHTML, Confidence: core.ConfidenceHigh}, true
	}

	weak := leadingHTMLRe.MatchString(head)
	if !weak {
		lower := strings.ToLower(content)
		count := 0
		for _, tag := range commonTags {
			if strings.Contains(lower, tag) {
				count++
			}
		}
		weak = count >= 3
	}
	if !weak {
		return core.DetectionResult{}, false
	}

	confidence := core.ConfidenceMedium
	if hint == core.FormatHTML {
		confidence = core.ConfidenceHigh
	}
	return core.DetectionResult{Format: core.FormatHTML, Confidence: confidence}, true
}
