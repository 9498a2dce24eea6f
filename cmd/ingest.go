// Package cmd — ingest command.
// This is the main command that orchestrates the pipeline:
// read → detect → load → normalize → render → write.
//
// It handles flag validation, renderer selection, and the file / URL
// source modes.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/specpipe/core"
	"github.com/gaurav-prasanna/specpipe/core/fetch"
	"github.com/gaurav-prasanna/specpipe/core/normalize"
	"github.com/gaurav-prasanna/specpipe/core/output"
	"github.com/gaurav-prasanna/specpipe/core/pipeline"
	"github.com/gaurav-prasanna/specpipe/core/render"
)

// Flag variables.
var (
	flagJSON         bool
	flagMarkdown     bool
	flagPDF          bool
	flagStrict       bool
	flagManualParser bool
	flagFormat       string
	flagOutputDir    string
	flagVerbose      bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file|url>",
	Short: "Ingest API documentation and render the endpoint catalog",
	Long: `Ingest reads API documentation from a local file or URL, detects its
format, loads and normalizes it into a canonical endpoint model, and
renders the result in the selected output format.

Examples:
  specpipe ingest openapi.yaml --json
  specpipe ingest https://api.example.com/openapi.json --markdown
  specpipe ingest swagger.json --pdf --output_dir ./out
  specpipe ingest spec.txt --format openapi_yaml --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	// Output format flags (mutually exclusive).
	ingestCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	ingestCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	ingestCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")

	// Pipeline behavior.
	ingestCmd.Flags().BoolVar(&flagStrict, "strict", false, "Fail on structural violations instead of degrading")
	ingestCmd.Flags().BoolVar(&flagManualParser, "manual-parser", false, "Use the built-in parser instead of kin-openapi")
	ingestCmd.Flags().StringVar(&flagFormat, "format", "", "Skip detection and force a format (openapi_json, openapi_yaml, swagger, html)")

	// Output directory.
	ingestCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")

	ingestCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log pipeline stages and warnings")
}

func runIngest(cmd *cobra.Command, args []string) error {
	source := args[0]

	if err := validateFlags(); err != nil {
		return err
	}

	logger := newLogger()

	content, err := readSource(source)
	if err != nil {
		return err
	}

	opts := core.DefaultOptions()
	opts.Strict = flagStrict
	if flagManualParser {
		opts.UseKin = false
	}

	var result core.IngestionResult
	if flagFormat != "" {
		format, err := parseFormat(flagFormat)
		if err != nil {
			return err
		}
		logger.Debug("format hint supplied, skipping detection", "format", format)
		result = pipeline.IngestAs(source, content, format, opts)
	} else {
		result = pipeline.Ingest(source, content, opts)
	}

	logger.Debug("pipeline finished",
		"format", result.Format,
		"success", result.Success,
		"records", len(result.Errors))

	for _, rec := range result.Errors {
		if rec.Severity == core.SeverityError {
			fmt.Fprintf(os.Stderr, "✗ [%s] %s\n", rec.Stage, rec.Message)
		} else {
			logger.Warn(rec.Message, "stage", rec.Stage)
		}
	}

	if !result.Success {
		return fmt.Errorf("ingestion failed for %s", source)
	}

	data, ext, err := renderResult(source, result, logger)
	if err != nil {
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	path, err := writer.Write(source, data, ext)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// renderResult turns the loaded intermediate representation into the
// selected output format.
func renderResult(source string, result core.IngestionResult, logger *slog.Logger) ([]byte, string, error) {
	switch doc := result.Loaded.(type) {
	case *core.SpecDocument:
		endpoints, records := normalize.Endpoints(doc)
		for _, rec := range records {
			logger.Warn(rec.Message, "stage", rec.Stage)
		}
		logger.Debug("normalized endpoints", "count", len(endpoints))

		meta := buildMeta(source, result.Format, doc)
		renderer := selectRenderer()
		data, err := renderer.Render(endpoints, meta)
		if err != nil {
			return nil, "", fmt.Errorf("render: %w", err)
		}
		return data, renderer.Extension(), nil

	case *core.TextDocument:
		// HTML sources carry no endpoint model; emit the cleaned document.
		switch {
		case flagMarkdown:
			return []byte(doc.Markdown), ".md", nil
		case flagJSON:
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return nil, "", fmt.Errorf("encoding document: %w", err)
			}
			return data, ".json", nil
		default:
			return nil, "", fmt.Errorf("--pdf requires an OpenAPI or Swagger source; use --json or --markdown for HTML")
		}

	default:
		return nil, "", fmt.Errorf("unexpected document type %T", result.Loaded)
	}
}

// buildMeta constructs SourceMeta from the spec's info object.
func buildMeta(source string, format core.Format, doc *core.SpecDocument) core.SourceMeta {
	meta := core.SourceMeta{
		Source:     source,
		Format:     format,
		IngestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if info, ok := doc.Root["info"].(map[string]any); ok {
		if title, ok := info["title"].(string); ok {
			meta.Title = title
		}
		if version, ok := info["version"].(string); ok {
			meta.Version = version
		}
	}
	return meta
}

// readSource loads content from a URL or a local file.
func readSource(source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		parsed, err := url.Parse(source)
		if err != nil || parsed.Host == "" {
			return "", fmt.Errorf("invalid URL: %s", source)
		}
		result, err := fetch.New().Fetch(context.Background(), source)
		if err != nil {
			return "", err
		}
		return result.Body, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", source, err)
	}
	return string(data), nil
}

// parseFormat maps the --format flag value onto a known format.
func parseFormat(value string) (core.Format, error) {
	switch core.Format(strings.ToLower(value)) {
	case core.FormatOpenAPIJSON:
		return core.FormatOpenAPIJSON, nil
	case core.FormatOpenAPIYAML:
		return core.FormatOpenAPIYAML, nil
	case core.FormatSwagger:
		return core.FormatSwagger, nil
	case core.FormatHTML:
		return core.FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected openapi_json, openapi_yaml, swagger, or html)", value)
	}
}

// validateFlags checks that exactly one output format is chosen.
func validateFlags() error {
	formatCount := 0
	if flagJSON {
		formatCount++
	}
	if flagMarkdown {
		formatCount++
	}
	if flagPDF {
		formatCount++
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --json, --markdown, or --pdf")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() core.Renderer {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer()
	case flagPDF:
		return render.NewPDFRenderer()
	default:
		return render.NewJSONRenderer()
	}
}

// newLogger builds the command logger. Warnings always surface;
// --verbose adds stage-level debug output.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
