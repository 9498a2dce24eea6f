package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/specpipe/core"
)

const petstoreJSON = `{
  "openapi": "3.0.0",
  "info": {"title": "Petstore", "version": "1.0.0"},
  "paths": {
    "/pets": {
      "get": {"operationId": "listPets", "responses": {"200": {"description": "ok"}}}
    }
  }
}`

const petstoreYAML = `openapi: 3.0.0
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        200:
          description: ok
`

func manualOpts() core.Options {
	return core.Options{Strict: false, UseKin: false}
}

func TestOpenAPILoaderJSON(t *testing.T) {
	loaded, records, err := NewOpenAPILoader().Load(petstoreJSON, manualOpts())
	require.NoError(t, err)
	assert.Empty(t, records)

	doc, ok := loaded.(*core.SpecDocument)
	require.True(t, ok)
	assert.Equal(t, core.SpecVersionOpenAPI3, doc.Version)

	info := doc.Root["info"].(map[string]any)
	assert.Equal(t, "Petstore", info["title"])
}

func TestOpenAPILoaderYAML(t *testing.T) {
	loaded, records, err := NewOpenAPILoader().Load(petstoreYAML, manualOpts())
	require.NoError(t, err)
	assert.Empty(t, records)

	doc := loaded.(*core.SpecDocument)
	assert.Equal(t, core.SpecVersionOpenAPI3, doc.Version)

	// YAML integer keys (the bare 200 status) must come out as strings.
	paths := doc.Root["paths"].(map[string]any)
	get := paths["/pets"].(map[string]any)["get"].(map[string]any)
	responses := get["responses"].(map[string]any)
	_, ok := responses["200"]
	assert.True(t, ok, "status keys are stringified")
}

func TestOpenAPILoaderYAMLMatchesJSON(t *testing.T) {
	fromJSON, _, err := NewOpenAPILoader().Load(petstoreJSON, manualOpts())
	require.NoError(t, err)
	fromYAML, _, err := NewOpenAPILoader().Load(petstoreYAML, manualOpts())
	require.NoError(t, err)

	assert.Equal(t, fromJSON.(*core.SpecDocument).Root, fromYAML.(*core.SpecDocument).Root)
}

func TestOpenAPILoaderSwaggerVersion(t *testing.T) {
	content := `{"swagger": "2.0", "info": {"title": "t", "version": "1"}, "paths": {}}`
	loaded, _, err := NewOpenAPILoader().Load(content, manualOpts())
	require.NoError(t, err)
	assert.Equal(t, core.SpecVersionSwagger2, loaded.(*core.SpecDocument).Version)
}

func TestOpenAPILoaderInvalidSyntax(t *testing.T) {
	loaded, records, err := NewOpenAPILoader().Load(`{"openapi": `, manualOpts())
	require.NoError(t, err, "resilient mode reports, never fails")
	assert.Nil(t, loaded)
	require.Len(t, records, 1)
	assert.Equal(t, core.SeverityError, records[0].Severity)
	assert.Equal(t, core.StageLoad, records[0].Stage)
}

func TestOpenAPILoaderInvalidSyntaxStrict(t *testing.T) {
	opts := manualOpts()
	opts.Strict = true
	loaded, records, err := NewOpenAPILoader().Load(`{"openapi": `, opts)
	require.Error(t, err)
	assert.Nil(t, loaded)
	require.Len(t, records, 1)
	assert.Equal(t, core.SeverityError, records[0].Severity)
}

func TestOpenAPILoaderMissingVersionField(t *testing.T) {
	content := `{"info": {"title": "t", "version": "1"}, "paths": {}}`

	loaded, records, err := NewOpenAPILoader().Load(content, manualOpts())
	require.NoError(t, err)
	doc := loaded.(*core.SpecDocument)
	assert.Equal(t, core.SpecVersionOpenAPI3, doc.Version, "assumed 3.x")
	require.Len(t, records, 1)
	assert.Equal(t, core.SeverityWarning, records[0].Severity)

	opts := manualOpts()
	opts.Strict = true
	loaded, records, err = NewOpenAPILoader().Load(content, opts)
	require.Error(t, err)
	assert.Nil(t, loaded)
	require.NotEmpty(t, records)
	assert.Equal(t, core.SeverityError, records[0].Severity)
}

func TestOpenAPILoaderMissingInfo(t *testing.T) {
	content := `{"openapi": "3.0.0", "paths": {}}`

	loaded, records, err := NewOpenAPILoader().Load(content, manualOpts())
	require.NoError(t, err)
	doc := loaded.(*core.SpecDocument)

	info := doc.Root["info"].(map[string]any)
	assert.Equal(t, "Unknown API", info["title"])
	assert.Equal(t, "1.0.0", info["version"])
	require.Len(t, records, 1)
	assert.Equal(t, core.SeverityWarning, records[0].Severity)

	opts := manualOpts()
	opts.Strict = true
	loaded, _, err = NewOpenAPILoader().Load(content, opts)
	require.Error(t, err)
	assert.Nil(t, loaded)
}

func TestOpenAPILoaderMissingInfoTitleStrict(t *testing.T) {
	opts := manualOpts()
	opts.Strict = true

	_, _, err := NewOpenAPILoader().Load(`{"openapi": "3.0.0", "info": {"version": "1"}, "paths": {}}`, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")

	_, _, err = NewOpenAPILoader().Load(`{"openapi": "3.0.0", "info": {"title": "t"}, "paths": {}}`, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestOpenAPILoaderMissingPaths(t *testing.T) {
	content := `{"openapi": "3.0.0", "info": {"title": "t", "version": "1"}}`

	loaded, records, err := NewOpenAPILoader().Load(content, manualOpts())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, records, 1)
	assert.Equal(t, core.SeverityWarning, records[0].Severity)
	assert.Contains(t, records[0].Message, "paths")

	opts := manualOpts()
	opts.Strict = true
	loaded, _, err = NewOpenAPILoader().Load(content, opts)
	require.Error(t, err)
	assert.Nil(t, loaded)
}

func TestOpenAPILoaderKinStrategy(t *testing.T) {
	opts := core.DefaultOptions()
	require.True(t, opts.UseKin)

	loaded, records, err := NewOpenAPILoader().Load(petstoreJSON, opts)
	require.NoError(t, err)
	assert.Empty(t, records)

	doc := loaded.(*core.SpecDocument)
	assert.Equal(t, core.SpecVersionOpenAPI3, doc.Version)

	// Both strategies yield the same JSON-shaped tree for the fields the
	// normalizer reads.
	manual, _, err := NewOpenAPILoader().Load(petstoreJSON, manualOpts())
	require.NoError(t, err)
	manualDoc := manual.(*core.SpecDocument)

	assert.Equal(t, manualDoc.Root["info"], doc.Root["info"])
	kinPaths := doc.Root["paths"].(map[string]any)
	manualPaths := manualDoc.Root["paths"].(map[string]any)
	require.Contains(t, kinPaths, "/pets")
	kinGet := kinPaths["/pets"].(map[string]any)["get"].(map[string]any)
	manualGet := manualPaths["/pets"].(map[string]any)["get"].(map[string]any)
	assert.Equal(t, manualGet["operationId"], kinGet["operationId"])
}

func TestOpenAPILoaderKinFallback(t *testing.T) {
	// Structurally odd but parseable 3.x content: kin rejects it, the
	// manual parser takes over with a warning.
	content := `{"openapi": "3.0.0", "info": {"title": "t", "version": "1"}, "paths": {"/x": {"get": {}}}}`

	opts := core.DefaultOptions()
	loaded, records, err := NewOpenAPILoader().Load(content, opts)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	doc := loaded.(*core.SpecDocument)
	paths := doc.Root["paths"].(map[string]any)
	assert.Contains(t, paths, "/x")
	for _, rec := range records {
		assert.Equal(t, core.SeverityWarning, rec.Severity)
	}
}
