package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write("specs/petstore.yaml", []byte("report"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "petstore.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report", string(data))
}

func TestWriterCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir)
	require.NoError(t, err)

	_, err = w.Write("spec.json", []byte("{}"), ".json")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "spec.json"))
	assert.NoError(t, err)
}

func TestFilenameFromSource(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"petstore.yaml", "petstore"},
		{"./specs/api v2.json", "api_v2"},
		{"https://api.example.com/openapi.yaml", "api_example_com_openapi_yaml"},
		{"https://example.com/", "example_com"},
		{"http://not a url %%", "http___not_a_url___"},
		{"", "spec"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, filenameFromSource(tt.source), "%q", tt.source)
	}
}
