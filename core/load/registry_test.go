package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/specpipe/core"
)

func TestForBuiltinFormats(t *testing.T) {
	for _, format := range []core.Format{
		core.FormatOpenAPIJSON,
		core.FormatOpenAPIYAML,
		core.FormatSwagger,
		core.FormatHTML,
	} {
		loader, err := For(format)
		require.NoError(t, err, "%s", format)
		assert.NotNil(t, loader)
	}
}

func TestForUnsupportedFormat(t *testing.T) {
	_, err := For(core.FormatUnknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}

type stubLoader struct{}

func (stubLoader) Load(content string, opts core.Options) (any, []core.IngestError, error) {
	return content, nil, nil
}

func TestRegisterCustomFormat(t *testing.T) {
	format := core.Format("postman")
	Register(format, stubLoader{})

	loader, err := For(format)
	require.NoError(t, err)

	loaded, records, err := loader.Load("raw", core.DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "raw", loaded)
}
