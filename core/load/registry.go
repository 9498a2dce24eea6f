// Package load implements the loader framework: a process-wide registry
// mapping each detected format to the loader that parses it, plus the
// built-in OpenAPI/Swagger and HTML loaders.
//
// The registry is populated once at init and is safe for concurrent reads.
// Adding a format is a registration call during process setup, not a
// modification of dispatch logic; pair it with a detect.RegisterSignal so
// the new format is also recognized.
package load

import (
	"fmt"
	"sync"

	"github.com/gaurav-prasanna/specpipe/core"
)

var (
	registryMu sync.RWMutex
	registry   = map[core.Format]core.Loader{}
)

func init() {
	openapi := NewOpenAPILoader()
	Register(core.FormatOpenAPIJSON, openapi)
	Register(core.FormatOpenAPIYAML, openapi)
	Register(core.FormatSwagger, openapi)
	Register(core.FormatHTML, NewHTMLLoader())
}

// Register installs the loader for a format, replacing any previous one.
// Registration belongs in process setup; it must not race with concurrent
// ingestion.
func Register(format core.Format, loader core.Loader) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[format] = loader
}

// For returns the loader registered for a format, or an error wrapping
// core.ErrUnsupportedFormat when there is none.
func For(format core.Format) (core.Loader, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	loader, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, format)
	}
	return loader, nil
}
