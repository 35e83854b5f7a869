// Package engine wires configuration, the transformer and the loader
// descriptors into a runnable host.
package engine

import (
	"context"

	"svgjsx/internal/host"
	"svgjsx/internal/plugin"
	"svgjsx/internal/spec"
	"svgjsx/internal/transform"

	"github.com/evanw/esbuild/pkg/api"
)

type Engine struct {
	file        spec.File
	transformer transform.Transformer
	descriptors []plugin.Descriptor
}

// Descriptors returns the descriptors in the order the host applies them.
func (e *Engine) Descriptors() []plugin.Descriptor {
	return append([]plugin.Descriptor(nil), e.descriptors...)
}

// Build runs one production build.
func (e *Engine) Build(ctx context.Context) (api.BuildResult, error) {
	cfg, err := plugin.Merge(e.descriptors...)
	if err != nil {
		return api.BuildResult{}, err
	}
	return host.Build(ctx, cfg)
}

// Run serves the entrypoints with watch mode until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	cfg, err := plugin.Merge(e.descriptors...)
	if err != nil {
		return err
	}
	return host.Serve(ctx, cfg, plugin.RuntimeHooks(e.descriptors...), e.file.HTTPServer.Port, e.file.HTTPServer.Servedir)
}

func (e *Engine) Close() error {
	return e.transformer.Close()
}
