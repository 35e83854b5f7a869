package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"svgjsx/internal/config"
	"svgjsx/internal/loader"
	"svgjsx/internal/logging"
	"svgjsx/internal/meta"
	"svgjsx/internal/plugin"
	"svgjsx/internal/spec"
	"svgjsx/internal/telemetry"
	"svgjsx/internal/transform"

	"github.com/spf13/afero"
)

// Config is what Bootstrap needs to wire an Engine.
type Config struct {
	File spec.File
	// Fs backs SVG reads. nil reads from the operating system.
	Fs afero.Fs
	// Observer receives load metrics. nil uses telemetry.Default.
	Observer loader.Observer
}

const healthTimeout = 5 * time.Second

func Bootstrap(ctx context.Context, cfg Config) (*Engine, error) {
	pkg, err := meta.Load()
	if err != nil {
		return nil, err
	}

	// 1. transformer
	t, err := newTransformer(ctx, cfg.File.Transformer, pkg)
	if err != nil {
		return nil, fmt.Errorf("transformer: %w", err)
	}

	// 2. interceptor, shared by the runtime and build slots
	obs := cfg.Observer
	if obs == nil {
		obs = telemetry.Default
	}
	hook := loader.Instrument(loader.New(cfg.Fs, t), obs, logging.L())

	// 3. metrics
	if cfg.File.MetricsPort > 0 {
		telemetry.Expose(cfg.File.MetricsPort)
	}

	return &Engine{
		file:        cfg.File,
		transformer: t,
		descriptors: []plugin.Descriptor{entrypoints(cfg.File.Build, pkg.Version), plugin.New(pkg, hook)},
	}, nil
}

// entrypoints is the descriptor contributing the configured build inputs.
func entrypoints(b spec.BuildSection, version string) plugin.Descriptor {
	return plugin.Descriptor{
		Name:    "entrypoints",
		Version: version,
		Build: plugin.Build{BuildConfig: plugin.BuildConfig{
			Entrypoints: append([]string(nil), b.Entrypoints...),
			Outdir:      b.Outdir,
		}},
	}
}

func newTransformer(ctx context.Context, ts spec.TransformerSpec, pkg meta.Package) (transform.Transformer, error) {
	switch ts.Type {
	case "", config.TransformerInProc:
		return transform.NewInProcessClient(pkg), nil
	case config.TransformerGRPC:
		c, err := transform.NewGRPCClient(ts.Address)
		if err != nil {
			return nil, err
		}
		hctx, cancel := context.WithTimeout(ctx, healthTimeout)
		defer cancel()
		h, err := c.Health(hctx)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("health %s: %w", ts.Address, err)
		}
		if !h.OK {
			_ = c.Close()
			return nil, fmt.Errorf("health %s: %s", ts.Address, h.Details)
		}
		md, err := c.Metadata(hctx)
		if err == nil {
			logging.L().Info("remote transformer connected", "addr", ts.Address, "name", md.Name, "version", md.Version, "stages", md.Stages)
		}
		return c, nil
	default:
		return nil, errors.New("unknown transformer type " + ts.Type)
	}
}
