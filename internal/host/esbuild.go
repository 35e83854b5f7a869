// Package host registers loader hooks with esbuild and drives its build and
// serve modes.
package host

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"svgjsx/internal/loader"
	"svgjsx/internal/logging"
	"svgjsx/internal/plugin"

	"github.com/evanw/esbuild/pkg/api"
)

// Plugin adapts h to an esbuild plugin. Every load runs under ctx, so
// cancelling it aborts in-flight transforms. Errors from h are handed to
// esbuild unchanged.
func Plugin(ctx context.Context, h loader.Hook) api.Plugin {
	return api.Plugin{
		Name: h.Name(),
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: h.Filter().String()}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				res, err := h.Load(ctx, requestFromArgs(args))
				if err != nil {
					return api.OnLoadResult{}, err
				}
				return api.OnLoadResult{
					Contents: &res.Contents,
					Loader:   esbuildLoader(res.Dialect),
				}, nil
			})
		},
	}
}

// requestFromArgs lifts chained contents out of PluginData. Earlier plugins
// pass text forward by setting PluginData to loader.Chained.
func requestFromArgs(args api.OnLoadArgs) loader.Request {
	req := loader.Request{Path: args.Path, Namespace: args.Namespace}
	switch v := args.PluginData.(type) {
	case loader.Chained:
		s := v.Contents
		req.ChainedContents = &s
	case *loader.Chained:
		if v != nil {
			s := v.Contents
			req.ChainedContents = &s
		}
	}
	return req
}

func esbuildLoader(d loader.Dialect) api.Loader {
	switch d {
	case loader.DialectJSX:
		return api.LoaderJSX
	case loader.DialectJS:
		return api.LoaderJS
	default:
		return api.LoaderDefault
	}
}

func plugins(ctx context.Context, hooks []loader.Hook) []api.Plugin {
	out := make([]api.Plugin, 0, len(hooks))
	for _, h := range hooks {
		out = append(out, Plugin(ctx, h))
	}
	return out
}

// BuildOptions maps a merged build section onto esbuild options. Loads run
// under ctx.
func BuildOptions(ctx context.Context, cfg plugin.BuildConfig) api.BuildOptions {
	return api.BuildOptions{
		EntryPoints: cfg.Entrypoints,
		Outdir:      cfg.Outdir,
		Bundle:      true,
		Write:       cfg.Outdir != "",
		Format:      api.FormatESModule,
		Platform:    api.PlatformBrowser,
		JSX:         api.JSXAutomatic,
		External:    []string{"react", "react/*", "react-dom", "react-dom/*"},
		Plugins:     plugins(ctx, cfg.Plugins),
		LogLevel:    api.LogLevelSilent,
	}
}

var ErrNoEntrypoints = errors.New("host: no entrypoints configured")

// Build runs a production build for cfg.
func Build(ctx context.Context, cfg plugin.BuildConfig) (api.BuildResult, error) {
	if len(cfg.Entrypoints) == 0 {
		return api.BuildResult{}, ErrNoEntrypoints
	}
	if err := ctx.Err(); err != nil {
		return api.BuildResult{}, err
	}
	res := api.Build(BuildOptions(ctx, cfg))
	if len(res.Errors) > 0 {
		return res, messagesError("build", res.Errors)
	}
	for _, w := range res.Warnings {
		logging.L().Warn("esbuild warning", "text", w.Text, "location", location(w))
	}
	return res, nil
}

// Serve watches cfg's entrypoints and serves the output until ctx is done.
// runtime carries the hooks registered for runtime loads.
func Serve(ctx context.Context, cfg plugin.BuildConfig, runtime []loader.Hook, port int, servedir string) error {
	if len(cfg.Entrypoints) == 0 {
		return ErrNoEntrypoints
	}
	opts := BuildOptions(ctx, cfg)
	opts.Plugins = plugins(ctx, runtime)
	opts.Write = false
	opts.Sourcemap = api.SourceMapLinked

	bctx, cerr := api.Context(opts)
	if cerr != nil {
		return messagesError("context", cerr.Errors)
	}
	defer bctx.Dispose()

	if err := bctx.Watch(api.WatchOptions{}); err != nil {
		return fmt.Errorf("host: watch: %w", err)
	}
	srv, err := bctx.Serve(api.ServeOptions{Port: port, Servedir: servedir})
	if err != nil {
		return fmt.Errorf("host: serve: %w", err)
	}
	logging.L().Info("dev server listening", "port", srv.Port, "entrypoints", cfg.Entrypoints)

	<-ctx.Done()
	return nil
}

func messagesError(phase string, msgs []api.Message) error {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if loc := location(m); loc != "" {
			parts = append(parts, loc+": "+m.Text)
			continue
		}
		parts = append(parts, m.Text)
	}
	return fmt.Errorf("host: %s failed: %s", phase, strings.Join(parts, "; "))
}

func location(m api.Message) string {
	if m.Location == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", m.Location.File, m.Location.Line, m.Location.Column)
}
