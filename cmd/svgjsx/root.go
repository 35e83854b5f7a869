package main

import (
	"context"
	"fmt"
	"os"

	"svgjsx/internal/config"
	"svgjsx/internal/engine"
	"svgjsx/internal/logging"
	"svgjsx/internal/meta"
	"svgjsx/internal/spec"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var cfgPath string

	version := "dev"
	if pkg, err := meta.Load(); err == nil {
		version = pkg.Version
	}

	rootCmd := &cobra.Command{
		Use:   "svgjsx",
		Short: "Bundle projects that import .svg files as React components",
		Long: `svgjsx runs esbuild with a loader that turns every imported .svg file
into a JSX component module sized in em units.

Configuration is read from a YAML file and SVGJSX__ environment variables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "svgjsx.yml", "path to the configuration file")

	load := func() (spec.File, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if os.Getenv("SVGJSX_LOG_LEVEL") == "" {
			logging.Configure(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
		}
		return cfg, nil
	}

	rootCmd.AddCommand(
		newBuildCommand(load),
		newServeCommand(load),
		newDescribeCommand(load),
		newTypesCommand(),
		newTransformerCommand(),
	)
	return rootCmd
}

type loadFunc func() (spec.File, error)

func bootstrap(ctx context.Context, load loadFunc) (*engine.Engine, spec.File, error) {
	cfg, err := load()
	if err != nil {
		return nil, cfg, err
	}
	e, err := engine.Bootstrap(ctx, engine.Config{File: cfg})
	if err != nil {
		return nil, cfg, fmt.Errorf("bootstrap: %w", err)
	}
	return e, cfg, nil
}
