package main

import (
	"fmt"

	"svgjsx/internal/loader"
	"svgjsx/internal/logging"
	"svgjsx/internal/meta"
	"svgjsx/internal/plugin"
	"svgjsx/internal/transform"
	"svgjsx/internal/transport"
	"svgjsx/internal/typedecl"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newBuildCommand(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Run a production build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, cfg, err := bootstrap(cmd.Context(), load)
			if err != nil {
				return err
			}
			defer e.Close()

			res, err := e.Build(cmd.Context())
			if err != nil {
				return err
			}
			for _, f := range res.OutputFiles {
				fmt.Fprintln(cmd.OutOrStdout(), f.Path)
			}
			logging.L().Info("build finished", "outdir", cfg.Build.Outdir, "files", len(res.OutputFiles))
			return nil
		},
	}
}

func newServeCommand(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the entrypoints and rebuild on change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, _, err := bootstrap(cmd.Context(), load)
			if err != nil {
				return err
			}
			defer e.Close()
			return e.Run(cmd.Context())
		},
	}
}

// descriptorView is the printable form of a descriptor; hooks are shown by
// name.
type descriptorView struct {
	plugin.Descriptor `yaml:",inline"`
	RuntimePlugins    []string `yaml:"runtime_plugins,omitempty"`
	BuildPlugins      []string `yaml:"build_plugins,omitempty"`
}

func hookNames(hooks []loader.Hook) []string {
	var out []string
	for _, h := range hooks {
		out = append(out, h.Name())
	}
	return out
}

func newDescribeCommand(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the plugin descriptors the host is configured with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, _, err := bootstrap(cmd.Context(), load)
			if err != nil {
				return err
			}
			defer e.Close()

			var views []descriptorView
			for _, d := range e.Descriptors() {
				views = append(views, descriptorView{
					Descriptor:     d,
					RuntimePlugins: hookNames(d.RuntimePlugins),
					BuildPlugins:   hookNames(d.Build.BuildConfig.Plugins),
				})
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(views); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newTypesCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Write TypeScript declarations for .svg and .css imports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := typedecl.Write(afero.NewOsFs(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".svgjsx", "directory to write the declarations into")
	return cmd
}

func newTransformerCommand() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "transformer",
		Short: "Serve the SVG transformer over gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pkg, err := meta.Load()
			if err != nil {
				return err
			}
			srv, err := transport.StartServer(listen, transform.NewInProcessClient(pkg))
			if err != nil {
				return fmt.Errorf("transformer: failed to listen: %w", err)
			}
			go func() {
				<-cmd.Context().Done()
				srv.Stop()
			}()
			logging.L().Info("transformer listening", "addr", srv.Addr().String())
			if err := srv.Serve(); err != nil {
				return fmt.Errorf("transformer: failed to serve: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":50051", "address to listen on")
	return cmd
}
