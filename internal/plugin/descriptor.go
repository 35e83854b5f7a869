// Package plugin builds the descriptor a host configuration loads.
package plugin

import (
	"svgjsx/internal/loader"
	"svgjsx/internal/meta"

	"dario.cat/mergo"
)

// BuildConfig is the part of a descriptor applied to production builds.
type BuildConfig struct {
	Entrypoints []string      `yaml:"entrypoints,omitempty"`
	Outdir      string        `yaml:"outdir,omitempty"`
	Plugins     []loader.Hook `yaml:"-"`
}

type Build struct {
	BuildConfig BuildConfig `yaml:"build_config"`
}

// Descriptor is what the host reads at configuration time.
type Descriptor struct {
	Name           string        `yaml:"name"`
	Version        string        `yaml:"version"`
	RuntimePlugins []loader.Hook `yaml:"-"`
	Build          Build         `yaml:"build"`
}

// New returns the loader descriptor. The same hook value backs the runtime
// slot and the build slot.
func New(pkg meta.Package, hook loader.Hook) Descriptor {
	return Descriptor{
		Name:           pkg.Name,
		Version:        pkg.Version,
		RuntimePlugins: []loader.Hook{hook},
		Build: Build{
			BuildConfig: BuildConfig{
				Plugins: []loader.Hook{hook},
			},
		},
	}
}

// Merge folds the build sections of descs in order. Slices are
// concatenated; for scalars the first non-empty value wins.
func Merge(descs ...Descriptor) (BuildConfig, error) {
	var out BuildConfig
	for _, d := range descs {
		src := d.Build.BuildConfig
		src.Entrypoints = append([]string(nil), src.Entrypoints...)
		src.Plugins = append([]loader.Hook(nil), src.Plugins...)
		if err := mergo.Merge(&out, src, mergo.WithAppendSlice); err != nil {
			return BuildConfig{}, err
		}
	}
	return out, nil
}

// RuntimeHooks concatenates the runtime hooks of descs in order.
func RuntimeHooks(descs ...Descriptor) []loader.Hook {
	var out []loader.Hook
	for _, d := range descs {
		out = append(out, d.RuntimePlugins...)
	}
	return out
}
