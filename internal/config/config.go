package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"svgjsx/internal/spec"
)

const (
	SupportedSchema = "v1"

	EnvPrefix = "SVGJSX__"
	envDelim  = "__"
)

const (
	TransformerInProc = "inproc"
	TransformerGRPC   = "grpc"
)

// Load merges the YAML file at path (if present) with env-vars
// (prefix `SVGJSX__`, delimiter `__`), validates schema_version and applies
// defaults. Relative paths are resolved against the directory of path.
func Load(path string) (spec.File, error) {
	var cfg spec.File
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, envDelim, envKey), nil); err != nil {
		return cfg, err
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = SupportedSchema
	}
	if cfg.SchemaVersion != SupportedSchema {
		return cfg, fmt.Errorf("config schema_version %q not supported (want %q)", cfg.SchemaVersion, SupportedSchema)
	}
	applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	if path != "" {
		resolvePaths(&cfg, filepath.Dir(path))
	}
	return cfg, nil
}

// envKey maps SVGJSX__HTTP_SERVER__PORT to http_server__port; the provider
// splits the rest on the delimiter.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func applyDefaults(c *spec.File) {
	if c.HTTPServer.Port == 0 {
		c.HTTPServer.Port = 8000
	}
	if c.Build.Outdir == "" {
		c.Build.Outdir = "dist"
	}
	if c.Transformer.Type == "" {
		c.Transformer.Type = TransformerInProc
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func validate(c spec.File) error {
	switch c.Transformer.Type {
	case TransformerInProc:
	case TransformerGRPC:
		if c.Transformer.Address == "" {
			return errors.New("config: transformer.address is required for grpc transformers")
		}
	default:
		return fmt.Errorf("config: unknown transformer type %q", c.Transformer.Type)
	}
	if c.HTTPServer.Port < 0 || c.HTTPServer.Port > 65535 {
		return fmt.Errorf("config: http_server.port %d out of range", c.HTTPServer.Port)
	}
	return nil
}

func resolvePaths(c *spec.File, dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i, e := range c.Build.Entrypoints {
		c.Build.Entrypoints[i] = abs(e)
	}
	c.Build.Outdir = abs(c.Build.Outdir)
	c.HTTPServer.Servedir = abs(c.HTTPServer.Servedir)
}
