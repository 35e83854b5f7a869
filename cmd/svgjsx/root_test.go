package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"svgjsx/internal/typedecl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"logo.svg":   `<svg viewBox="0 0 10 10"><rect width="10" height="10"/></svg>`,
		"index.jsx":  "import Logo from \"./logo.svg\";\nexport default () => <Logo />;\n",
		"svgjsx.yml": "schema_version: v1\nbuild:\n  entrypoints: [index.jsx]\n  outdir: dist\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return filepath.Join(dir, "svgjsx.yml")
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe", "--config", writeProject(t))
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "entrypoints", got[0]["name"])
	assert.Equal(t, "svg-to-jsx-loader", got[1]["name"])
	assert.Equal(t, []any{"svg-to-jsx-loader"}, got[1]["runtime_plugins"])
	assert.Equal(t, []any{"svg-to-jsx-loader"}, got[1]["build_plugins"])
}

func TestBuild(t *testing.T) {
	cfg := writeProject(t)
	out, err := run(t, "build", "--config", cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "index.js"))

	_, err = os.Stat(filepath.Join(filepath.Dir(cfg), "dist", "index.js"))
	assert.NoError(t, err)
}

func TestBuild_BadSchema(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "svgjsx.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("schema_version: v2\n"), 0o644))
	_, err := run(t, "build", "--config", cfg)
	assert.ErrorContains(t, err, "schema_version")
}

func TestTypes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "types")
	out, err := run(t, "types", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, typedecl.FileName), strings.TrimSpace(out))

	got, err := os.ReadFile(filepath.Join(dir, typedecl.FileName))
	require.NoError(t, err)
	assert.Equal(t, typedecl.Contents(), got)
}
