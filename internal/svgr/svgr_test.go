package svgr

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalSVG = `<svg viewBox="0 0 10 10"><path d="M0 0h10v10H0z"/></svg>`

func iconOptions() Options {
	return Options{
		Icon:       true,
		TypeScript: false,
		ExportType: ExportDefault,
		Plugins:    []string{StageSVGO, StageJSX, StagePrettier},
		JSXRuntime: RuntimeAutomatic,
	}
}

func requireValidJSX(t *testing.T, code string, loader api.Loader) {
	t.Helper()
	res := api.Transform(code, api.TransformOptions{
		Loader:   loader,
		JSX:      api.JSXAutomatic,
		LogLevel: api.LogLevelSilent,
	})
	require.Empty(t, res.Errors, "generated code:\n%s", code)
}

var pixelDimension = regexp.MustCompile(`(width|height)="\d+(\.\d+)?(px)?"`)

func TestTransform_MinimalIcon(t *testing.T) {
	out, err := Transform(context.Background(), minimalSVG, iconOptions(), State{ComponentName: "SvgComponent"})
	require.NoError(t, err)

	requireValidJSX(t, out, api.LoaderJSX)
	assert.Contains(t, out, "const SvgComponent = (props) => (")
	assert.Contains(t, out, "export default SvgComponent;")
	assert.Contains(t, out, `width="1em"`)
	assert.Contains(t, out, `height="1em"`)
	assert.Contains(t, out, "{...props}")
	assert.Contains(t, out, "viewBox=")
	assert.False(t, pixelDimension.MatchString(out), "fixed pixel size in:\n%s", out)
	assert.NotContains(t, out, "import * as React")
}

func TestTransform_IconReplacesFixedDimensions(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24"><circle cx="12" cy="12" r="10"/></svg>`
	out, err := Transform(context.Background(), in, iconOptions(), State{})
	require.NoError(t, err)
	assert.NotContains(t, out, `width="24"`)
	assert.NotContains(t, out, `height="24"`)
	assert.Contains(t, out, `width="1em"`)
	assert.False(t, pixelDimension.MatchString(out))
}

func TestTransform_Idempotent(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><!-- logo --><g stroke-width="2" class="a"><path d="M1 1L23 23"/></g></svg>`
	a, err := Transform(context.Background(), in, iconOptions(), State{ComponentName: "SvgComponent"})
	require.NoError(t, err)
	b, err := Transform(context.Background(), in, iconOptions(), State{ComponentName: "SvgComponent"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotContains(t, a, "logo")
}

func TestTransform_MalformedMarkup(t *testing.T) {
	cases := map[string]string{
		"unclosed root":  `<svg viewBox="0 0 10 10"><path d="M0 0h10v10H0z"/>`,
		"not markup":     `this is not svg`,
		"wrong root":     `<html><body/></html>`,
		"stray closing":  `<svg viewBox="0 0 10 10"><path d="M0 0"></g></svg>`,
		"unquoted attr":  `<svg viewBox=0><path d="M0 0"/></svg>`,
		"bare ampersand": `<svg viewBox="0 0 10 10"><path d="M0 0" data-x="a & b"/></svg>`,
		"second root":    `<svg/><svg/>`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := Transform(context.Background(), in, iconOptions(), State{})
			require.Error(t, err)
			assert.Empty(t, out)
		})
	}
}

func TestTransform_UnknownStage(t *testing.T) {
	opts := iconOptions()
	opts.Plugins = []string{StageSVGO, "babel"}
	_, err := Transform(context.Background(), minimalSVG, opts, State{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "babel")
}

func TestTransform_InvalidOptions(t *testing.T) {
	opts := iconOptions()
	opts.ExportType = "commonjs"
	_, err := Transform(context.Background(), minimalSVG, opts, State{})
	require.Error(t, err)

	opts = iconOptions()
	opts.JSXRuntime = "preact"
	_, err = Transform(context.Background(), minimalSVG, opts, State{})
	require.Error(t, err)
}

func TestTransform_InvalidComponentName(t *testing.T) {
	_, err := Transform(context.Background(), minimalSVG, iconOptions(), State{ComponentName: "my-icon"})
	require.Error(t, err)
}

func TestTransform_DefaultComponentName(t *testing.T) {
	out, err := Transform(context.Background(), minimalSVG, iconOptions(), State{})
	require.NoError(t, err)
	assert.Contains(t, out, "export default "+DefaultComponentName+";")
}

func TestTransform_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Transform(ctx, minimalSVG, iconOptions(), State{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTransform_ClassicRuntimeNamedExport(t *testing.T) {
	opts := iconOptions()
	opts.JSXRuntime = RuntimeClassic
	opts.ExportType = ExportNamed
	out, err := Transform(context.Background(), minimalSVG, opts, State{ComponentName: "Logo"})
	require.NoError(t, err)
	requireValidJSX(t, out, api.LoaderJSX)
	assert.Contains(t, out, `import * as React from "react";`)
	assert.Contains(t, out, "export { Logo as ReactComponent };")
	assert.NotContains(t, out, "export default")
}

func TestTransform_TypeScript(t *testing.T) {
	opts := iconOptions()
	opts.TypeScript = true
	out, err := Transform(context.Background(), minimalSVG, opts, State{ComponentName: "Logo"})
	require.NoError(t, err)
	requireValidJSX(t, out, api.LoaderTSX)
	assert.Contains(t, out, `import type { SVGProps } from "react";`)
	assert.Contains(t, out, "(props: SVGProps<SVGSVGElement>) =>")
}

func TestTransform_NonIconKeepsDimensions(t *testing.T) {
	in := `<svg width="24" height="24" viewBox="0 0 24 24"><path d="M0 0"/></svg>`
	opts := iconOptions()
	opts.Icon = false
	opts.Plugins = []string{StageJSX, StagePrettier}
	out, err := Transform(context.Background(), in, opts, State{})
	require.NoError(t, err)
	assert.Contains(t, out, `width="24"`)
	assert.NotContains(t, out, IconSize)
}

func TestFormat_RejectsInvalidCode(t *testing.T) {
	_, err := format("const x = (props) => (<svg>;\n", Options{}, State{FilePath: "broken.svg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a\n\n  b\n", normalize("a  \n\n\n\tb\r\n\n"))
	assert.Equal(t, "x\n", normalize("x"))
}
