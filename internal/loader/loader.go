// Package loader intercepts .svg imports and returns them as JSX modules.
//
// An Interceptor is built once and shared by every host phase that loads
// modules, so runtime loads and production builds see the same options.
package loader

import (
	"context"
	"regexp"

	"svgjsx/internal/svgr"
	"svgjsx/internal/transform"

	"github.com/spf13/afero"
)

// Filter matches the paths the interceptor handles. The match is a
// case-sensitive suffix match.
const Filter = `\.svg$`

const Name = "svg-to-jsx-loader"

// Dialect tells the host which grammar to compile returned contents with.
type Dialect string

const (
	DialectJS  Dialect = "js"
	DialectJSX Dialect = "jsx"
)

// Request is one host load. ChainedContents is set when an earlier stage
// already produced the text for Path.
type Request struct {
	Path            string
	Namespace       string
	ChainedContents *string
}

// Chained is the PluginData value an earlier host plugin sets to hand text
// forward to the interceptor.
type Chained struct {
	Contents string
}

type Result struct {
	Contents string
	Dialect  Dialect
}

// Hook is what a host registers in its load slots.
type Hook interface {
	Name() string
	Filter() *regexp.Regexp
	Load(ctx context.Context, req Request) (Result, error)
}

// TransformOptions are passed to the transformer for every load.
func TransformOptions() svgr.Options {
	return svgr.Options{
		Icon:       true,
		TypeScript: false,
		ExportType: svgr.ExportDefault,
		Plugins:    []string{svgr.StageSVGO, svgr.StageJSX, svgr.StagePrettier},
		JSXRuntime: svgr.RuntimeAutomatic,
	}
}

// ComponentName is given to every generated component.
const ComponentName = "SvgComponent"

var filter = regexp.MustCompile(Filter)

type Interceptor struct {
	fs          afero.Fs
	transformer transform.Transformer
}

// New returns an Interceptor reading files from fs. A nil fs reads from the
// operating system.
func New(fs afero.Fs, t transform.Transformer) *Interceptor {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Interceptor{fs: fs, transformer: t}
}

func (i *Interceptor) Name() string { return Name }

func (i *Interceptor) Filter() *regexp.Regexp { return filter }

// Match reports whether path is handled by the interceptor.
func Match(path string) bool { return filter.MatchString(path) }

// Load reads the source for req and transforms it. Errors from storage and
// from the transformer are returned unchanged.
func (i *Interceptor) Load(ctx context.Context, req Request) (Result, error) {
	var src string
	if req.ChainedContents != nil {
		src = *req.ChainedContents
	} else {
		raw, err := afero.ReadFile(i.fs, req.Path)
		if err != nil {
			return Result{}, err
		}
		src = string(raw)
	}

	code, err := i.transformer.Transform(ctx, transform.Request{
		Source:  src,
		Options: TransformOptions(),
		State:   svgr.State{ComponentName: ComponentName, FilePath: req.Path},
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Contents: code, Dialect: DialectJSX}, nil
}
