// Package svgr turns SVG markup into React component source.
//
// Transform runs the stages named in Options.Plugins in order. The usual
// chain is svgo (markup cleanup), jsx (component generation) and prettier
// (syntax check and layout). Output depends only on the input text, the
// options and the state, so repeated calls yield identical code.
package svgr

import (
	"context"

	"svgjsx/internal/pipeline"
)

type config struct {
	opts  Options
	state State
}

var stages = pipeline.NewRegistry[config]()

func init() {
	stages.Register(StageSVGO, func(config) pipeline.StageFunc { return optimize })
	stages.Register(StageJSX, func(c config) pipeline.StageFunc {
		return func(_ context.Context, in string) (string, error) { return generate(in, c.opts, c.state) }
	})
	stages.Register(StagePrettier, func(c config) pipeline.StageFunc {
		return func(_ context.Context, in string) (string, error) { return format(in, c.opts, c.state) }
	})
}

// Transform converts svg into component source.
func Transform(ctx context.Context, svg string, opts Options, state State) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	run, err := stages.Compile(opts.Plugins, config{opts: opts, state: state})
	if err != nil {
		return "", err
	}
	return run.Run(ctx, svg)
}
