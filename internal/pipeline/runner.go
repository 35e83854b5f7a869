// Package pipeline runs an ordered chain of named text stages.
package pipeline

import (
	"context"
	"fmt"
)

// StageFunc turns one text into the next. A stage owns its own options.
type StageFunc func(ctx context.Context, in string) (string, error)

type stage struct {
	name string
	fn   StageFunc
}

type Runner struct {
	stages []stage
}

func NewRunner() *Runner { return &Runner{} }

// AddStage appends a stage; stages run in insertion order.
func (r *Runner) AddStage(name string, fn StageFunc) {
	r.stages = append(r.stages, stage{name: name, fn: fn})
}

// Stages lists stage names in execution order.
func (r *Runner) Stages() []string {
	out := make([]string, 0, len(r.stages))
	for _, s := range r.stages {
		out = append(out, s.name)
	}
	return out
}

// Run feeds in through every stage. The first stage error is returned as is
// and later stages do not run.
func (r *Runner) Run(ctx context.Context, in string) (string, error) {
	out := in
	for _, s := range r.stages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		next, err := s.fn(ctx, out)
		if err != nil {
			return "", err
		}
		out = next
	}
	return out, nil
}

/*──────── registry ───────*/

// Factory builds a stage from a caller supplied configuration value.
type Factory[C any] func(cfg C) StageFunc

// Registry maps stage names to factories.
type Registry[C any] struct {
	reg map[string]Factory[C]
}

func NewRegistry[C any]() *Registry[C] {
	return &Registry[C]{reg: map[string]Factory[C]{}}
}

func (r *Registry[C]) Register(name string, f Factory[C]) { r.reg[name] = f }

// Compile builds a Runner with the named stages in the given order.
func (r *Registry[C]) Compile(names []string, cfg C) (*Runner, error) {
	run := NewRunner()
	for _, name := range names {
		f, ok := r.reg[name]
		if !ok {
			return nil, fmt.Errorf("pipeline: unknown stage %q", name)
		}
		run.AddStage(name, f(cfg))
	}
	return run, nil
}
