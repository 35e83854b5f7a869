package svgr

import (
	"fmt"
	"regexp"
)

type ExportType string

const (
	ExportDefault ExportType = "default"
	ExportNamed   ExportType = "named"
)

type JSXRuntime string

const (
	// RuntimeAutomatic relies on the host injecting react/jsx-runtime.
	RuntimeAutomatic JSXRuntime = "automatic"
	// RuntimeClassic emits an explicit React namespace import.
	RuntimeClassic JSXRuntime = "classic"
)

// Stage names accepted in Options.Plugins.
const (
	StageSVGO     = "svgo"
	StageJSX      = "jsx"
	StagePrettier = "prettier"
)

const (
	DefaultComponentName = "SvgComponent"
	// NamedExport is the export name used with ExportNamed.
	NamedExport = "ReactComponent"
	// IconSize replaces root width and height in icon mode.
	IconSize = "1em"
)

// Options selects the shape of the generated component.
type Options struct {
	Icon       bool       `json:"icon" yaml:"icon"`
	TypeScript bool       `json:"typescript" yaml:"typescript"`
	ExportType ExportType `json:"export_type" yaml:"export_type"`
	Plugins    []string   `json:"plugins" yaml:"plugins"`
	JSXRuntime JSXRuntime `json:"jsx_runtime" yaml:"jsx_runtime"`
}

// State carries per-file values.
type State struct {
	ComponentName string
	FilePath      string
}

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func (o Options) Validate() error {
	switch o.ExportType {
	case "", ExportDefault, ExportNamed:
	default:
		return fmt.Errorf("svgr: unknown export type %q", o.ExportType)
	}
	switch o.JSXRuntime {
	case "", RuntimeAutomatic, RuntimeClassic:
	default:
		return fmt.Errorf("svgr: unknown jsx runtime %q", o.JSXRuntime)
	}
	return nil
}

func (s State) componentName() (string, error) {
	if s.ComponentName == "" {
		return DefaultComponentName, nil
	}
	if !identPattern.MatchString(s.ComponentName) {
		return "", fmt.Errorf("svgr: invalid component name %q", s.ComponentName)
	}
	return s.ComponentName, nil
}
