// Package spec holds the host configuration file types.
package spec

// TransformerSpec selects where SVG transformation runs.
type TransformerSpec struct {
	Type    string `koanf:"type" yaml:"type"`       // "inproc" or "grpc"
	Address string `koanf:"address" yaml:"address"` // e.g. "localhost:50051"
}

type HTTPServer struct {
	Port     int    `koanf:"port" yaml:"port"`
	Servedir string `koanf:"servedir" yaml:"servedir"`
}

type BuildSection struct {
	Entrypoints []string `koanf:"entrypoints" yaml:"entrypoints"`
	Outdir      string   `koanf:"outdir" yaml:"outdir"`
}

type LogSection struct {
	Level string `koanf:"level" yaml:"level"`
	JSON  bool   `koanf:"json" yaml:"json"`
}

type File struct {
	SchemaVersion string `koanf:"schema_version" yaml:"schema_version"`

	HTTPServer  HTTPServer `koanf:"http_server" yaml:"http_server"`
	MetricsPort int        `koanf:"metrics_port" yaml:"metrics_port"` // 0 disables /metrics

	Build       BuildSection    `koanf:"build" yaml:"build"`
	Transformer TransformerSpec `koanf:"transformer" yaml:"transformer"`
	Log         LogSection      `koanf:"log" yaml:"log"`
}
