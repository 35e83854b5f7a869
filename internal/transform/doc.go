// Package transform defines the loader-side client interface for SVG
// transformers. A transformer runs in process or behind a gRPC server; the
// loader sees the same Transformer either way.
package transform
