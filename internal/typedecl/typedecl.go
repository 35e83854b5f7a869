// Package typedecl ships the TypeScript declarations that let editors type
// `import Logo from "./logo.svg"`.
package typedecl

import (
	_ "embed"
	"path/filepath"

	"github.com/spf13/afero"
)

const FileName = "svgjsx-custom-type.d.ts"

//go:embed svgjsx-custom-type.d.ts
var declarations []byte

func Contents() []byte { return append([]byte(nil), declarations...) }

// Write creates dir if needed and writes the declarations file into it,
// returning the written path.
func Write(fs afero.Fs, dir string) (string, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	if err := afero.WriteFile(fs, path, declarations, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
