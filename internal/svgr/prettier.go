package svgr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// ErrSyntax marks generated code that does not parse.
var ErrSyntax = errors.New("svgr: generated code has syntax errors")

// format checks the module with esbuild and normalizes its layout. esbuild
// output is only used for validation: reprinting would collapse the JSX onto
// one line and strip TypeScript types.
func format(code string, opts Options, state State) (string, error) {
	loader := api.LoaderJSX
	if opts.TypeScript {
		loader = api.LoaderTSX
	}
	res := api.Transform(code, api.TransformOptions{
		Loader:     loader,
		JSX:        api.JSXPreserve,
		Sourcefile: state.FilePath,
		LogLevel:   api.LogLevelSilent,
	})
	if len(res.Errors) > 0 {
		msg := res.Errors[0]
		if msg.Location != nil {
			return "", fmt.Errorf("%w: %s (%d:%d)", ErrSyntax, msg.Text, msg.Location.Line, msg.Location.Column)
		}
		return "", fmt.Errorf("%w: %s", ErrSyntax, msg.Text)
	}
	return normalize(code), nil
}

func normalize(code string) string {
	lines := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, l := range lines {
		l = strings.TrimRight(strings.ReplaceAll(l, "\t", "  "), " ")
		if l == "" {
			blank++
			if blank > 1 || len(out) == 0 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, l)
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
}
