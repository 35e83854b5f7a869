package svgr

import (
	"context"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
)

const (
	svgMime = "image/svg+xml"
	cssMime = "text/css"
)

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(cssMime, css.Minify)
	m.Add(svgMime, &svg.Minifier{})
	return m
}

// optimize strips comments and redundant markup. Metadata elements and
// editor namespaces are dropped later when the tree is built.
//
// The minifier repairs broken markup silently, so well-formedness is checked
// on the input first.
func optimize(_ context.Context, in string) (string, error) {
	if _, err := parseSVG(in); err != nil {
		return "", err
	}
	return minifier.String(svgMime, in)
}
