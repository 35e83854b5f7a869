package svgr

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNoSVGRoot = errors.New("svgr: input has no <svg> root element")

type element struct {
	name     xml.Name
	attrs    []xml.Attr
	children []any // *element or string
}

// dropped elements carry no rendering information.
var droppedElements = map[string]bool{
	"metadata": true,
}

// parseSVG builds an element tree. Comments, processing instructions and
// directives are discarded; any structural error aborts the parse.
func parseSVG(src string) (*element, error) {
	d := xml.NewDecoder(strings.NewReader(src))
	d.Strict = true

	var (
		root  *element
		stack []*element
	)
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name, attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("svgr: unexpected second root element <%s>", qualified(t.Name))
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 || stack[len(stack)-1].name != t.Name {
				return nil, fmt.Errorf("svgr: unexpected closing tag </%s> (line %d)", qualified(t.Name), line(d))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fmt.Errorf("svgr: text outside root element (line %d)", line(d))
				}
				continue
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, string(t))
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("svgr: unclosed element <%s>", qualified(stack[len(stack)-1].name))
	}
	if root == nil || root.name.Space != "" || root.name.Local != "svg" {
		return nil, ErrNoSVGRoot
	}
	return root, nil
}

func line(d *xml.Decoder) int {
	l, _ := d.InputPos()
	return l
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// generate renders the component module for src.
func generate(src string, opts Options, state State) (string, error) {
	name, err := state.componentName()
	if err != nil {
		return "", err
	}
	root, err := parseSVG(src)
	if err != nil {
		return "", err
	}
	if opts.Icon {
		setIconDimensions(root)
	}

	var b strings.Builder
	if opts.JSXRuntime == RuntimeClassic {
		b.WriteString("import * as React from \"react\";\n")
	}
	props := "props"
	if opts.TypeScript {
		b.WriteString("import type { SVGProps } from \"react\";\n")
		props = "props: SVGProps<SVGSVGElement>"
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "const %s = (%s) => (\n", name, props)
	if err := writeElement(&b, root, 1, true); err != nil {
		return "", err
	}
	b.WriteString(");\n")
	if opts.ExportType == ExportNamed {
		fmt.Fprintf(&b, "export { %s as %s };\n", name, NamedExport)
	} else {
		fmt.Fprintf(&b, "export default %s;\n", name)
	}
	return b.String(), nil
}

// setIconDimensions sizes the root in em so it scales with font size.
func setIconDimensions(root *element) {
	seen := map[string]bool{}
	for i, a := range root.attrs {
		if a.Name.Space == "" && (a.Name.Local == "width" || a.Name.Local == "height") {
			root.attrs[i].Value = IconSize
			seen[a.Name.Local] = true
		}
	}
	for _, dim := range []string{"width", "height"} {
		if !seen[dim] {
			root.attrs = append(root.attrs, xml.Attr{Name: xml.Name{Local: dim}, Value: IconSize})
		}
	}
}

func writeElement(b *strings.Builder, el *element, depth int, root bool) error {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(el.name.Local)
	for _, a := range el.attrs {
		name, ok := jsxAttrName(a.Name)
		if !ok {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteByte('=')
		if name == "style" {
			b.WriteString(styleObject(a.Value))
			continue
		}
		b.WriteString(attrValue(a.Value))
	}
	if root {
		b.WriteString(" {...props}")
	}

	children := renderable(el)
	if len(children) == 0 {
		b.WriteString(" />\n")
		return nil
	}
	b.WriteString(">\n")
	raw := el.name.Local == "style" || el.name.Local == "script"
	for _, c := range children {
		switch v := c.(type) {
		case *element:
			if err := writeElement(b, v, depth+1, false); err != nil {
				return err
			}
		case string:
			b.WriteString(indent)
			b.WriteString("  ")
			b.WriteString(textChild(v, raw))
			b.WriteByte('\n')
		}
	}
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(el.name.Local)
	b.WriteString(">\n")
	return nil
}

// renderable drops editor-only elements and whitespace-only text.
func renderable(el *element) []any {
	var out []any
	raw := el.name.Local == "style" || el.name.Local == "script"
	for _, c := range el.children {
		switch v := c.(type) {
		case *element:
			if v.name.Space != "" || droppedElements[v.name.Local] {
				continue
			}
			out = append(out, v)
		case string:
			if raw {
				if strings.TrimSpace(v) != "" {
					out = append(out, v)
				}
				continue
			}
			if t := collapseSpace(v); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func textChild(s string, raw bool) string {
	if raw || strings.ContainsAny(s, "{}<>&") {
		return "{" + jsString(s) + "}"
	}
	return s
}

func attrValue(v string) string {
	if strings.ContainsAny(v, "\"\\\n\t&") {
		return "{" + jsString(v) + "}"
	}
	return `"` + v + `"`
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

var attrRenames = map[string]string{
	"class": "className",
	"for":   "htmlFor",
}

// jsxAttrName maps an XML attribute to its React prop name. Attributes in
// namespaces React does not know are dropped.
func jsxAttrName(n xml.Name) (string, bool) {
	switch n.Space {
	case "":
	case "xmlns":
		if n.Local == "xlink" {
			return "xmlnsXlink", true
		}
		return "", false
	case "xlink", "xml":
		return n.Space + upperFirst(n.Local), true
	default:
		return "", false
	}
	if r, ok := attrRenames[n.Local]; ok {
		return r, true
	}
	if strings.HasPrefix(n.Local, "data-") || strings.HasPrefix(n.Local, "aria-") {
		return n.Local, true
	}
	return camelCase(n.Local), true
}

func camelCase(s string) string {
	if !strings.ContainsAny(s, "-:") {
		return s
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == ':' })
	var b strings.Builder
	for i, p := range parts {
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(upperFirst(p))
	}
	return b.String()
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// styleObject converts an inline CSS declaration list into a JSX object.
func styleObject(css string) string {
	var props []string
	for _, decl := range strings.Split(css, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		props = append(props, styleKey(k)+": "+jsString(v))
	}
	if len(props) == 0 {
		return "{{}}"
	}
	return "{{ " + strings.Join(props, ", ") + " }}"
}

func styleKey(k string) string {
	switch {
	case strings.HasPrefix(k, "--"):
		return jsString(k)
	case strings.HasPrefix(k, "-ms-"):
		return camelCase(k[1:])
	case strings.HasPrefix(k, "-"):
		return upperFirst(camelCase(k[1:]))
	}
	return camelCase(strings.ToLower(k))
}
