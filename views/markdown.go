package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Raw HTML in markdown is dropped: goldmark escapes it unless WithUnsafe is set.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Markdown returns a templ.Component that renders src as HTML.
func Markdown(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := md.Convert([]byte(src), &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}
