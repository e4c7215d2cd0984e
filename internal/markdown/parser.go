// Package markdown renders goal descriptions.
package markdown

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Parser converts GFM descriptions to HTML. Raw HTML in the source is
// omitted since descriptions are user input.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
		),
	)

	return &Parser{
		md: md,
	}
}

func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Description renders a goal description, returning "" for blank input or
// when conversion fails.
func (p *Parser) Description(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}

	html, err := p.Parse([]byte(description))
	if err != nil {
		slog.Warn("failed to render description", "error", err)
		return ""
	}
	return string(html)
}
