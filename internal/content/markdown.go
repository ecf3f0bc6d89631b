package content

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown converts Markdown page fragments into HTML bodies.
type Markdown struct {
	md goldmark.Markdown
}

type markdownMeta struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("dracula"),
					highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
				),
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithUnsafe()),
		),
	}
}

// Convert renders src. title is the frontmatter title, if any.
func (m *Markdown) Convert(src []byte) (title, body string, err error) {
	var meta markdownMeta
	rest, fmErr := frontmatter.Parse(bytes.NewReader(src), &meta)
	if fmErr != nil {
		rest = src
		meta = markdownMeta{}
	}

	var buf bytes.Buffer
	if err := m.md.Convert(rest, &buf); err != nil {
		return "", "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return meta.Title, buf.String(), nil
}
