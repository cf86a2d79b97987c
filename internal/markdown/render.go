package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"

	"ragchat/client/internal/model"
)

// Renderer turns assistant replies into terminal output.
type Renderer struct {
	glamour *glamour.TermRenderer
	width   int
	plain   bool
}

// NewRenderer creates a renderer wrapping at width. A plain renderer emits no ANSI
// escapes, for pipes and tests.
func NewRenderer(width int, plain bool) (*Renderer, error) {
	if width <= 0 {
		width = 80
	}
	gr, err := glamour.NewTermRenderer(
		glamour.WithStyles(compactStyle(plain)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create markdown renderer: %w", err)
	}
	return &Renderer{glamour: gr, width: width, plain: plain}, nil
}

// SetWidth rebuilds the renderer for a new width.
func (r *Renderer) SetWidth(width int) error {
	if r.width == width {
		return nil
	}
	next, err := NewRenderer(width, r.plain)
	if err != nil {
		return err
	}
	*r = *next
	return nil
}

// Render renders markdown content. Content glamour cannot parse is returned as is.
func (r *Renderer) Render(content string) string {
	rendered, err := r.glamour.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}

// Sources lists the documents an answer was grounded on, one per line.
func Sources(refs []model.RetrievalRef) string {
	if len(refs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Sources:")
	for _, ref := range refs {
		fmt.Fprintf(&sb, "\n  - %s (page %d)", ref.Filename, ref.Page)
	}
	return sb.String()
}

// compactStyle drops the margins glamour puts around documents and paragraphs.
func compactStyle(plain bool) ansi.StyleConfig {
	style := styles.DraculaStyleConfig
	if plain {
		style = styles.NoTTYStyleConfig
	}
	zero := uint(0)
	style.Document.Margin = &zero
	style.Document.BlockPrefix = ""
	style.Document.BlockSuffix = ""
	style.CodeBlock.Margin = &zero
	style.Paragraph.BlockPrefix = ""
	style.Paragraph.BlockSuffix = ""
	return style
}
