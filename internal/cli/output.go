package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/buger/goterm"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ragchat/client/internal/markdown"
	"ragchat/client/internal/model"
)

var (
	titleColor     = color.New(color.FgMagenta, color.Bold)
	separatorColor = color.New(color.FgHiBlack)
	userColor      = color.New(color.Bold)
	aiColor        = color.New(color.FgCyan)
	activeColor    = color.New(color.FgGreen)
	mutedColor     = color.New(color.FgHiBlack)
	infoColor      = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed)
)

// TermWidth returns the terminal width, or 80 when not attached to a terminal.
func TermWidth() int {
	if w := goterm.Width(); w > 0 {
		return w
	}
	return 80
}

// printer writes coloured output to a command's stdout.
type printer struct {
	w     io.Writer
	width int
}

func newPrinter(cmd *cobra.Command) *printer {
	return &printer{w: cmd.OutOrStdout(), width: TermWidth()}
}

// Title prints text centred in a separator line.
func (p *printer) Title(text string, args ...any) {
	title := "   " + fmt.Sprintf(text, args...) + "   "
	left := max((p.width-len(title))/2, 3)
	right := max(p.width-len(title)-left, 3)
	titleColor.Fprintln(p.w, strings.Repeat("-", left)+title+strings.Repeat("-", right))
}

func (p *printer) Separator() {
	separatorColor.Fprintln(p.w, strings.Repeat("-", p.width))
}

func (p *printer) Info(text string, args ...any) {
	infoColor.Fprintf(p.w, text+"\n", args...)
}

func (p *printer) Line(text string, args ...any) {
	fmt.Fprintf(p.w, text+"\n", args...)
}

// Thread prints one row of the thread list.
func (p *printer) Thread(t model.Thread, active bool) {
	marker := "  "
	c := color.New(color.Reset)
	if active {
		marker = "* "
		c = activeColor
	}
	c.Fprintf(p.w, "%s%s  %s", marker, t.ID, t.DisplayTitle())
	mutedColor.Fprintf(p.w, "  %s\n", t.UpdatedAt.Local().Format("2006-01-02 15:04"))
}

// Message prints a chat message. Assistant replies are rendered as markdown.
func (p *printer) Message(m model.Message, r *markdown.Renderer) {
	switch m.Role {
	case model.MessageRoleAssistant:
		aiColor.Fprintln(p.w, "assistant:")
		fmt.Fprintln(p.w, r.Render(m.Content))
		if sources := markdown.Sources(m.RetrievalRefs); sources != "" {
			mutedColor.Fprintln(p.w, sources)
		}
	default:
		userColor.Fprintf(p.w, "> %s\n", m.Content)
	}
}

func (p *printer) User(u model.User) {
	status := "active"
	if !u.IsActive {
		status = "inactive"
	}
	p.Line("%s  %-30s %-6s %s", u.ID, u.Email, u.Role, status)
}

func (p *printer) Document(d model.Document) {
	p.Line("%s  %-30s %8s  %d pages", d.ID, d.Filename, formatSize(d.SizeBytes), d.PageCount)
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
