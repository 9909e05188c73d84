// Package printer provides styled terminal output for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/stale/internal/core/styles"
)

type ctxKey struct{}

// Printer writes user-facing command output.
type Printer struct {
	w io.Writer
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithCtx stores the printer on the context.
func WithCtx(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored on the context, or a stdout printer when
// none was set.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.prefixed("✓", styles.Theme().Primary, format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.prefixed("•", styles.Theme().Muted, format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.prefixed("!", styles.Theme().Warning, format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.prefixed("✗", styles.Theme().Error, format, args...)
}

func (p *Printer) prefixed(glyph string, color lipgloss.Color, format string, args ...any) {
	mark := lipgloss.NewStyle().Foreground(color).Bold(true).Render(glyph)
	fmt.Fprintf(p.w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}
