package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/zephyrtronium/scicalc"
)

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Console writes calculator output, with colors when enabled.
type Console struct {
	out         *termenv.Output
	md          *glamour.TermRenderer
	w           io.Writer
	interactive bool
	color       bool
}

// New creates a console writing to w. Prompts are only written when
// interactive is true. Colors are used only when color is true and w
// supports them.
func New(w io.Writer, interactive, color bool) *Console {
	out := termenv.NewOutput(w)
	if out.Profile == termenv.Ascii {
		color = false
	}
	return &Console{out: out, w: w, interactive: interactive, color: color}
}

func (c *Console) styled(s, color string) string {
	if !c.color {
		return s
	}
	return c.out.String(s).Foreground(c.out.Color(color)).String()
}

// Prompt writes the input prompt showing the trig mode.
func (c *Console) Prompt(mode scicalc.Mode) {
	if !c.interactive {
		return
	}
	fmt.Fprint(c.w, c.styled("["+mode.String()+"]", "#818cf8")+" > ")
}

// Result writes an evaluation result.
func (c *Console) Result(n scicalc.Number) {
	fmt.Fprintln(c.w, c.styled(n.String(), "#34d399"))
}

// Error writes an evaluation error.
func (c *Console) Error(err error) {
	fmt.Fprintln(c.w, c.styled(scicalc.Describe(err), "#fb7185"))
}

// Info writes an informational line.
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintln(c.w, c.styled(fmt.Sprintf(format, args...), "#a78bfa"))
}

// Plain writes text without styling.
func (c *Console) Plain(s string) {
	fmt.Fprintln(c.w, s)
}

// Markdown writes markdown text, rendered for the terminal when colors are
// enabled.
func (c *Console) Markdown(text string) {
	if c.color && c.md == nil {
		c.md, _ = glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	}
	if c.color && c.md != nil {
		if s, err := c.md.Render(text); err == nil {
			fmt.Fprint(c.w, s)
			return
		}
	}
	fmt.Fprintln(c.w, text)
}
