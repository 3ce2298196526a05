// Package output writes action previews to the user. Styling is cosmetic:
// the stable preview strings actions expose are never altered, only
// wrapped in color when the output supports it.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Renderer prints one preview line per action, in action order.
type Renderer struct {
	writer io.Writer
	styled bool
	verb   lipgloss.Style
}

// NewRenderer creates a renderer for w. Styling is enabled only when w is
// a terminal, color is not disabled via noColor, and NO_COLOR is not set.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	styled := !noColor && !termenv.EnvNoColor() && isTerminal(w)
	return &Renderer{
		writer: w,
		styled: styled,
		verb:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	}
}

// Action writes a single action preview line.
func (r *Renderer) Action(preview string) {
	if !r.styled {
		fmt.Fprintln(r.writer, preview)
		return
	}
	verb, rest, found := strings.Cut(preview, " ")
	if !found {
		fmt.Fprintln(r.writer, preview)
		return
	}
	fmt.Fprintf(r.writer, "%s %s\n", r.verb.Render(verb), rest)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
