package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// isTerminal reports whether w is a terminal. Buffers and pipes get plain text.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func render(w io.Writer, style lipgloss.Style, s string) string {
	if !isTerminal(w) {
		return s
	}
	return style.Render(s)
}

func printSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, render(w, successStyle, "✓")+" "+msg)
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, render(w, errorStyle, "Error:")+" "+err.Error())
}

func printHeader(w io.Writer, s string) {
	fmt.Fprintln(w, render(w, headerStyle, s))
}
