package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorPass   = lipgloss.Color("#10b981") // green-500
	colorFail   = lipgloss.Color("#ef4444") // red-500
	colorDim    = lipgloss.Color("#6b7280") // gray-500
	colorAccent = lipgloss.Color("#3b82f6") // blue-500
)

// styles holds the lipgloss styles for command reports.
type styles struct {
	Pass   lipgloss.Style
	Fail   lipgloss.Style
	Dim    lipgloss.Style
	Bold   lipgloss.Style
	Path   lipgloss.Style
	Header lipgloss.Style

	SymbolPass string
	SymbolFail string
	SymbolItem string
}

// newStyles returns colored styles when w is a terminal and plain ones otherwise.
func newStyles(w io.Writer) *styles {
	s := &styles{
		SymbolPass: "✓",
		SymbolFail: "✗",
		SymbolItem: "•",
	}

	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		plain := lipgloss.NewStyle()
		s.Pass, s.Fail, s.Dim, s.Bold, s.Path, s.Header = plain, plain, plain, plain, plain, plain

		return s
	}

	s.Pass = lipgloss.NewStyle().Foreground(colorPass).Bold(true)
	s.Fail = lipgloss.NewStyle().Foreground(colorFail).Bold(true)
	s.Dim = lipgloss.NewStyle().Foreground(colorDim)
	s.Bold = lipgloss.NewStyle().Bold(true)
	s.Path = lipgloss.NewStyle().Foreground(colorAccent)
	s.Header = lipgloss.NewStyle().Bold(true).Underline(true)

	return s
}
