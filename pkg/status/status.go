// Package status reports the availability of required external tools and
// mandatory files within the current project.
package status

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/term"

	"github.com/wasmup/wasmup/pkg/tools"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	foundStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

// Report prints the status of required external tools and mandatory project
// files to w.
func Report(w io.Writer, project string, ts *tools.Toolset) {
	printTable(w, "Tools", []string{"name", "status", "path"}, toolRows(ts))
	printTable(w, "Project files", []string{"path", "status"}, fileRows(project))
}

func toolRows(ts *tools.Toolset) [][]string {
	rows := make([][]string, 0, 4)
	for _, name := range []string{tools.ToolGo, tools.ToolSass, tools.ToolTailwind, tools.ToolWasmOpt} {
		path, ok := ts.Path(name)
		rows = append(rows, []string{name, statusCell(ok), path})
	}
	return rows
}

// fileRows checks each group of alternative file names and reports the first
// existing candidate, or the primary name as missing.
func fileRows(project string) [][]string {
	groups := [][]string{
		{"assets/main.sass", "assets/main.scss", "assets/main.css"},
		{".gitignore"},
		{"go.mod"},
		{"index.html"},
	}

	rows := make([][]string, 0, len(groups))
	for _, group := range groups {
		name, found := group[0], false
		for _, candidate := range group {
			if _, err := os.Stat(filepath.Join(project, candidate)); err == nil {
				name, found = candidate, true
				break
			}
		}
		rows = append(rows, []string{name, statusCell(found)})
	}
	return rows
}

func statusCell(found bool) string {
	if found {
		return foundStyle.Render("found")
	}
	return missingStyle.Render("missing")
}

func printTable(w io.Writer, title string, headers []string, rows [][]string) {
	width := 80
	if ws, hs, err := term.GetSize(os.Stdout.Fd()); err == nil && ws > 0 && hs > 0 {
		width = ws
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	if tw := lipgloss.Width(t.Render()); tw > width {
		t = t.Width(width)
	}

	fmt.Fprintln(w, headerStyle.Render(title))
	fmt.Fprintln(w, t.Render())
}
