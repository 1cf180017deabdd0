package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

const markdownWidth = 80

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

func renderFooter(w io.Writer, shown, total, page int) {
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%s of %s, page %d",
		humanize.Comma(int64(shown)), humanize.Comma(int64(total)), page)))
}

// renderMarkdown falls back to the raw text when glamour cannot render it.
func renderMarkdown(text string) string {
	if strings.TrimSpace(text) == "" {
		return mutedStyle.Render("No description")
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(markdownWidth))
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
