package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
)

// Format selects how reports are written
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// ParseFormat validates a format name given on the command line
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatMarkdown, FormatCSV:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, markdown or csv)", s)
	}
}

// Render writes all reports to w in the given format
func Render(w io.Writer, format Format, reports []Report) error {
	switch format {
	case FormatMarkdown:
		return renderMarkdown(w, reports)
	case FormatCSV:
		return renderCSV(w, reports)
	default:
		return renderText(w, reports)
	}
}

// renderText prints one boxed terminal table per report with coloured salaries
func renderText(w io.Writer, reports []Report) error {
	for _, r := range reports {
		data := pterm.TableData{Header}
		for _, row := range r.Rows {
			cells := row.cells()
			switch {
			case row.Failed:
				cells[1] = pterm.Red("request failed")
			case row.Average != nil:
				cells[3] = ui.ColorizeSalary(*row.Average)
			}
			data = append(data, cells)
		}

		rendered, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
		if err != nil {
			return fmt.Errorf("failed to render %s table: %w", r.Title, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", pterm.Bold.Sprint(r.Title), rendered); err != nil {
			return err
		}
	}
	return nil
}

func renderMarkdown(w io.Writer, reports []Report) error {
	for _, r := range reports {
		t := newTable(r.Cells())
		if _, err := fmt.Fprintf(w, "### %s\n\n%s\n\n", r.Title, t.RenderMarkdown()); err != nil {
			return err
		}
	}
	return nil
}

// renderCSV writes a single document with the source as the leading column
func renderCSV(w io.Writer, reports []Report) error {
	t := table.NewWriter()
	t.AppendHeader(toRow(append([]string{"Source"}, Header...)))
	for _, r := range reports {
		for _, row := range r.Rows {
			t.AppendRow(toRow(append([]string{r.Title}, row.values()...)))
		}
	}
	_, err := fmt.Fprintln(w, t.RenderCSV())
	return err
}

func newTable(cells [][]string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	if len(cells) == 0 {
		return t
	}
	t.AppendHeader(toRow(cells[0]))
	for _, c := range cells[1:] {
		t.AppendRow(toRow(c))
	}
	return t
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
