package cli

import (
	"strconv"

	"github.com/amine-amaach/dbstats/services"
	"github.com/amine-amaach/dbstats/services/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	nullStyle   = cellStyle.Copy().Foreground(lipgloss.Color("#9B9B9B"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C5C5C"))
)

// renderDataset draws ds as a bordered table, limited to the first limit rows
// when limit > 0.
func renderDataset(ds *models.Dataset, limit int) string {
	n := ds.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	rows := make([][]string, n)
	nulls := make(map[[2]int]bool)
	for i := 0; i < n; i++ {
		row := ds.Row(i)
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			if cell == nil {
				nulls[[2]int{i, j}] = true
			}
			rows[i][j] = displayCell(cell)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			// row 0 is the header, data rows start at 1
			switch {
			case row == 0:
				return headerStyle
			case nulls[[2]int{row - 1, col}]:
				return nullStyle
			}
			return cellStyle
		}).
		Headers(ds.ColumnNames()...).
		Rows(rows...)
	return t.String()
}

// displayCell shortens floats for the terminal; files keep full precision.
func displayCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(x, 'g', 6, 64)
	}
	return services.FormatCell(v)
}
