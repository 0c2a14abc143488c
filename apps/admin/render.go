package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/trezcool/smartedu/core/chat"
)

func renderJSON(w io.Writer, resp chat.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func renderResponse(w io.Writer, resp chat.Response) {
	fmt.Fprintln(w, resp.Text)

	tables := resp.Tables
	if resp.Table != nil {
		tables = append([]*chat.TableSpec{resp.Table}, tables...)
	}
	for _, tbl := range tables {
		fmt.Fprintln(w)
		fmt.Fprintln(w, tbl.Title)
		for _, line := range formatTable(tbl) {
			fmt.Fprintln(w, line)
		}
	}
}

// formatTable lays out a table in aligned columns; numbers are right-aligned.
func formatTable(tbl *chat.TableSpec) []string {
	if len(tbl.Columns) == 0 {
		return nil
	}

	headers := make([]string, len(tbl.Columns))
	widths := make([]int, len(tbl.Columns))
	for i, col := range tbl.Columns {
		headers[i] = col.Label
		widths[i] = runewidth.StringWidth(col.Label)
	}

	rightAlign := make([]bool, len(tbl.Columns))
	cells := make([][]string, len(tbl.Rows))
	for r, row := range tbl.Rows {
		cells[r] = make([]string, len(tbl.Columns))
		for i, col := range tbl.Columns {
			cell, numeric := cellText(row[col.Key])
			if numeric {
				rightAlign[i] = true
			}
			cells[r][i] = cell
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(cells)+2)
	lines = append(lines, formatRow(headers, widths, nil))
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	lines = append(lines, formatRow(sep, widths, nil))
	for _, row := range cells {
		lines = append(lines, formatRow(row, widths, rightAlign))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlign []bool) string {
	var b strings.Builder
	for i, cell := range row {
		if i > 0 {
			b.WriteString("  ")
		}
		right := rightAlign != nil && rightAlign[i]
		b.WriteString(padCell(cell, widths[i], right))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	if rightAlign {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}

func cellText(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "-", false
	case float64:
		return chat.FormatNumber(val), true
	case string:
		return val, false
	}
	return fmt.Sprint(v), false
}
