package commands

import (
	"fmt"
	"strings"
)

// ANSI color codes for terminal output
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
)

// printTable renders a simple aligned table. rows calls emit once per row;
// the table buffers everything first so column widths fit the longest cell.
func printTable(header []string, rows func(emit func([]string))) {
	var buffered [][]string
	rows(func(row []string) { buffered = append(buffered, row) })

	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = len(cell)
	}
	for _, row := range buffered {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	fmt.Print(colorBold)
	for i, cell := range header {
		fmt.Printf("%-*s  ", widths[i], cell)
	}
	fmt.Println(colorReset)
	for i := range header {
		fmt.Print(strings.Repeat("-", widths[i]), "  ")
	}
	fmt.Println()
	for _, row := range buffered {
		for i, cell := range row {
			fmt.Printf("%-*s  ", widths[i], cell)
		}
		fmt.Println()
	}
}

// orDash substitutes a dash for an empty cell.
func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
