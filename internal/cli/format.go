package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// fatih/color disables these when stdout is not a terminal or NO_COLOR is set.
var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)
)

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Println()
	_, _ = headerColor.Printf("▸ %s\n", title)
	fmt.Println()
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Printf("✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Printf("⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	fmt.Println(msg)
}

// PrintLabelValue prints a label-value pair
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Printf("  %s: ", label)
	_, _ = valueColor.Println(value)
}

// PrintTable prints rows under a header, padding every column to its widest cell
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	fmt.Print("  ")
	for i, header := range headers {
		if i > 0 {
			fmt.Print("  ")
		}
		_, _ = headerColor.Printf("%-*s", widths[i], header)
	}
	fmt.Println()

	fmt.Print("  ")
	for i, width := range widths {
		if i > 0 {
			fmt.Print("  ")
		}
		fmt.Print(strings.Repeat("-", width))
	}
	fmt.Println()

	for _, row := range rows {
		fmt.Print("  ")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				fmt.Print("  ")
			}
			_, _ = valueColor.Printf("%-*s", widths[i], cell)
		}
		fmt.Println()
	}
}

// PrintEmptyState prints a message when there's no data to show
func PrintEmptyState(msg string) {
	_, _ = dimColor.Printf("  %s\n", msg)
}

// PrintCount formats a count with the singular or plural noun
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
