package cli

import (
	"fmt"
	"io"
	"os"
)

// Color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

// Colorize returns a colored string when stdout is a terminal.
func Colorize(text string, color string) string {
	if !isTerminal() {
		return text
	}
	return color + text + ColorReset
}

func success(w io.Writer, message string) {
	if isTerminal() {
		fmt.Fprintf(w, "%s✓%s %s\n", ColorGreen, ColorReset, message)
	} else {
		fmt.Fprintf(w, "✓ %s\n", message)
	}
}

func failure(w io.Writer, message string) {
	if isTerminal() {
		fmt.Fprintf(w, "%s✗%s %s\n", ColorRed, ColorReset, message)
	} else {
		fmt.Fprintf(w, "✗ %s\n", message)
	}
}

// isTerminal checks if stdout is a terminal
func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
