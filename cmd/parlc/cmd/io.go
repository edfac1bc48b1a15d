package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// colorEnabled reports whether diagnostics should carry ANSI colour,
// honoring --no-color and falling back to terminal detection.
func colorEnabled(cmd *cobra.Command) bool {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return !noColor && isTerminal()
}

// loadSource reads path's contents, returning a distinct error message for
// a missing file versus any other read failure — mirroring the reference
// driver's file.exists() check ahead of the actual read.
func loadSource(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("file not found: %s", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(content), nil
}

// isTerminal reports whether stdout looks like an interactive terminal,
// used to auto-disable ANSI banner colour when output is redirected.
func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// banner prints the short "\nVerb file\n" line the reference driver shows
// before running each stage, colorized unless output isn't a terminal.
func banner(verb, file string) {
	if isTerminal() {
		fmt.Printf("\n\033[1;36m%s\033[0m %s\n", verb, file)
	} else {
		fmt.Printf("\n%s %s\n", verb, file)
	}
}
