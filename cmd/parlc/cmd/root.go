package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "parlc",
	Short: "PArL compiler front end",
	Long: `parlc is a front-end compiler for PArL, a small statically-typed
imperative language that targets PArIR, the stack-based instruction set
of the pad pixel device.

Each subcommand drives one pipeline stage:
  lex      tokenize a .parl file
  parse    parse it and print the AST
  fmt      rewrite it in canonical form
  sem      run scope resolution and type checking
  compile  emit PArIR instructions`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().Bool("no-color", false, "disable ANSI-colored diagnostics")
}
