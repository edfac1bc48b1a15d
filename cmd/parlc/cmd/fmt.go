package cmd

import (
	"fmt"
	"os"

	"github.com/parl-lang/parlc/internal/errors"
	"github.com/parl-lang/parlc/internal/lexer"
	"github.com/parl-lang/parlc/internal/parser"
	"github.com/parl-lang/parlc/internal/printer"
	"github.com/spf13/cobra"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Rewrite a PArL file in canonical form",
	Long: `Parse a PArL file and print it back in canonical form.

By default the formatted source is written to stdout. Use -w to
overwrite the file in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to the source file instead of stdout")
}

func runFmt(cmd *cobra.Command, args []string) error {
	file := args[0]
	source, err := loadSource(file)
	if err != nil {
		return err
	}

	banner("Formatting", file)

	tokens, lexErrors := lexer.New(source).Lex()
	if len(lexErrors) > 0 {
		return reportLexErrors(lexErrors, source, file, colorEnabled(cmd))
	}

	prog, err := parser.New(tokens, file).Parse()
	if err != nil {
		if perr, ok := err.(*parser.ParseError); ok {
			fmt.Fprint(os.Stderr, errors.FormatErrors([]*errors.CompilerError{perr.ToCompilerError(source)}, colorEnabled(cmd)))
		}
		return fmt.Errorf("formatting failed")
	}

	formatted, err := printer.Print(prog)
	if err != nil {
		return err
	}

	if fmtWrite {
		return os.WriteFile(file, []byte(formatted), 0644)
	}
	fmt.Print(formatted)
	return nil
}
