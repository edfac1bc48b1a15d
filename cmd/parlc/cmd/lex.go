package cmd

import (
	"fmt"
	"os"

	"github.com/parl-lang/parlc/internal/errors"
	"github.com/parl-lang/parlc/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a PArL file and print one line per token",
	Long: `Tokenize a PArL program and print the resulting token stream, one
token per line, in source order.

Example:
  parlc lex script.parl`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	file := args[0]
	source, err := loadSource(file)
	if err != nil {
		return err
	}

	banner("Lexing", file)

	tokens, lexErrors := lexer.New(source).Lex()

	if len(lexErrors) > 0 {
		compilerErrors := make([]*errors.CompilerError, 0, len(lexErrors))
		for _, lerr := range lexErrors {
			compilerErrors = append(compilerErrors, errors.NewCompilerError(lerr.Span, lerr.Error(), source, file))
		}
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, colorEnabled(cmd)))
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrors))
	}

	for _, tok := range tokens {
		fmt.Println(tok.String())
	}
	return nil
}
