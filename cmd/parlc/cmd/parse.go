package cmd

import (
	"fmt"
	"os"

	"github.com/parl-lang/parlc/internal/astdump"
	"github.com/parl-lang/parlc/internal/errors"
	"github.com/parl-lang/parlc/internal/lexer"
	"github.com/parl-lang/parlc/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a PArL file and print its AST as an indented tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	file := args[0]
	source, err := loadSource(file)
	if err != nil {
		return err
	}

	banner("Parsing", file)

	tokens, lexErrors := lexer.New(source).Lex()
	if len(lexErrors) > 0 {
		return reportLexErrors(lexErrors, source, file, colorEnabled(cmd))
	}

	prog, err := parser.New(tokens, file).Parse()
	if err != nil {
		if perr, ok := err.(*parser.ParseError); ok {
			fmt.Fprint(os.Stderr, errors.FormatErrors([]*errors.CompilerError{perr.ToCompilerError(source)}, colorEnabled(cmd)))
		}
		return fmt.Errorf("parsing failed")
	}

	out, err := astdump.Dump(prog)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func reportLexErrors(lexErrors []*lexer.LexicalError, source, file string, color bool) error {
	compilerErrors := make([]*errors.CompilerError, 0, len(lexErrors))
	for _, lerr := range lexErrors {
		compilerErrors = append(compilerErrors, errors.NewCompilerError(lerr.Span, lerr.Error(), source, file))
	}
	fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, color))
	return fmt.Errorf("lexing failed with %d error(s)", len(lexErrors))
}
