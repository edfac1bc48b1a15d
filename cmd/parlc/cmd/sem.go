package cmd

import (
	"fmt"
	"os"

	"github.com/parl-lang/parlc/internal/errors"
	"github.com/parl-lang/parlc/internal/lexer"
	"github.com/parl-lang/parlc/internal/parser"
	"github.com/parl-lang/parlc/internal/semantic"
	"github.com/spf13/cobra"
)

var semCmd = &cobra.Command{
	Use:   "sem [file]",
	Short: "Run scope resolution and type checking on a PArL file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSem,
}

func init() {
	rootCmd.AddCommand(semCmd)
}

func runSem(cmd *cobra.Command, args []string) error {
	file := args[0]
	source, err := loadSource(file)
	if err != nil {
		return err
	}

	banner("Analyzing", file)

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

	result, err := semantic.NewAnalyzer().Analyze(prog)
	if err != nil {
		if serr, ok := err.(*semantic.SemanticError); ok {
			fmt.Fprint(os.Stderr, errors.FormatErrors([]*errors.CompilerError{serr.ToCompilerError(source, file)}, colorEnabled(cmd)))
		}
		return fmt.Errorf("semantic analysis failed")
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	fmt.Println("analyzed successfully")
	return nil
}
