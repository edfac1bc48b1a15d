package cmd

import (
	"fmt"
	"os"

	"github.com/parl-lang/parlc/internal/codegen"
	"github.com/parl-lang/parlc/internal/errors"
	"github.com/parl-lang/parlc/internal/lexer"
	"github.com/parl-lang/parlc/internal/parser"
	"github.com/parl-lang/parlc/internal/semantic"
	"github.com/spf13/cobra"
)

var compileOutput string

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a PArL file to PArIR",
	Long: `Lex, parse, type-check and lower a PArL program to PArIR, the
stack-based instruction set of the pad pixel device.

By default the instructions are printed to stdout, one per line. Use
-o to write them to a file instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write PArIR to this file instead of stdout")
}

func runCompile(cmd *cobra.Command, args []string) error {
	file := args[0]
	source, err := loadSource(file)
	if err != nil {
		return err
	}

	banner("Compiling", file)

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

	if _, err := semantic.NewAnalyzer().Analyze(prog); err != nil {
		if serr, ok := err.(*semantic.SemanticError); ok {
			fmt.Fprint(os.Stderr, errors.FormatErrors([]*errors.CompilerError{serr.ToCompilerError(source, file)}, colorEnabled(cmd)))
		}
		return fmt.Errorf("semantic analysis failed")
	}

	irProgram, err := codegen.Generate(prog)
	if err != nil {
		return fmt.Errorf("codegen failed: %w", err)
	}

	if compileOutput != "" {
		return os.WriteFile(compileOutput, []byte(irProgram.String()), 0644)
	}
	fmt.Print(irProgram.String())
	return nil
}
