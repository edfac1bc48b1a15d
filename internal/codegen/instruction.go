// Package codegen lowers a semantically valid AST into PArIR: a
// line-oriented textual stack-machine instruction stream, one mnemonic
// per line, lowercase, space-separated operands.
package codegen

import "strings"

// Instruction is one PArIR line: a lowercase mnemonic plus its operands,
// already rendered as strings (operands are either literal values or
// addresses, both textual in PArIR).
type Instruction struct {
	Mnemonic string
	Operands []string
}

func (i Instruction) String() string {
	if len(i.Operands) == 0 {
		return i.Mnemonic
	}
	return i.Mnemonic + " " + strings.Join(i.Operands, " ")
}

// Program is the finished instruction stream, ready to be written to
// stdout one line per instruction.
type Program struct {
	Instructions []Instruction
}

func (p *Program) String() string {
	var b strings.Builder
	for _, instr := range p.Instructions {
		b.WriteString(instr.String())
		b.WriteByte('\n')
	}
	return b.String()
}
