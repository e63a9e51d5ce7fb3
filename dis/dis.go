// Package dis supports analysis of bytecode chunks by disassembling them.
// This works with the opcodes defined in the `op` package and the chunk
// accessors of the `bytecode` package.
package dis

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/deepnoodle-ai/lbc/bytecode"
	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/deepnoodle-ai/lbc/internal/table"
	"github.com/deepnoodle-ai/lbc/op"
)

// Instruction represents a single decoded instruction and its operands. An
// auxiliary word is folded into the instruction it belongs to.
type Instruction struct {
	PC         int     `json:"pc" cbor:"1,keyasint"`
	Name       string  `json:"name" cbor:"2,keyasint"`
	Opcode     op.Code `json:"opcode" cbor:"3,keyasint"`
	Format     string  `json:"format" cbor:"4,keyasint"`
	Operands   []int64 `json:"operands" cbor:"5,keyasint"`
	Aux        *uint32 `json:"aux,omitempty" cbor:"6,keyasint,omitempty"`
	Annotation string  `json:"annotation,omitempty" cbor:"7,keyasint,omitempty"`
	// Constant is the index of the constant the instruction refers to, or
	// -1 if it has no constant operand.
	Constant int `json:"constant" cbor:"8,keyasint"`
}

// signedD lists the AD-format opcodes whose D operand is a signed value
// (a jump offset or an immediate number).
var signedD = map[op.Code]bool{
	op.LoadN:         true,
	op.Jump:          true,
	op.JumpBack:      true,
	op.JumpIf:        true,
	op.JumpIfNot:     true,
	op.JumpIfEq:      true,
	op.JumpIfLe:      true,
	op.JumpIfLt:      true,
	op.JumpIfNotEq:   true,
	op.JumpIfNotLe:   true,
	op.JumpIfNotLt:   true,
	op.ForNPrep:      true,
	op.ForNLoop:      true,
	op.ForGPrep:      true,
	op.ForGLoop:      true,
	op.ForGPrepINext: true,
	op.ForGPrepNext:  true,
}

// Disassemble returns a parsed representation of the given chunk. It fails
// on the first word that does not decode.
func Disassemble(chunk *bytecode.Chunk) ([]Instruction, error) {
	var instructions []Instruction
	iter := bytecode.NewInstructionIter(chunk)
	for {
		step, ok := iter.Next()
		if !ok {
			break
		}
		decoded, err := step.Decode()
		if err != nil {
			return nil, errors.Prefix(err, "pc %d", step.PC)
		}
		instr := Instruction{
			PC:       step.PC,
			Name:     step.Info.Name,
			Opcode:   step.Info.Code,
			Format:   step.Info.Format.String(),
			Operands: operands(decoded),
			Constant: -1,
		}
		if step.HasAux {
			aux := step.Aux
			instr.Aux = &aux
		}
		if index, ok := chunk.ConstantOperand(step.PC); ok {
			instr.Constant = index
			if index < chunk.ConstantCount() {
				instr.Annotation = chunk.ConstantAt(index).String()
			} else {
				instr.Annotation = fmt.Sprintf("<missing constant %d>", index)
			}
		}
		if step.Info.Code == op.Capture {
			capture, err := bytecode.DecodeCapture(step.Word)
			if err != nil {
				return nil, errors.Prefix(err, "pc %d", step.PC)
			}
			instr.Annotation = captureAnnotation(capture)
		}
		instructions = append(instructions, instr)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return instructions, nil
}

func operands(decoded bytecode.Decoded) []int64 {
	switch d := decoded.(type) {
	case bytecode.ABC:
		return []int64{int64(d.A), int64(d.B), int64(d.C)}
	case bytecode.AD:
		if signedD[d.Op] {
			return []int64{int64(d.A), int64(d.SignedD())}
		}
		return []int64{int64(d.A), int64(d.D)}
	case bytecode.E:
		if d.Op == op.JumpX {
			return []int64{int64(d.SignedE())}
		}
		return []int64{int64(d.E)}
	}
	return nil
}

func captureAnnotation(c bytecode.Capture) string {
	if c.Kind == bytecode.CaptureUpvalue {
		return fmt.Sprintf("%s u%d", c.Kind, c.Index)
	}
	return fmt.Sprintf("%s r%d", c.Kind, c.Index)
}

// Print a string representation of the given instructions to the given writer.
func Print(instructions []Instruction, writer io.Writer) error {
	bold := color.New(color.Bold).SprintFunc()
	var lines [][]string
	for _, instr := range instructions {
		values := []string{
			strconv.Itoa(instr.PC),
			bold(instr.Name),
			formatOperands(instr.Operands),
		}
		if instr.Aux != nil {
			values = append(values, fmt.Sprintf("%08x", *instr.Aux))
		} else {
			values = append(values, "")
		}
		switch {
		case instr.Constant >= 0:
			values = append(values, color.YellowString("K%d %s", instr.Constant, truncate(instr.Annotation)))
		case instr.Annotation != "":
			values = append(values, color.CyanString("%s", instr.Annotation))
		default:
			values = append(values, "")
		}
		lines = append(lines, values)
	}

	return table.NewTable(writer).
		WithHeader([]string{"PC", "OPCODE", "OPERANDS", "AUX", "INFO"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignRight,
			table.AlignRight,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

func truncate(s string) string {
	return runewidth.Truncate(s, 60, "...")
}

func formatOperands(ops []int64) string {
	var sb strings.Builder
	for i, v := range ops {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}
