package bytecode

import (
	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/deepnoodle-ai/lbc/op"
)

// Chunk is a decoded unit of bytecode: a version header, a constant pool and
// an instruction stream. It is immutable after creation and safe for
// concurrent use.
type Chunk struct {
	header    Header
	constants []Constant
	code      []Instruction
}

// ChunkParams contains parameters for creating a new Chunk.
type ChunkParams struct {
	Header    Header
	Constants []Constant
	Code      []Instruction
}

// NewChunk creates a new immutable Chunk from the given parameters. Input
// slices are copied. NewChunk does not validate; see Validate.
func NewChunk(params ChunkParams) *Chunk {
	return &Chunk{
		header:    params.Header,
		constants: copyConstants(params.Constants),
		code:      copyWords(params.Code),
	}
}

// Header returns the chunk's version header.
func (c *Chunk) Header() Header {
	return c.header
}

// Version returns the bytecode format version.
func (c *Chunk) Version() uint8 {
	return c.header.Version
}

// ConstantCount returns the number of constants.
func (c *Chunk) ConstantCount() int {
	return len(c.constants)
}

// ConstantAt returns the constant at the given index.
func (c *Chunk) ConstantAt(index int) Constant {
	return c.constants[index]
}

// InstructionCount returns the number of instruction words, including
// auxiliary words.
func (c *Chunk) InstructionCount() int {
	return len(c.code)
}

// InstructionAt returns the instruction word at the given index.
func (c *Chunk) InstructionAt(index int) Instruction {
	return c.code[index]
}

// DecodeAt decodes the instruction at pc using the opcode table.
func (c *Chunk) DecodeAt(pc int) (Decoded, error) {
	if pc < 0 || pc >= len(c.code) {
		return nil, errors.Newf(errors.E1006, "pc %d out of range", pc)
	}
	return Decode(c.code[pc])
}

// AuxAt returns the auxiliary word of the instruction at pc. The second
// result is false if the opcode has no auxiliary word or it is missing.
func (c *Chunk) AuxAt(pc int) (uint32, bool) {
	if pc < 0 || pc+1 >= len(c.code) {
		return 0, false
	}
	info, err := op.GetInfo(c.code[pc].Op())
	if err != nil || !info.Aux {
		return 0, false
	}
	return uint32(c.code[pc+1]), true
}

// ConstantOperand returns the constant pool index referenced by the
// instruction at pc. The second result is false if the opcode takes no
// constant operand.
func (c *Chunk) ConstantOperand(pc int) (int, bool) {
	if pc < 0 || pc >= len(c.code) {
		return 0, false
	}
	ref, ok := constantRefs[c.code[pc].Op()]
	if !ok {
		return 0, false
	}
	return ref.index(c.code, pc)
}

// Captures returns the capture list of the closure created by the
// NEWCLOSURE or DUPCLOSURE instruction at pc. The list is the run of CAPTURE
// instructions that immediately follows it.
func (c *Chunk) Captures(pc int) ([]Capture, error) {
	if pc < 0 || pc >= len(c.code) {
		return nil, errors.Newf(errors.E1006, "pc %d out of range", pc)
	}
	if !createsClosure(c.code[pc].Op()) {
		return nil, errors.Newf(errors.E1006, "pc %d: opcode %s does not create a closure",
			pc, c.code[pc].Op())
	}
	var captures []Capture
	for i := pc + 1; i < len(c.code) && c.code[i].Op() == op.Capture; i++ {
		capture, err := DecodeCapture(c.code[i])
		if err != nil {
			return nil, errors.Prefix(err, "pc %d", i)
		}
		captures = append(captures, capture)
	}
	return captures, nil
}

// Stats contains statistics about a chunk.
type Stats struct {
	// InstructionCount is the number of instructions, not counting
	// auxiliary words.
	InstructionCount int
	// WordCount is the number of 32-bit words in the instruction stream.
	WordCount     int
	ConstantCount int
	ClosureCount  int
	CaptureCount  int
}

// Stats returns statistics about the chunk. Words that cannot be decoded
// are counted as single instructions.
func (c *Chunk) Stats() Stats {
	stats := Stats{
		WordCount:     len(c.code),
		ConstantCount: len(c.constants),
	}
	for pc := 0; pc < len(c.code); {
		stats.InstructionCount++
		code := c.code[pc].Op()
		switch {
		case createsClosure(code):
			stats.ClosureCount++
		case code == op.Capture:
			stats.CaptureCount++
		}
		pc += instructionSize(code)
	}
	return stats
}

func instructionSize(code op.Code) int {
	info, err := op.GetInfo(code)
	if err != nil {
		return 1
	}
	return info.Size()
}
