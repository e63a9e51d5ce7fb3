package bytecode

import (
	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/deepnoodle-ai/lbc/op"
)

// Step is one instruction produced by an InstructionIter. The auxiliary
// word, if the opcode has one, is carried with it.
type Step struct {
	PC     int
	Info   op.Info
	Word   Instruction
	Aux    uint32
	HasAux bool
}

// Decode decodes the step's instruction word.
func (s Step) Decode() (Decoded, error) {
	return Decode(s.Word)
}

// InstructionIter iterates over the instructions of a Chunk, skipping
// auxiliary words.
type InstructionIter struct {
	chunk *Chunk
	pc    int
	err   error
}

// NewInstructionIter creates a new instruction iterator for the given chunk.
func NewInstructionIter(chunk *Chunk) *InstructionIter {
	return &InstructionIter{chunk: chunk}
}

// Next returns the next instruction. It returns false at the end of the
// stream or at the first word that cannot be decoded; Err tells them apart.
func (i *InstructionIter) Next() (Step, bool) {
	if i.err != nil || i.pc >= len(i.chunk.code) {
		return Step{}, false
	}
	word := i.chunk.code[i.pc]
	info, err := op.GetInfo(word.Op())
	if err != nil {
		i.err = errors.Prefix(err, "pc %d", i.pc)
		return Step{}, false
	}
	step := Step{PC: i.pc, Info: info, Word: word}
	if info.Aux {
		if i.pc+1 >= len(i.chunk.code) {
			i.err = errors.Newf(errors.E1005, "pc %d: %s is missing its auxiliary word", i.pc, info.Name)
			return Step{}, false
		}
		step.Aux = uint32(i.chunk.code[i.pc+1])
		step.HasAux = true
	}
	i.pc += info.Size()
	return step, true
}

// Err returns the error that stopped the iteration, if any.
func (i *InstructionIter) Err() error {
	return i.err
}

// All collects the remaining instructions.
func (i *InstructionIter) All() ([]Step, error) {
	var steps []Step
	for {
		step, ok := i.Next()
		if !ok {
			break
		}
		steps = append(steps, step)
	}
	return steps, i.Err()
}
