package bytecode

import (
	"github.com/deepnoodle-ai/lbc/op"
)

// Builder assembles a chunk. It is the producer side counterpart of
// Unmarshal and is used by compilers and tests. The first encoding error is
// recorded and returned by Build; later emits after an error are ignored.
type Builder struct {
	header    Header
	constants []Constant
	code      []Instruction
	err       error
}

// NewBuilder returns a builder for a chunk with the given bytecode version.
func NewBuilder(version uint8) *Builder {
	return &Builder{header: Header{Version: version}}
}

// WithTypes marks the chunk as typed with the given type version.
func (b *Builder) WithTypes(typesVersion uint8) *Builder {
	b.header.Typed = true
	b.header.TypesVersion = typesVersion
	return b
}

// AddConstant appends a constant and returns its index. Equal constants
// are stored once.
func (b *Builder) AddConstant(c Constant) int {
	for i, existing := range b.constants {
		if existing.Equal(c) {
			return i
		}
	}
	b.constants = append(b.constants, c)
	return len(b.constants) - 1
}

// PC returns the index the next emitted word will occupy.
func (b *Builder) PC() int {
	return len(b.code)
}

func (b *Builder) emit(word Instruction, err error) int {
	if b.err != nil {
		return -1
	}
	if err != nil {
		b.err = err
		return -1
	}
	b.code = append(b.code, word)
	return len(b.code) - 1
}

// EmitABC appends an ABC-format instruction and returns its pc.
func (b *Builder) EmitABC(code op.Code, a, bField, c uint8) int {
	return b.emit(EncodeABC(code, a, bField, c))
}

// EmitAD appends an AD-format instruction and returns its pc.
func (b *Builder) EmitAD(code op.Code, a uint8, d uint16) int {
	return b.emit(EncodeAD(code, a, d))
}

// EmitE appends an E-format instruction and returns its pc.
func (b *Builder) EmitE(code op.Code, e uint32) int {
	return b.emit(EncodeE(code, e))
}

// EmitAux appends a raw auxiliary word.
func (b *Builder) EmitAux(aux uint32) int {
	return b.emit(Instruction(aux), nil)
}

// EmitCapture appends a CAPTURE instruction.
func (b *Builder) EmitCapture(kind CaptureKind, index uint8) int {
	return b.emit(EncodeCapture(Capture{Kind: kind, Index: index}))
}

// Build returns the assembled chunk after validating it.
func (b *Builder) Build() (*Chunk, error) {
	if b.err != nil {
		return nil, b.err
	}
	chunk := NewChunk(ChunkParams{
		Header:    b.header,
		Constants: b.constants,
		Code:      b.code,
	})
	if err := Validate(chunk); err != nil {
		return nil, err
	}
	return chunk, nil
}
