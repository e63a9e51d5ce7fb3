package bytecode

import (
	"fmt"

	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/deepnoodle-ai/lbc/op"
)

// Instruction is a packed 32-bit instruction word. The opcode occupies bits
// 0-7 in every format; the remaining 24 bits are split according to the
// opcode's declared format:
//
//	ABC: A = bits 8-15, B = bits 16-23, C = bits 24-31
//	AD:  A = bits 8-15, D = bits 16-31
//	E:   E = bits 8-31
type Instruction uint32

// Field widths in bits.
const (
	OpBits = 8
	ABits  = 8
	BBits  = 8
	CBits  = 8
	DBits  = 16
	EBits  = 24
)

// Maximum field values.
const (
	MaxA = 1<<ABits - 1
	MaxB = 1<<BBits - 1
	MaxC = 1<<CBits - 1
	MaxD = 1<<DBits - 1
	MaxE = 1<<EBits - 1
)

// Op returns the opcode field. The value is not checked against the opcode
// table.
func (i Instruction) Op() op.Code { return op.Code(i & 0xff) }

// A returns bits 8-15.
func (i Instruction) A() uint8 { return uint8(i >> 8) }

// B returns bits 16-23.
func (i Instruction) B() uint8 { return uint8(i >> 16) }

// C returns bits 24-31.
func (i Instruction) C() uint8 { return uint8(i >> 24) }

// D returns bits 16-31.
func (i Instruction) D() uint16 { return uint16(i >> 16) }

// E returns bits 8-31.
func (i Instruction) E() uint32 { return uint32(i>>8) & MaxE }

// String returns the instruction word in hex.
func (i Instruction) String() string {
	return fmt.Sprintf("%08x", uint32(i))
}

type field struct {
	name  string
	max   uint32
	shift uint
}

var formatFields = map[op.Format][]field{
	op.FormatABC: {{"A", MaxA, 8}, {"B", MaxB, 16}, {"C", MaxC, 24}},
	op.FormatAD:  {{"A", MaxA, 8}, {"D", MaxD, 16}},
	op.FormatE:   {{"E", MaxE, 8}},
}

// Pack packs an opcode and its operand fields into an instruction word using
// the given format. Fields are given in layout order (A, B, C for ABC; A, D
// for AD; E for E); missing trailing fields are zero. Pack fails with a field
// overflow error if the opcode or any field does not fit its bit width, or if
// more fields are given than the format has.
//
// Pack does not consult the opcode table. Use Encode to also check that the
// format is the one the opcode declares.
func Pack(format op.Format, code uint32, fields ...uint32) (Instruction, error) {
	layout, ok := formatFields[format]
	if !ok {
		return 0, errors.Newf(errors.E2001, "unknown instruction format %d", format)
	}
	if code > 0xff {
		return 0, errors.Newf(errors.E2001, "opcode %d exceeds %d bits", code, OpBits)
	}
	if len(fields) > len(layout) {
		return 0, errors.Newf(errors.E2001, "format %s takes %d fields, got %d",
			format, len(layout), len(fields))
	}
	word := code
	for i, v := range fields {
		f := layout[i]
		if v > f.max {
			return 0, errors.Newf(errors.E2001, "field %s value %d exceeds maximum %d",
				f.name, v, f.max)
		}
		word |= v << f.shift
	}
	return Instruction(word), nil
}

// Unpack splits an instruction word into its opcode and operand fields
// according to the given format. It never fails. The caller is responsible
// for using the format the opcode table declares for the returned opcode;
// any other format yields meaningless fields.
func Unpack(format op.Format, word Instruction) (op.Code, []uint32) {
	switch format {
	case op.FormatAD:
		return word.Op(), []uint32{uint32(word.A()), uint32(word.D())}
	case op.FormatE:
		return word.Op(), []uint32{word.E()}
	default:
		return word.Op(), []uint32{uint32(word.A()), uint32(word.B()), uint32(word.C())}
	}
}

// Decoded is an instruction with its operand fields already extracted
// according to the opcode's declared format. It is one of ABC, AD or E.
type Decoded interface {
	Opcode() op.Code
	Format() op.Format
	Word() Instruction
}

// ABC is a decoded instruction with three 8-bit operands.
type ABC struct {
	Op op.Code
	A  uint8
	B  uint8
	C  uint8
}

// AD is a decoded instruction with an 8-bit A and a 16-bit D operand.
type AD struct {
	Op op.Code
	A  uint8
	D  uint16
}

// E is a decoded instruction with a single 24-bit operand.
type E struct {
	Op op.Code
	E  uint32
}

func (i ABC) Opcode() op.Code   { return i.Op }
func (i ABC) Format() op.Format { return op.FormatABC }
func (i ABC) Word() Instruction {
	return Instruction(uint32(i.Op) | uint32(i.A)<<8 | uint32(i.B)<<16 | uint32(i.C)<<24)
}

func (i AD) Opcode() op.Code   { return i.Op }
func (i AD) Format() op.Format { return op.FormatAD }
func (i AD) Word() Instruction {
	return Instruction(uint32(i.Op) | uint32(i.A)<<8 | uint32(i.D)<<16)
}

// SignedD returns D interpreted as a two's complement offset.
func (i AD) SignedD() int16 { return int16(i.D) }

func (i E) Opcode() op.Code   { return i.Op }
func (i E) Format() op.Format { return op.FormatE }
func (i E) Word() Instruction {
	return Instruction(uint32(i.Op) | (i.E&MaxE)<<8)
}

// SignedE returns E interpreted as a 24-bit two's complement offset.
func (i E) SignedE() int32 { return int32(i.E<<8) >> 8 }

// Decode extracts the fields of an instruction word using the format the
// opcode table declares for its opcode. It fails only for undefined opcodes.
func Decode(word Instruction) (Decoded, error) {
	info, err := op.GetInfo(word.Op())
	if err != nil {
		return nil, err
	}
	switch info.Format {
	case op.FormatAD:
		return AD{Op: info.Code, A: word.A(), D: word.D()}, nil
	case op.FormatE:
		return E{Op: info.Code, E: word.E()}, nil
	default:
		return ABC{Op: info.Code, A: word.A(), B: word.B(), C: word.C()}, nil
	}
}

// Encode packs a decoded instruction back into a word. The opcode must be
// defined and declared with the shape of d.
func Encode(d Decoded) (Instruction, error) {
	info, err := op.GetInfo(d.Opcode())
	if err != nil {
		return 0, err
	}
	if info.Format != d.Format() {
		return 0, errors.Newf(errors.E2001, "opcode %s uses format %s, not %s",
			info.Name, info.Format, d.Format())
	}
	if e, ok := d.(E); ok && e.E > MaxE {
		return 0, errors.Newf(errors.E2001, "field E value %d exceeds maximum %d", e.E, MaxE)
	}
	return d.Word(), nil
}

// EncodeABC packs an ABC-format instruction.
func EncodeABC(code op.Code, a, b, c uint8) (Instruction, error) {
	return Encode(ABC{Op: code, A: a, B: b, C: c})
}

// EncodeAD packs an AD-format instruction.
func EncodeAD(code op.Code, a uint8, d uint16) (Instruction, error) {
	return Encode(AD{Op: code, A: a, D: d})
}

// EncodeE packs an E-format instruction.
func EncodeE(code op.Code, e uint32) (Instruction, error) {
	return Encode(E{Op: code, E: e})
}

// EncodeSignedE packs an E-format instruction with a signed 24-bit offset.
func EncodeSignedE(code op.Code, offset int32) (Instruction, error) {
	if offset < -(1<<23) || offset >= 1<<23 {
		return 0, errors.Newf(errors.E2001, "field E offset %d exceeds 24 bits", offset)
	}
	return Encode(E{Op: code, E: uint32(offset) & MaxE})
}
