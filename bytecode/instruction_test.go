package bytecode

import (
	stderrors "errors"
	"testing"

	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/deepnoodle-ai/lbc/op"
	"github.com/stretchr/testify/require"
)

func TestFieldExtraction(t *testing.T) {
	word := Instruction(0xddccbbaa)
	require.Equal(t, op.Code(0xaa), word.Op())
	require.Equal(t, uint8(0xbb), word.A())
	require.Equal(t, uint8(0xcc), word.B())
	require.Equal(t, uint8(0xdd), word.C())
	require.Equal(t, uint16(0xddcc), word.D())
	require.Equal(t, uint32(0xddccbb), word.E())
	require.Equal(t, "ddccbbaa", word.String())
}

func TestPack(t *testing.T) {
	word, err := Pack(op.FormatABC, uint32(op.Add), 1, 2, 3)
	require.Nil(t, err)
	require.Equal(t, Instruction(0x03020121), word)

	word, err = Pack(op.FormatAD, uint32(op.LoadK), 4, 0x1234)
	require.Nil(t, err)
	require.Equal(t, Instruction(0x12340405), word)

	word, err = Pack(op.FormatE, uint32(op.JumpX), 0xabcdef)
	require.Nil(t, err)
	require.Equal(t, Instruction(0xabcdef43), word)

	word, err = Pack(op.FormatABC, uint32(op.LoadNil), 7)
	require.Nil(t, err)
	require.Equal(t, Instruction(0x00000702), word)
}

func TestPackOverflow(t *testing.T) {
	tests := []struct {
		name   string
		format op.Format
		code   uint32
		fields []uint32
	}{
		{"opcode", op.FormatABC, 256, nil},
		{"A", op.FormatABC, 0, []uint32{256, 0, 0}},
		{"B", op.FormatABC, 0, []uint32{0, 256, 0}},
		{"C", op.FormatABC, 0, []uint32{0, 0, 256}},
		{"AD.A", op.FormatAD, 0, []uint32{256, 0}},
		{"D", op.FormatAD, 0, []uint32{0, 1 << 16}},
		{"E", op.FormatE, 0, []uint32{1 << 24}},
		{"too many fields", op.FormatAD, 0, []uint32{1, 2, 3}},
		{"unknown format", op.Format(7), 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(tt.format, tt.code, tt.fields...)
			require.True(t, stderrors.Is(err, errors.ErrFieldOverflow), "got %v", err)
		})
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	for code := uint32(0); code < 256; code += 17 {
		for _, a := range []uint32{0, 1, 127, 255} {
			for _, b := range []uint32{0, 9, 128, 255} {
				for _, c := range []uint32{0, 64, 255} {
					word, err := Pack(op.FormatABC, code, a, b, c)
					require.Nil(t, err)
					gotOp, fields := Unpack(op.FormatABC, word)
					require.Equal(t, op.Code(code), gotOp)
					require.Equal(t, []uint32{a, b, c}, fields)
				}
			}
			for _, d := range []uint32{0, 1, 0x7fff, 0x8000, 0xffff} {
				word, err := Pack(op.FormatAD, code, a, d)
				require.Nil(t, err)
				gotOp, fields := Unpack(op.FormatAD, word)
				require.Equal(t, op.Code(code), gotOp)
				require.Equal(t, []uint32{a, d}, fields)
			}
		}
		for _, e := range []uint32{0, 1, 0x7fffff, 0x800000, 0xffffff} {
			word, err := Pack(op.FormatE, code, e)
			require.Nil(t, err)
			gotOp, fields := Unpack(op.FormatE, word)
			require.Equal(t, op.Code(code), gotOp)
			require.Equal(t, []uint32{e}, fields)
		}
	}
}

func TestUnpackIsTotal(t *testing.T) {
	for _, word := range []Instruction{0, 0xffffffff, 0x80000001, 0x12345678} {
		for _, f := range []op.Format{op.FormatABC, op.FormatAD, op.FormatE} {
			_, fields := Unpack(f, word)
			require.Len(t, fields, f.FieldCount())
		}
	}
}

func TestDecode(t *testing.T) {
	d, err := Decode(0x03020121)
	require.Nil(t, err)
	require.Equal(t, ABC{Op: op.Add, A: 1, B: 2, C: 3}, d)

	d, err = Decode(0x12340405)
	require.Nil(t, err)
	require.Equal(t, AD{Op: op.LoadK, A: 4, D: 0x1234}, d)

	d, err = Decode(0xabcdef43)
	require.Nil(t, err)
	require.Equal(t, E{Op: op.JumpX, E: 0xabcdef}, d)

	_, err = Decode(0x00000047)
	require.True(t, stderrors.Is(err, errors.ErrUnknownOpcode))
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	for _, info := range op.All() {
		word := Instruction(0xa5c3f100) | Instruction(info.Code)
		d, err := Decode(word)
		require.Nil(t, err)
		require.Equal(t, info.Format, d.Format())
		require.Equal(t, info.Code, d.Opcode())
		back, err := Encode(d)
		require.Nil(t, err)
		require.Equal(t, word, back)
	}
}

func TestEncodeChecksFormat(t *testing.T) {
	_, err := EncodeABC(op.LoadK, 1, 2, 3)
	require.True(t, stderrors.Is(err, errors.ErrFieldOverflow))

	_, err = EncodeAD(op.Add, 1, 2)
	require.True(t, stderrors.Is(err, errors.ErrFieldOverflow))

	_, err = EncodeE(op.JumpX, 1<<24)
	require.True(t, stderrors.Is(err, errors.ErrFieldOverflow))

	_, err = EncodeABC(op.Code(71), 0, 0, 0)
	require.True(t, stderrors.Is(err, errors.ErrUnknownOpcode))
}

func TestSignedOperands(t *testing.T) {
	word, err := EncodeAD(op.JumpBack, 0, uint16(0xfffe))
	require.Nil(t, err)
	d, err := Decode(word)
	require.Nil(t, err)
	require.Equal(t, int16(-2), d.(AD).SignedD())

	word, err = EncodeSignedE(op.JumpX, -5)
	require.Nil(t, err)
	d, err = Decode(word)
	require.Nil(t, err)
	require.Equal(t, int32(-5), d.(E).SignedE())

	word, err = EncodeSignedE(op.JumpX, 1<<23-1)
	require.Nil(t, err)
	d, err = Decode(word)
	require.Nil(t, err)
	require.Equal(t, int32(1<<23-1), d.(E).SignedE())

	_, err = EncodeSignedE(op.JumpX, 1<<23)
	require.True(t, stderrors.Is(err, errors.ErrFieldOverflow))
	_, err = EncodeSignedE(op.JumpX, -(1<<23)-1)
	require.True(t, stderrors.Is(err, errors.ErrFieldOverflow))
}
