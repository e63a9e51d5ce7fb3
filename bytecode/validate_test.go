package bytecode

import (
	stderrors "errors"
	"testing"

	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/deepnoodle-ai/lbc/op"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func mustEncode(t *testing.T, d Decoded) Instruction {
	t.Helper()
	w, err := Encode(d)
	require.Nil(t, err)
	return w
}

func TestValidateAggregatesErrors(t *testing.T) {
	chunk := NewChunk(ChunkParams{
		Header:    Header{Version: 3},
		Constants: []Constant{StringConstant("x"), TableConstant(5)},
		Code: []Instruction{
			Instruction(0x48),                                // undefined opcode 72
			mustEncode(t, AD{Op: op.LoadK, A: 0, D: 9}),      // missing constant
			mustEncode(t, ABC{Op: op.Capture, A: 0, B: 0}),   // not after a closure
			mustEncode(t, AD{Op: op.DupTable, A: 0, D: 0}),   // wrong constant tag
			mustEncode(t, ABC{Op: op.GetGlobal, A: 0, C: 0}), // aux word missing
		},
	})
	err := Validate(chunk)
	require.NotNil(t, err)

	var merr *multierror.Error
	require.True(t, stderrors.As(err, &merr))
	require.Len(t, merr.Errors, 6)
	require.True(t, stderrors.Is(err, errors.ErrUnknownOpcode))
	require.True(t, stderrors.Is(err, errors.ErrTruncatedChunk))
	require.True(t, stderrors.Is(err, errors.ErrInvalidChunk))

	require.Equal(t, errors.E1006, errors.CodeOf(merr.Errors[0])) // table key
	require.Equal(t, errors.E1002, errors.CodeOf(merr.Errors[1]))
	require.Contains(t, merr.Errors[1].Error(), "pc 0")
	require.Contains(t, merr.Errors[2].Error(), "missing constant 9")
	require.Contains(t, merr.Errors[3].Error(), "CAPTURE does not follow a closure")
	require.Contains(t, merr.Errors[4].Error(), "expects a table constant")
	require.Contains(t, merr.Errors[5].Error(), "GETGLOBAL is missing its auxiliary word")
}

func TestValidateCaptureKinds(t *testing.T) {
	chunk := NewChunk(ChunkParams{
		Header: Header{Version: 3},
		Code: []Instruction{
			mustEncode(t, AD{Op: op.NewClosure, A: 0, D: 0}),
			Instruction(uint32(op.Capture) | 3<<8),
			mustEncode(t, ABC{Op: op.Return, A: 0, B: 1}),
		},
	})
	err := Validate(chunk)
	require.True(t, stderrors.Is(err, errors.ErrInvalidCaptureKind))
}

func TestValidateAuxWordsAreNotDecoded(t *testing.T) {
	// The aux word of GETGLOBAL is 0x000000ff, which would be an undefined
	// opcode if decoded as an instruction.
	chunk := NewChunk(ChunkParams{
		Header:    Header{Version: 3},
		Constants: []Constant{StringConstant("g")},
		Code: []Instruction{
			mustEncode(t, ABC{Op: op.GetGlobal, A: 0}),
			Instruction(0),
			mustEncode(t, ABC{Op: op.LoadKX, A: 1}),
			Instruction(0),
		},
	})
	require.Nil(t, Validate(chunk))

	bad := NewChunk(ChunkParams{
		Header:    Header{Version: 3},
		Constants: []Constant{StringConstant("g")},
		Code: []Instruction{
			mustEncode(t, ABC{Op: op.GetGlobal, A: 0}),
			Instruction(0xff),
		},
	})
	err := Validate(bad)
	require.Contains(t, err.Error(), "missing constant 255")
	require.False(t, stderrors.Is(err, errors.ErrUnknownOpcode))
}

func TestValidateImportPath(t *testing.T) {
	id, err := EncodeImport(0, 4)
	require.Nil(t, err)
	chunk := NewChunk(ChunkParams{
		Header:    Header{Version: 3},
		Constants: []Constant{StringConstant("math"), ImportConstant(id)},
	})
	err = Validate(chunk)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "import path refers to missing constant 4")
}

func TestValidateImportPathNamesStrings(t *testing.T) {
	id, err := EncodeImport(0)
	require.Nil(t, err)
	chunk := NewChunk(ChunkParams{
		Header:    Header{Version: 3},
		Constants: []Constant{NumberConstant(42), ImportConstant(id)},
		Code: []Instruction{
			mustEncode(t, AD{Op: op.GetImport, A: 0, D: 1}),
			Instruction(id),
		},
	})
	err = Validate(chunk)
	require.NotNil(t, err)
	require.True(t, stderrors.Is(err, errors.ErrInvalidChunk))
	require.Contains(t, err.Error(), "import path names a number constant 0")

	b := NewBuilder(3)
	k := b.AddConstant(NumberConstant(42))
	imp := b.AddConstant(ImportConstant(id))
	require.Equal(t, 0, k)
	b.EmitAD(op.GetImport, 0, uint16(imp))
	b.EmitAux(id)
	_, err = b.Build()
	require.NotNil(t, err)
}

func TestValidateRejectsBadHeader(t *testing.T) {
	err := Validate(NewChunk(ChunkParams{Header: Header{Version: 0}}))
	require.True(t, stderrors.Is(err, errors.ErrVersionRejected))
}

func TestValidateEmptyChunk(t *testing.T) {
	require.Nil(t, Validate(NewChunk(ChunkParams{Header: Header{Version: 1}})))
}
