package bytecode

import (
	stderrors "errors"
	"testing"

	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/deepnoodle-ai/lbc/op"
	"github.com/stretchr/testify/require"
)

func TestValidateCaptureKind(t *testing.T) {
	require.True(t, ValidateCaptureKind(CaptureValue))
	require.True(t, ValidateCaptureKind(CaptureReference))
	require.True(t, ValidateCaptureKind(CaptureUpvalue))
	require.False(t, ValidateCaptureKind(CaptureKind(3)))
	require.False(t, ValidateCaptureKind(CaptureKind(255)))
}

func TestDecodeCaptureKind(t *testing.T) {
	k, err := DecodeCaptureKind(1)
	require.Nil(t, err)
	require.Equal(t, CaptureReference, k)
	require.Equal(t, "REF", k.String())

	_, err = DecodeCaptureKind(3)
	require.True(t, stderrors.Is(err, errors.ErrInvalidCaptureKind))
	require.Equal(t, "invalid", CaptureKind(3).String())
}

func TestCaptureRoundTrip(t *testing.T) {
	for _, c := range []Capture{
		{Kind: CaptureValue, Index: 0},
		{Kind: CaptureReference, Index: 17},
		{Kind: CaptureUpvalue, Index: 255},
	} {
		word, err := EncodeCapture(c)
		require.Nil(t, err)
		require.Equal(t, op.Capture, word.Op())
		got, err := DecodeCapture(word)
		require.Nil(t, err)
		require.Equal(t, c, got)
	}

	_, err := EncodeCapture(Capture{Kind: 9})
	require.True(t, stderrors.Is(err, errors.ErrInvalidCaptureKind))

	_, err = DecodeCapture(Instruction(op.Move))
	require.True(t, stderrors.Is(err, errors.ErrInvalidChunk))

	_, err = DecodeCapture(Instruction(uint32(op.Capture) | 5<<8))
	require.True(t, stderrors.Is(err, errors.ErrInvalidCaptureKind))
}

func TestChunkCaptures(t *testing.T) {
	b := NewBuilder(3)
	b.EmitAD(op.NewClosure, 0, 0)
	b.EmitCapture(CaptureValue, 1)
	b.EmitCapture(CaptureReference, 2)
	b.EmitCapture(CaptureUpvalue, 0)
	b.EmitABC(op.Return, 0, 2, 0)
	chunk, err := b.Build()
	require.Nil(t, err)

	captures, err := chunk.Captures(0)
	require.Nil(t, err)
	require.Equal(t, []Capture{
		{Kind: CaptureValue, Index: 1},
		{Kind: CaptureReference, Index: 2},
		{Kind: CaptureUpvalue, Index: 0},
	}, captures)

	_, err = chunk.Captures(4)
	require.True(t, stderrors.Is(err, errors.ErrInvalidChunk))
	_, err = chunk.Captures(99)
	require.True(t, stderrors.Is(err, errors.ErrInvalidChunk))
}

func TestChunkCapturesEmpty(t *testing.T) {
	b := NewBuilder(3)
	k := b.AddConstant(ClosureConstant(1))
	b.EmitAD(op.DupClosure, 0, uint16(k))
	b.EmitABC(op.Return, 0, 2, 0)
	chunk, err := b.Build()
	require.Nil(t, err)
	captures, err := chunk.Captures(0)
	require.Nil(t, err)
	require.Empty(t, captures)
}

func TestChunkCapturesRejectsBadKind(t *testing.T) {
	chunk := NewChunk(ChunkParams{
		Header: Header{Version: 3},
		Code: []Instruction{
			Instruction(op.NewClosure),
			Instruction(uint32(op.Capture) | 7<<8),
		},
	})
	_, err := chunk.Captures(0)
	require.True(t, stderrors.Is(err, errors.ErrInvalidCaptureKind))
}
