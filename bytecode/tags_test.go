package bytecode

import (
	stderrors "errors"
	"testing"

	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/stretchr/testify/require"
)

func TestDecodeConstantTag(t *testing.T) {
	for b := 0; b < 256; b++ {
		tag, err := DecodeConstantTag(byte(b))
		if b <= 7 {
			require.Nil(t, err)
			require.Equal(t, byte(b), tag.Byte())
			require.NotEqual(t, "invalid", tag.String())
		} else {
			require.True(t, stderrors.Is(err, errors.ErrMalformedTag), "tag %d", b)
		}
	}
	require.Equal(t, "vector", ConstantVector.String())
	require.Equal(t, "invalid", ConstantTag(8).String())
}

func TestDecodeTypeTag(t *testing.T) {
	tests := []struct {
		b     byte
		valid bool
	}{
		{0, true},
		{9, true},
		{10, false},
		{64, false},
		{127, false},
		{128, true},
		{150, true},
		{191, true},
		{192, false},
		{255, false},
	}
	for _, tt := range tests {
		tag, err := DecodeTypeTag(tt.b)
		if tt.valid {
			require.Nil(t, err, "tag %d", tt.b)
			require.Equal(t, tt.b, tag.Byte())
		} else {
			require.True(t, stderrors.Is(err, errors.ErrMalformedTag), "tag %d", tt.b)
		}
	}
}

func TestTypeTagBandsDoNotOverlap(t *testing.T) {
	for b := 0; b < 256; b++ {
		tag := TypeTag(b)
		core := tag <= TypeVector
		require.False(t, core && tag.IsTaggedUserdata())
		require.Equal(t, core || (b >= 128 && b < 192), tag.Valid())
	}
}

func TestTaggedUserdata(t *testing.T) {
	tag, err := TaggedUserdata(0)
	require.Nil(t, err)
	require.Equal(t, TypeTag(128), tag)
	require.True(t, tag.IsTaggedUserdata())

	tag, err = TaggedUserdata(63)
	require.Nil(t, err)
	require.Equal(t, TypeTag(191), tag)
	n, ok := tag.UserdataTag()
	require.True(t, ok)
	require.Equal(t, 63, n)
	require.Equal(t, "userdata#63", tag.String())

	_, err = TaggedUserdata(64)
	require.True(t, stderrors.Is(err, errors.ErrMalformedTag))
	_, err = TaggedUserdata(-1)
	require.True(t, stderrors.Is(err, errors.ErrMalformedTag))

	_, ok = TypeUserdata.UserdataTag()
	require.False(t, ok)
	require.Equal(t, "userdata", TypeUserdata.String())
	require.Equal(t, "invalid", TypeTag(100).String())
}

func TestImportIDs(t *testing.T) {
	id, err := EncodeImport(1, 2, 3)
	require.Nil(t, err)
	require.Equal(t, uint32(3<<30|1<<20|2<<10|3), id)
	path, err := DecodeImport(id)
	require.Nil(t, err)
	require.Equal(t, []uint32{1, 2, 3}, path)

	id, err = EncodeImport(1023)
	require.Nil(t, err)
	path, err = DecodeImport(id)
	require.Nil(t, err)
	require.Equal(t, []uint32{1023}, path)

	_, err = EncodeImport()
	require.True(t, stderrors.Is(err, errors.ErrFieldOverflow))
	_, err = EncodeImport(1, 2, 3, 4)
	require.True(t, stderrors.Is(err, errors.ErrFieldOverflow))
	_, err = EncodeImport(1024)
	require.True(t, stderrors.Is(err, errors.ErrFieldOverflow))

	_, err = DecodeImport(0x000fffff)
	require.True(t, stderrors.Is(err, errors.ErrInvalidChunk))

	// Bits in slots past the path length are rejected.
	_, err = DecodeImport(1<<30 | 5<<20 | 7)
	require.True(t, stderrors.Is(err, errors.ErrInvalidChunk))
	_, err = DecodeImport(2<<30 | 1<<20 | 2<<10 | 1)
	require.True(t, stderrors.Is(err, errors.ErrInvalidChunk))
	path, err = DecodeImport(2<<30 | 1<<20 | 2<<10)
	require.Nil(t, err)
	require.Equal(t, []uint32{1, 2}, path)
}
