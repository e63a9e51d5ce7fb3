package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	tests := []struct {
		value     uint64
		alignment uint64
		expected  uint64
	}{
		{0, 1, 0},
		{0, 8, 0},
		{1, 8, 8},
		{7, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{13, 4, 16},
		{100, 64, 128},
		{4095, 4096, 4096},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, Align(tt.value, tt.alignment),
			"align(%d, %d)", tt.value, tt.alignment)
	}
}

func TestAlignProperties(t *testing.T) {
	for shift := 0; shift < 12; shift++ {
		alignment := uint32(1) << shift
		for value := uint32(0); value < 5000; value += 7 {
			got := Align(value, alignment)
			require.GreaterOrEqual(t, got, value)
			require.Zero(t, got%alignment)
			require.Less(t, got-value, alignment)
		}
	}
}

func TestAlignPanicsOnBadAlignment(t *testing.T) {
	require.Panics(t, func() { Align(uint32(5), uint32(3)) })
	require.Panics(t, func() { Align(uint32(5), uint32(0)) })
}

func TestAlignChecked(t *testing.T) {
	got, err := AlignChecked(uint16(10), uint16(4))
	require.Nil(t, err)
	require.Equal(t, uint16(12), got)

	_, err = AlignChecked(uint16(10), uint16(6))
	require.NotNil(t, err)
}

func TestIsPowerOfTwo(t *testing.T) {
	require.False(t, IsPowerOfTwo(uint(0)))
	require.True(t, IsPowerOfTwo(uint(1)))
	require.True(t, IsPowerOfTwo(uint(1024)))
	require.False(t, IsPowerOfTwo(uint(1023)))
	require.True(t, IsPowerOfTwo(uint64(1)<<63))
}

func TestLog2Ceil(t *testing.T) {
	tests := []struct {
		n        uint32
		expected uint32
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{1000, 10},
		{1024, 10},
		{1025, 11},
		{0xffffffff, 32},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, Log2Ceil(tt.n), "log2ceil(%d)", tt.n)
	}
}

func TestLog2CeilPowersOfTwo(t *testing.T) {
	for k := uint32(0); k < 32; k++ {
		require.Equal(t, k, Log2Ceil(1<<k))
	}
}

func TestLog2CeilIsSmallest(t *testing.T) {
	for n := uint32(1); n < 1<<12; n++ {
		k := Log2Ceil(n)
		require.GreaterOrEqual(t, uint64(1)<<k, uint64(n))
		if k > 0 {
			require.Less(t, uint64(1)<<(k-1), uint64(n))
		}
	}
}
