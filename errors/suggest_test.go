package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"loadk", "loadkx", 1},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			require.Equal(t, tt.want, editDistance(tt.a, tt.b))
			require.Equal(t, tt.want, editDistance(tt.b, tt.a))
		})
	}
}

func TestSuggest(t *testing.T) {
	flags := []string{"LuauVectorLib", "LuauBufferLib", "LuauFastintSupport"}
	require.Equal(t, []string{"LuauVectorLib"}, Suggest("LuauVecterLib", flags))
	require.Empty(t, Suggest("LuauVectorLib", flags))
	require.Empty(t, Suggest("Completely", flags))
	require.Empty(t, Suggest("", flags))

	// Short names only tolerate a single edit.
	require.Equal(t, []string{"ADD", "AND"}, Suggest("AD", []string{"ADD", "AND", "OR"}))
	require.Empty(t, Suggest("XY", []string{"ADD"}))
}

func TestDidYouMean(t *testing.T) {
	require.Equal(t, " (did you mean LOADK?)", DidYouMean("LODK", []string{"LOADK", "MOVE"}))
	require.Equal(t, " (did you mean one of ADD, AND?)", DidYouMean("AXD", []string{"ADD", "AND"}))
	require.Equal(t, "", DidYouMean("zzzz", []string{"LOADK"}))
}
