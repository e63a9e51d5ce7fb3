package flags

import (
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/lbc/errors"
)

func TestApplyOverrides(t *testing.T) {
	r := NewDefault()
	err := r.ApplyOverrides(map[string]bool{
		VectorLib:            false,
		TailCallOptimization: false,
	})
	require.NoError(t, err)
	require.False(t, r.Get(VectorLib))
	require.False(t, r.Get(TailCallOptimization))
	require.True(t, r.Get(BufferLib))
}

func TestApplyOverridesCollectsErrors(t *testing.T) {
	r := NewDefault()
	err := r.ApplyOverrides(map[string]bool{
		RecursionLimit: false,
		"Nope":         true,
		VectorLib:      false,
	})
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 2)
	require.ErrorIs(t, merr.Errors[0], errors.ErrImmutableFlagWrite)
	require.ErrorIs(t, merr.Errors[1], errors.ErrUnknownFlag)

	// Valid overrides still apply.
	require.False(t, r.Get(VectorLib))
	require.True(t, r.Get(RecursionLimit))
}

func TestLoadOverrides(t *testing.T) {
	r := NewDefault()
	doc := `
[flags]
LuauVectorLib = false
LuauStringFormatFixC = false
`
	require.NoError(t, r.LoadOverrides(strings.NewReader(doc)))
	require.False(t, r.Get(VectorLib))
	require.False(t, r.Get(StringFormatFixC))
	require.True(t, r.Get(FastintSupport))
}

func TestLoadOverridesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"syntax", "[flags\n", "parsing flag overrides"},
		{"wrong type", "[flags]\nLuauVectorLib = 3\n", "parsing flag overrides"},
		{"extra key", "verbose = true\n", "unexpected keys verbose"},
		{"static", "[flags]\nLuauRecursionLimit = false\n", "E3002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDefault().LoadOverrides(strings.NewReader(tt.doc))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		value   bool
		wantErr bool
	}{
		{"LuauVectorLib=false", "LuauVectorLib", false, false},
		{"LuauVectorLib = true", "LuauVectorLib", true, false},
		{"LuauBufferLib", "LuauBufferLib", true, false},
		{"LuauBufferLib=0", "LuauBufferLib", false, false},
		{"=true", "", false, true},
		{"X=maybe", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, value, err := ParseAssignment(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.name, name)
			require.Equal(t, tt.value, value)
		})
	}
}
