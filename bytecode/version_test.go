package bytecode

import (
	stderrors "errors"
	"testing"

	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/stretchr/testify/require"
)

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name    string
		version uint8
		types   uint8
		typed   bool
		ok      bool
	}{
		{"version 0", 0, 1, false, false},
		{"version 1", 1, 0, false, true},
		{"version 2", 2, 0, false, true},
		{"version 3", 3, 0, false, true},
		{"version 4", 4, 1, false, false},
		{"version 255", 255, 1, true, false},
		{"typed version 0", 3, 0, true, false},
		{"typed version 1", 3, 1, true, true},
		{"typed version 2", 1, 2, true, true},
		{"typed version 3", 2, 3, true, false},
		{"untyped ignores type version", 2, 3, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVersion(tt.version, tt.types, tt.typed)
			if tt.ok {
				require.Nil(t, err)
			} else {
				require.True(t, stderrors.Is(err, errors.ErrVersionRejected), "got %v", err)
			}
		})
	}
}

func TestHeaderCheck(t *testing.T) {
	require.Nil(t, Header{Version: 2}.Check())
	err := Header{Version: 2, Typed: true}.Check()
	require.True(t, stderrors.Is(err, errors.ErrVersionRejected))
}
