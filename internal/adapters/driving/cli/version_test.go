package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		set  string
		want string
	}{
		{"1.2.0", "narrator version 1.2.0\n"},
		{"", "narrator version dev\n"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			prev := version
			defer func() { version = prev }()

			SetVersion(tt.set)
			out, err := execute(t, nil, "version")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
