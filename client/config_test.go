package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want Config
		err  error
	}{
		{
			name: "defaults create a room",
			want: Config{Server: DefaultServer, Create: true, LogLevel: "info"},
		},
		{
			name: "join normalizes the code",
			args: []string{"-join", " ab12cd "},
			want: Config{Server: DefaultServer, Join: "AB12CD", LogLevel: "info"},
		},
		{
			name: "environment fallback",
			env:  map[string]string{"HEROGRID_SERVER": "ws://relay:9000/play", "HEROGRID_LOG_LEVEL": "debug"},
			want: Config{Server: "ws://relay:9000/play", Create: true, LogLevel: "debug"},
		},
		{
			name: "flag beats environment",
			args: []string{"-server", "ws://other/play"},
			env:  map[string]string{"HEROGRID_SERVER": "ws://relay:9000/play"},
			want: Config{Server: "ws://other/play", Create: true, LogLevel: "info"},
		},
		{
			name: "create and join conflict",
			args: []string{"-create", "-join", "ABCDEF"},
			err:  ErrConflictingMode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args, env(tt.env))
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsUnknownFlag(t *testing.T) {
	_, err := ParseFlags([]string{"-bogus"}, env(nil))
	assert.Error(t, err)
}
