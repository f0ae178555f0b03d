package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://10.0.0.5/api", "-t", "9", "-d", "/tmp/ot", "-l", "debug", "-i", "10"},
			expected: &Config{ServerURL: "http://10.0.0.5/api", RequestTimeout: 9 * time.Second, DataDir: "/tmp/ot", LogLevel: "debug", OnlineCheckInterval: 10 * time.Second}},
		{name: "unknown flags are ignored", args: []string{"cmd", "-c", "cfg.json", "-x", "-a=http://h/api"},
			expected: &Config{ServerURL: "http://h/api"}},
		{name: "incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "5s"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
