package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute())
	assert.Equal(t, "gomembership dev\n", out.String())
}

func TestConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/gomembership")
	assert.Equal(t, "/etc/gomembership/", configPath())

	require.NoError(t, rootCmd.PersistentFlags().Set(keyConfig, "./conf/"))
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set(keyConfig, defaultConfigPath) })

	// the flag wins over the environment
	assert.Equal(t, "./conf/", configPath())
}
