package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "EssentiaBrowser/1.0", c.UserAgent)
	assert.Equal(t, 6, c.MaxConnections)
	assert.True(t, c.EnableConsciousness)
	assert.Equal(t, uint64(512<<20), c.MaxMemoryBytes)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BROWSER_USER_AGENT", "TestAgent/2.0")
	t.Setenv("BROWSER_MAX_CONNECTIONS", "12")
	t.Setenv("BROWSER_ENABLE_CONSCIOUSNESS", "false")

	c, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "TestAgent/2.0", c.UserAgent)
	assert.Equal(t, 12, c.MaxConnections)
	assert.False(t, c.EnableConsciousness)
	assert.Equal(t, uint64(512<<20), c.MaxMemoryBytes, "unset keys fall back to defaults")
}

func TestConfigFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("BROWSER_MAX_CONNECTIONS", "not-a-number")
	_, err := ConfigFromEnv()
	assert.Error(t, err)
}
