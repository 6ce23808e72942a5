package cmd

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lostfound/moderation/config"
)

func TestDashboardFlagsHaveNoEnvDefaults(t *testing.T) {
	assert.Equal(t, "", dashboardCmd.PersistentFlags().Lookup("api-url").DefValue)
	assert.Equal(t, "0s", dashboardCmd.PersistentFlags().Lookup("timeout").DefValue)
}

func TestApplyDashboardConfig(t *testing.T) {
	cfg := config.Config{
		LogFormat: "json",
		Dashboard: config.DashboardConfig{APIURL: "http://moderation:8080", Timeout: 10 * time.Second},
	}

	newCmd := func() *cobra.Command {
		c := &cobra.Command{Use: "items"}
		c.Flags().StringVar(&dashboardAPIURL, "api-url", "", "")
		c.Flags().DurationVar(&dashboardTimeout, "timeout", 0, "")
		return c
	}

	c := newCmd()
	require.NoError(t, c.Flags().Parse(nil))
	applyDashboardConfig(c, cfg)
	assert.Equal(t, "http://moderation:8080", dashboardAPIURL)
	assert.Equal(t, 10*time.Second, dashboardTimeout)
	assert.Equal(t, "json", dashboardLogFormat)

	c = newCmd()
	require.NoError(t, c.Flags().Parse([]string{"--api-url=http://localhost:9999", "--timeout=3s"}))
	applyDashboardConfig(c, cfg)
	assert.Equal(t, "http://localhost:9999", dashboardAPIURL)
	assert.Equal(t, 3*time.Second, dashboardTimeout)
}
