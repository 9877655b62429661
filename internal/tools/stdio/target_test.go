package stdio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/windlant/mcp-client/internal/errorsx"
)

func TestResolveScripts(t *testing.T) {
	cmd, err := Resolve("../weather/weather.py", DefaultLaunchers())
	require.NoError(t, err)
	require.Equal(t, []string{"python", "../weather/weather.py"}, cmd.Args)

	cmd, err = Resolve("server.JS", DefaultLaunchers())
	require.NoError(t, err)
	require.Equal(t, []string{"node", "server.JS"}, cmd.Args)

	custom := map[string]Launcher{"py": {Command: "uv", Args: []string{"run"}}}
	cmd, err = Resolve("weather.py", custom)
	require.NoError(t, err)
	require.Equal(t, []string{"uv", "run", "weather.py"}, cmd.Args)
}

func TestResolveStdioCommand(t *testing.T) {
	cmd, err := Resolve("STDIO://mcp_server_local --verbose", DefaultLaunchers())
	require.NoError(t, err)
	require.Equal(t, []string{"mcp_server_local", "--verbose"}, cmd.Args)
}

func TestResolveUnsupported(t *testing.T) {
	for _, target := range []string{"", "  ", "weather.rb", "weather", "stdio://  "} {
		_, err := Resolve(target, DefaultLaunchers())
		require.ErrorIs(t, err, ErrUnsupportedTarget, target)
		require.True(t, errorsx.HasReason(err, errorsx.ReasonUnsupportedTarget), target)
	}
}

func TestDialUnsupportedSpawnsNothing(t *testing.T) {
	_, err := Dial(context.Background(), "weather.exe", Options{})
	require.ErrorIs(t, err, ErrUnsupportedTarget)
}

func TestIsCommandTarget(t *testing.T) {
	require.True(t, IsCommandTarget("stdio://mcp_server_local"))
	require.True(t, IsCommandTarget("  Stdio://ls"))
	require.False(t, IsCommandTarget("weather.py"))
	require.False(t, IsCommandTarget("./stdio/weather.py"))
}
