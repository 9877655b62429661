// Command mcp_server_local serves the builtin tools (get_time,
// get_forecast) over MCP stdio.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/windlant/mcp-client/internal/app"
	"github.com/windlant/mcp-client/internal/logging"
	"github.com/windlant/mcp-client/internal/tools/local"
	"github.com/windlant/mcp-client/internal/toolserver"
)

func main() {
	// stdout carries the protocol; logs go to stderr only.
	logger := logging.InitLogger(logging.ParseLevel(os.Getenv("MCP_SERVER_LOG_LEVEL")), "text", os.Stderr)

	reg, err := local.NewBuiltinRegistry()
	if err != nil {
		logger.Error("failed to build tool registry", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := toolserver.New(reg, "mcp-server-local", app.Version)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
