// Package app wires configuration into a ready-to-use agent. Both front
// ends build through here.
package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/dimiro1/banner"

	"github.com/windlant/mcp-client/internal/agent"
	"github.com/windlant/mcp-client/internal/config"
	"github.com/windlant/mcp-client/internal/model"
	"github.com/windlant/mcp-client/internal/observability"
	"github.com/windlant/mcp-client/internal/session"
	"github.com/windlant/mcp-client/internal/tools"
	"github.com/windlant/mcp-client/internal/tools/stdio"
)

const Version = "0.2.0"

// PrintBanner writes the startup banner to w.
func PrintBanner(w io.Writer, subtitle string) {
	tpl := "{{ .Title \"MCP CLIENT\" \"\" 0 }}\n" + subtitle + " " + Version + "\n"
	banner.Init(w, true, false, bytes.NewBufferString(tpl))
}

// Launchers converts configured launchers to the stdio form.
func Launchers(cfg *config.Config) map[string]stdio.Launcher {
	out := stdio.DefaultLaunchers()
	for ext, l := range cfg.Server.Launchers {
		out[ext] = stdio.Launcher{Command: l.Command, Args: l.Args}
	}
	return out
}

// Dialer returns a session dialer that spawns tool servers over stdio.
// Server stderr goes to stderr, which may be nil.
func Dialer(cfg *config.Config, stderr io.Writer) session.Dialer {
	opts := stdio.Options{
		Launchers:  Launchers(cfg),
		ClientName: cfg.Server.ClientName,
		Version:    Version,
		Stderr:     stderr,
	}
	return func(ctx context.Context, target string) (tools.ToolClient, error) {
		c, err := stdio.Dial(ctx, target, opts)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// NewAgent builds the model, session and agent described by cfg. Events
// go to logger and to every extra observer. The caller owns the returned
// agent and must Close it.
func NewAgent(cfg *config.Config, dial session.Dialer, logger *slog.Logger, extra ...observability.Observer) (*agent.Agent, error) {
	m, err := model.New(cfg.LLM)
	if err != nil {
		return nil, err
	}
	var sink observability.Observer = observability.NoopObserver{}
	if logger != nil {
		sink = observability.NewSlogObserver(logger)
	}
	observer := append(observability.MultiObserver{sink}, extra...)
	s := session.NewManager(dial, session.Options{
		QueueSize:      cfg.Session.QueueSize,
		ConnectTimeout: cfg.Timeouts.Connect(),
		Logger:         logger,
		Observer:       observer,
	})
	return agent.NewAgent(m, s, agent.Options{
		FailurePolicy: agent.FailurePolicy(cfg.Tools.FailurePolicy),
		ToolTimeout:   cfg.Timeouts.Tool(),
		LLMTimeout:    cfg.Timeouts.LLM(),
		Logger:        logger,
		Observer:      observer,
	}), nil
}
