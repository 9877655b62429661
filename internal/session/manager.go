// Package session owns the connection to the tool server. Every operation
// (connect, disconnect, queries) runs on one worker goroutine fed by a
// bounded queue, so at most one piece of work touches the channel at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/windlant/mcp-client/internal/errorsx"
	"github.com/windlant/mcp-client/internal/logging"
	"github.com/windlant/mcp-client/internal/observability"
	"github.com/windlant/mcp-client/internal/tools"
)

var (
	ErrNotConnected = errors.New("not connected to a tool server")
	ErrBusy         = errors.New("session busy")
	ErrClosed       = errors.New("session closed")
)

// Dialer opens a tool channel to target.
type Dialer func(ctx context.Context, target string) (tools.ToolClient, error)

// Conn is the view of the live channel handed to queued work.
type Conn interface {
	ListTools(ctx context.Context) ([]tools.Descriptor, error)
	CallTool(ctx context.Context, name string, args tools.ToolArguments) (tools.Output, error)
}

// Options tunes a Manager.
type Options struct {
	// QueueSize bounds pending work; submissions beyond it fail with ErrBusy.
	QueueSize      int
	ConnectTimeout time.Duration
	Logger         *slog.Logger
	Observer       observability.Observer
}

type result struct {
	value string
	err   error
}

type task struct {
	ctx    context.Context
	run    func(ctx context.Context) (string, error)
	result chan result
}

// Manager is the session lifecycle manager.
type Manager struct {
	dial     Dialer
	timeout  time.Duration
	logger   *slog.Logger
	observer observability.Observer

	tasks     chan task
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	// Written only by the worker; the lock lets other goroutines read.
	mu     sync.RWMutex
	state  State
	target string
	client tools.ToolClient
	tools  []tools.Descriptor
}

// NewManager starts the worker. Call Close to tear everything down.
func NewManager(dial Dialer, opts Options) *Manager {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 8
	}
	m := &Manager{
		dial:     dial,
		timeout:  opts.ConnectTimeout,
		logger:   logging.NewComponentLogger(opts.Logger, "session"),
		observer: opts.Observer,
		tasks:    make(chan task, opts.QueueSize),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go m.loop()
	return m
}

func (m *Manager) loop() {
	defer close(m.done)
	for {
		select {
		case t := <-m.tasks:
			m.execute(t)
		case <-m.quit:
			for {
				select {
				case t := <-m.tasks:
					t.result <- result{err: ErrClosed}
				default:
					if err := m.teardown(context.Background(), "shutdown"); err != nil {
						m.logger.Warn("teardown on shutdown failed", "error", err)
					}
					return
				}
			}
		}
	}
}

func (m *Manager) execute(t task) {
	if err := t.ctx.Err(); err != nil {
		t.result <- result{err: errorsx.Wrap(err, errorsx.ReasonCanceled)}
		return
	}
	value, err := t.run(t.ctx)
	t.result <- result{value: value, err: err}
}

// submit queues run and waits for its result.
func (m *Manager) submit(ctx context.Context, run func(ctx context.Context) (string, error)) (string, error) {
	select {
	case <-m.quit:
		return "", ErrClosed
	default:
	}

	t := task{ctx: ctx, run: run, result: make(chan result, 1)}
	select {
	case m.tasks <- t:
	default:
		return "", errorsx.Wrap(ErrBusy, errorsx.ReasonBusy)
	}

	select {
	case r := <-t.result:
		return r.value, r.err
	case <-ctx.Done():
		return "", errorsx.Wrap(ctx.Err(), errorsx.ReasonCanceled)
	case <-m.done:
		return "", ErrClosed
	}
}

// Connect opens a channel to target, replacing any existing one, and
// returns a summary of the advertised tools. On failure the manager is
// left disconnected.
func (m *Manager) Connect(ctx context.Context, target string) (string, error) {
	return m.submit(ctx, func(ctx context.Context) (string, error) {
		return m.connect(ctx, target)
	})
}

// Disconnect closes the current channel. It is a no-op when disconnected.
func (m *Manager) Disconnect(ctx context.Context) error {
	_, err := m.submit(ctx, func(ctx context.Context) (string, error) {
		return "", m.teardown(ctx, "request")
	})
	return err
}

// WithConnection queues fn to run against the live channel. fn runs on
// the worker and must not call back into the Manager's queued methods.
func (m *Manager) WithConnection(ctx context.Context, fn func(ctx context.Context, conn Conn) (string, error)) (string, error) {
	return m.submit(ctx, func(ctx context.Context) (string, error) {
		if m.State() != StateConnected {
			return "", errorsx.Wrap(ErrNotConnected, errorsx.ReasonNotConnected)
		}
		return fn(ctx, liveConn{m: m})
	})
}

// Close disconnects and stops the worker. Pending work fails with ErrClosed.
func (m *Manager) Close() {
	m.closeOnce.Do(func() { close(m.quit) })
	<-m.done
}

func (m *Manager) IsConnected() bool {
	return m.State() == StateConnected
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Target is the server target of the current or last attempted connection.
func (m *Manager) Target() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.target
}

// Tools returns the most recently fetched tool list.
func (m *Manager) Tools() []tools.Descriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]tools.Descriptor, len(m.tools))
	copy(out, m.tools)
	return out
}

func (m *Manager) connect(ctx context.Context, target string) (string, error) {
	if err := m.teardown(ctx, "reconnect"); err != nil {
		m.logger.Warn("closing previous channel failed", "error", err)
	}

	m.mu.Lock()
	m.state = StateConnecting
	m.target = target
	m.mu.Unlock()

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	client, err := m.dial(ctx, target)
	if err != nil {
		m.setDisconnected()
		return "", errorsx.Wrapf(err, errorsx.ReasonConnect, "connect %s", target)
	}
	descs, err := client.ListTools(ctx)
	if err != nil {
		if cerr := client.Close(); cerr != nil {
			m.logger.Warn("closing failed channel", "error", cerr)
		}
		m.setDisconnected()
		return "", errorsx.Wrapf(err, errorsx.ReasonConnect, "list tools on %s", target)
	}

	m.mu.Lock()
	m.client = client
	m.tools = descs
	m.state = StateConnected
	m.mu.Unlock()

	m.logger.Info("connected", "target", target, "tools", len(descs))
	observability.Emit(ctx, m.observer, "session", observability.EventSessionConnect, observability.LevelInfo,
		map[string]any{"target": target, "tools": len(descs)})
	return Summary(descs), nil
}

func (m *Manager) setDisconnected() {
	m.mu.Lock()
	m.state = StateDisconnected
	m.client = nil
	m.tools = nil
	m.mu.Unlock()
}

// teardown releases the channel, if any. Runs on the worker only.
func (m *Manager) teardown(ctx context.Context, reason string) error {
	m.mu.Lock()
	client := m.client
	target := m.target
	m.client = nil
	m.tools = nil
	m.state = StateDisconnected
	m.mu.Unlock()

	if client == nil {
		return nil
	}
	err := client.Close()
	m.logger.Info("disconnected", "target", target, "reason", reason)
	observability.Emit(ctx, m.observer, "session", observability.EventSessionDisconnect, observability.LevelInfo,
		map[string]any{"target": target, "reason": reason})
	if err != nil {
		return fmt.Errorf("close channel to %s: %w", target, err)
	}
	return nil
}

// Summary renders the tool list shown after connecting.
func Summary(descs []tools.Descriptor) string {
	var b strings.Builder
	b.WriteString("Connected with tools:")
	if len(descs) == 0 {
		b.WriteString("\n(none)")
	}
	for _, d := range descs {
		b.WriteString("\n")
		b.WriteString(d.Name)
		b.WriteString(": ")
		b.WriteString(d.Description)
	}
	return b.String()
}

// liveConn forwards to the current client and keeps the tool cache fresh.
type liveConn struct {
	m *Manager
}

func (c liveConn) ListTools(ctx context.Context) ([]tools.Descriptor, error) {
	c.m.mu.RLock()
	client := c.m.client
	c.m.mu.RUnlock()
	if client == nil {
		return nil, errorsx.Wrap(ErrNotConnected, errorsx.ReasonNotConnected)
	}
	descs, err := client.ListTools(ctx)
	if err != nil {
		return nil, err
	}
	c.m.mu.Lock()
	c.m.tools = descs
	c.m.mu.Unlock()
	return descs, nil
}

func (c liveConn) CallTool(ctx context.Context, name string, args tools.ToolArguments) (tools.Output, error) {
	c.m.mu.RLock()
	client := c.m.client
	c.m.mu.RUnlock()
	if client == nil {
		return nil, errorsx.Wrap(ErrNotConnected, errorsx.ReasonNotConnected)
	}
	return client.CallTool(ctx, name, args)
}
