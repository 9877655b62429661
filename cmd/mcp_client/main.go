package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/windlant/mcp-client/internal/agent"
	"github.com/windlant/mcp-client/internal/app"
	"github.com/windlant/mcp-client/internal/config"
	"github.com/windlant/mcp-client/internal/errorsx"
	"github.com/windlant/mcp-client/internal/logging"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.InitLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, os.Stderr)

	a, err := app.NewAgent(cfg, app.Dialer(cfg, os.Stderr), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize model: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.PrintBanner(os.Stdout, "interactive client")
	fmt.Println("Commands: connect <server script>, disconnect, tools, exit. Anything else is a query.")

	target := cfg.Server.Target
	if len(os.Args) > 1 {
		target = os.Args[1]
	}
	if target != "" {
		connect(ctx, a, target)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Input error: %v\n", err)
		}
	}()

	for {
		fmt.Print("You: ")
		var input string
		select {
		case <-ctx.Done():
			fmt.Println("\nGoodbye!")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			input = strings.TrimSpace(line)
		}
		if input == "" {
			continue
		}

		cmd, arg, _ := strings.Cut(input, " ")
		switch strings.ToLower(cmd) {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		case "connect":
			if strings.TrimSpace(arg) == "" {
				fmt.Println("Usage: connect <server script>")
				continue
			}
			connect(ctx, a, strings.TrimSpace(arg))
			continue
		case "disconnect":
			if err := a.Disconnect(ctx); err != nil {
				fmt.Println(errorsx.UserMessage(err))
				continue
			}
			fmt.Println("Disconnected.")
			continue
		case "tools":
			printTools(a)
			continue
		}

		answer, err := a.SubmitQuery(ctx, input)
		if err != nil {
			fmt.Println(errorsx.UserMessage(err))
			continue
		}
		fmt.Printf("Agent: %s\n\n", answer)
	}
}

func connect(ctx context.Context, a *agent.Agent, target string) {
	summary, err := a.Connect(ctx, target)
	if err != nil {
		fmt.Println(errorsx.UserMessage(err))
		return
	}
	fmt.Println(summary)
}

func printTools(a *agent.Agent) {
	if !a.IsConnected() {
		fmt.Println("Not connected.")
		return
	}
	descs := a.Tools()
	if len(descs) == 0 {
		fmt.Println("(no tools)")
		return
	}
	for _, d := range descs {
		fmt.Printf("%s: %s\n", d.Name, d.Description)
	}
}
