package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/windowsize/internal/config"
	"github.com/1broseidon/windowsize/internal/platform"
	"github.com/1broseidon/windowsize/internal/runtimepath"
	"github.com/1broseidon/windowsize/internal/windowsize"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "serve":
		os.Exit(runServe(os.Args[2:]))
	case "call":
		os.Exit(runCall(os.Args[2:]))
	case "set-frame":
		os.Exit(runSetFrame(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: windowsize <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve               Serve the flutter/windowsize channel (foreground)")
	fmt.Fprintln(w, "  call                Send a method call to a running host")
	fmt.Fprintln(w, "  set-frame           Move and resize the host window")
	fmt.Fprintln(w, "  monitors            Print monitor geometry records")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config init         Write default configuration")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func socketPath(cfg *config.Config) (string, error) {
	if cfg.SocketPath != "" {
		return cfg.SocketPath, nil
	}
	return runtimepath.SocketPath(windowsize.ChannelName)
}

func targetSpec(cfg *config.Config) platform.TargetSpec {
	return platform.TargetSpec{
		WindowID: cfg.Window.ID,
		PID:      cfg.Window.PID,
		Class:    cfg.Window.Class,
	}
}
