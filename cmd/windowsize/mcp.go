package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/windowsize/internal/channel"
	"github.com/1broseidon/windowsize/internal/config"
	"github.com/1broseidon/windowsize/internal/mcp"
	"github.com/1broseidon/windowsize/internal/platform"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: windowsize mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: windowsize mcp serve")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Start the MCP server on stdio. Frame changes are forwarded to the")
		fmt.Fprintln(os.Stdout, "running 'windowsize serve' host.")
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	path, err := socketPath(cfg)
	if err != nil {
		log.Fatalf("Failed to resolve channel socket path: %v", err)
	}

	var source mcp.MonitorSource
	view, err := platform.NewLinuxViewFromDisplay(targetSpec(cfg), cfg.ScaleFactor, newLogger(cfg.Log.Level))
	if err != nil {
		log.Printf("Warning: monitor listing disabled: %v", err)
	} else {
		defer view.Disconnect()
		source = view.Monitors
	}

	server := mcp.NewServer(channel.NewClient(path), source)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return 0
}
