package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/windowsize/internal/config"
	"github.com/1broseidon/windowsize/internal/host"
	"github.com/1broseidon/windowsize/internal/platform"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	pid := fs.Int("pid", 0, "Control the window owned by this process ID")
	class := fs.String("class", "", "Control the window with this WM_CLASS")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: windowsize serve [--pid PID | --class CLASS]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Serve the flutter/windowsize channel until interrupted.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "serve takes no positional arguments")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	applyWindowFlags(&cfg.Window, *pid, *class)
	logger := newLogger(cfg.Log.Level)

	path, err := socketPath(cfg)
	if err != nil {
		log.Fatalf("Failed to resolve channel socket path: %v", err)
	}

	// Without a display every frame request answers "No Screen".
	var view platform.View
	linuxView, err := platform.NewLinuxViewFromDisplay(targetSpec(cfg), cfg.ScaleFactor, logger)
	if err != nil {
		log.Printf("Warning: %v", err)
	} else {
		defer linuxView.Disconnect()
		view = linuxView
	}

	opts := host.Options{SocketPath: path, Logger: logger}
	if cfg.WebSocket.Enabled {
		opts.WebSocketAddr = cfg.WebSocket.Listen
	}
	h := host.New(view, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := h.Run(ctx); err != nil {
		log.Printf("Host error: %v", err)
		return 1
	}
	return 0
}

// applyWindowFlags overrides the configured target window. A flag clears
// the fields that would otherwise take precedence over it.
func applyWindowFlags(w *config.WindowConfig, pid int, class string) {
	if pid != 0 {
		w.ID = 0
		w.PID = pid
	}
	if class != "" {
		if pid == 0 {
			w.ID = 0
			w.PID = 0
		}
		w.Class = class
	}
}
