package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/1broseidon/windowsize/internal/channel"
	"github.com/1broseidon/windowsize/internal/config"
	"github.com/1broseidon/windowsize/internal/value"
	"github.com/1broseidon/windowsize/internal/windowsize"
)

// Exit code for a method the host does not implement.
const exitNotImplemented = 3

func runCall(args []string) int {
	fs := flag.NewFlagSet("call", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	timeout := fs.Duration("timeout", 5*time.Second, "Time to wait for the host")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: windowsize call [--timeout D] <method> [json-args]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Send a method call on the flutter/windowsize channel and print the result.")
		fmt.Fprintln(os.Stderr, "Exits 1 on an error response and 3 when the method is not implemented.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Example:")
		fmt.Fprintln(os.Stderr, "  windowsize call setWindowFrame '[0, 0, 1280, 720]'")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return 2
	}

	callArgs := value.Null()
	if fs.NArg() == 2 {
		parsed, err := value.Parse([]byte(fs.Arg(1)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid arguments: %v\n", err)
			return 2
		}
		callArgs = parsed
	}

	return invoke(fs.Arg(0), callArgs, *timeout)
}

func runSetFrame(args []string) int {
	fs := flag.NewFlagSet("set-frame", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: windowsize set-frame <x> <y> <width> <height>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Move and resize the host window.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 4 {
		fs.Usage()
		return 2
	}

	items := make([]value.Value, 0, 4)
	for _, arg := range fs.Args() {
		n, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid number %q\n", arg)
			return 2
		}
		items = append(items, value.Float(n))
	}

	return invoke(windowsize.SetWindowFrameMethod, value.List(items...), 5*time.Second)
}

func invoke(method string, args value.Value, timeout time.Duration) int {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	path, err := socketPath(cfg)
	if err != nil {
		log.Fatalf("Failed to resolve channel socket path: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := channel.NewClient(path).WithTimeout(timeout)
	resp, err := client.InvokeMethod(ctx, windowsize.ChannelName, method, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := resp.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, channel.ErrNotImplemented) {
			return exitNotImplemented
		}
		return 1
	}
	if !resp.Result.IsNull() {
		if err := printValue(os.Stdout, resp.Result); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	return 0
}
