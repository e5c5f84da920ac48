package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the runtime directory holding channel sockets. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/windowsize-runtime-<uid> (created)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/windowsize-runtime-%d", uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// SocketPath returns the socket path serving the named channel. Path
// separators in the channel name become dashes, so "flutter/windowsize"
// maps to "flutter-windowsize.sock".
func SocketPath(channel string) (string, error) {
	name := SocketName(channel)
	if name == "" {
		return "", fmt.Errorf("channel name is required")
	}
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, name), nil
}

// SocketName returns the socket file name for a channel.
func SocketName(channel string) string {
	channel = strings.Trim(strings.TrimSpace(channel), "/")
	if channel == "" {
		return ""
	}
	return strings.ReplaceAll(channel, "/", "-") + ".sock"
}
