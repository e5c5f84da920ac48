package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/windowsize/internal/channel"
	"github.com/1broseidon/windowsize/internal/platform"
	"github.com/1broseidon/windowsize/internal/value"
	"github.com/1broseidon/windowsize/internal/windowsize"
)

const (
	ServerName    = "windowsize"
	ServerVersion = "0.1.0"
)

// MethodInvoker sends method calls to a running host.
type MethodInvoker interface {
	InvokeMethod(ctx context.Context, channelName, method string, args value.Value) (channel.Response, error)
}

// MonitorSource lists the current monitors.
type MonitorSource func() ([]platform.Monitor, error)

// Server is the MCP server exposing window geometry tools.
type Server struct {
	mcpServer *mcpsdk.Server
	invoker   MethodInvoker
	monitors  MonitorSource
}

// NewServer creates an MCP server. Frame changes go through invoker to the
// running host; monitors are read from source directly.
func NewServer(invoker MethodInvoker, source MonitorSource) *Server {
	s := &Server{
		invoker:  invoker,
		monitors: source,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_frame",
		Description: "Move and resize the host window. Coordinates are truncated to whole pixels; the window manager may still adjust the result.",
	}, s.handleSetWindowFrame)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List monitors with their full frame, visible frame (work area) and scale factor. Frames are [x, y, width, height].",
	}, s.handleListMonitors)
}

func (s *Server) handleSetWindowFrame(ctx context.Context, _ *mcpsdk.CallToolRequest, args SetWindowFrameInput) (*mcpsdk.CallToolResult, SetWindowFrameOutput, error) {
	frame := [4]float64{args.X, args.Y, args.Width, args.Height}
	payload := value.List(
		value.Float(frame[0]),
		value.Float(frame[1]),
		value.Float(frame[2]),
		value.Float(frame[3]),
	)

	resp, err := s.invoker.InvokeMethod(ctx, windowsize.ChannelName, windowsize.SetWindowFrameMethod, payload)
	if err != nil {
		return nil, SetWindowFrameOutput{}, err
	}
	if err := resp.Err(); err != nil {
		return nil, SetWindowFrameOutput{}, fmt.Errorf("set window frame: %w", err)
	}
	return nil, SetWindowFrameOutput{Applied: true, Frame: frame}, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	if s.monitors == nil {
		return nil, ListMonitorsOutput{}, fmt.Errorf("monitor information is unavailable")
	}
	monitors, err := s.monitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, fmt.Errorf("failed to list monitors: %w", err)
	}

	records := make([]MonitorRecord, 0, len(monitors))
	for _, m := range monitors {
		record, err := decodeMonitorRecord(windowsize.MakeMonitorValue(m))
		if err != nil {
			return nil, ListMonitorsOutput{}, err
		}
		records = append(records, record)
	}
	return nil, ListMonitorsOutput{Monitors: records}, nil
}

func decodeMonitorRecord(v value.Value) (MonitorRecord, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return MonitorRecord{}, fmt.Errorf("failed to encode monitor: %w", err)
	}
	var record MonitorRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return MonitorRecord{}, fmt.Errorf("failed to decode monitor: %w", err)
	}
	return record, nil
}
