package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/windowsize/internal/channel"
	"github.com/1broseidon/windowsize/internal/platform"
	"github.com/1broseidon/windowsize/internal/value"
	"github.com/1broseidon/windowsize/internal/windowsize"
)

type fakeInvoker struct {
	resp    channel.Response
	err     error
	channel string
	method  string
	args    value.Value
}

func (f *fakeInvoker) InvokeMethod(_ context.Context, ch, method string, args value.Value) (channel.Response, error) {
	f.channel, f.method, f.args = ch, method, args
	return f.resp, f.err
}

func TestHandleSetWindowFrame(t *testing.T) {
	inv := &fakeInvoker{resp: channel.SuccessResponse(value.Null())}
	s := NewServer(inv, nil)

	_, out, err := s.handleSetWindowFrame(context.Background(), nil, SetWindowFrameInput{X: 1, Y: 2, Width: 300, Height: 200})
	if err != nil {
		t.Fatalf("handleSetWindowFrame() error: %v", err)
	}
	if !out.Applied || out.Frame != [4]float64{1, 2, 300, 200} {
		t.Fatalf("output = %+v", out)
	}
	if inv.channel != windowsize.ChannelName || inv.method != windowsize.SetWindowFrameMethod {
		t.Fatalf("sent %s on %s", inv.method, inv.channel)
	}
	if !value.Equal(inv.args, windowsize.MakeFrameValue(1, 2, 300, 200)) {
		t.Fatalf("args = %v", inv.args)
	}
}

func TestHandleSetWindowFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		inv  *fakeInvoker
		want string
	}{
		{"no screen", &fakeInvoker{resp: channel.ErrorResponse(windowsize.NoScreenError, "", value.Null())}, "No Screen"},
		{"not implemented", &fakeInvoker{resp: channel.NotImplementedResponse()}, "not implemented"},
		{"transport", &fakeInvoker{err: errors.New("dial failed")}, "dial failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(tt.inv, nil)
			_, _, err := s.handleSetWindowFrame(context.Background(), nil, SetWindowFrameInput{Width: 1, Height: 1})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestHandleListMonitors(t *testing.T) {
	s := NewServer(&fakeInvoker{}, func() ([]platform.Monitor, error) {
		return []platform.Monitor{{
			Geometry:    platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
			Workarea:    platform.Rect{X: 0, Y: 27, Width: 1920, Height: 1053},
			ScaleFactor: 1,
		}}, nil
	})

	_, out, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	if err != nil {
		t.Fatalf("handleListMonitors() error: %v", err)
	}
	if len(out.Monitors) != 1 {
		t.Fatalf("monitors = %+v", out.Monitors)
	}
	m := out.Monitors[0]
	if len(m.Frame) != 4 || m.Frame[2] != 1920 || m.VisibleFrame[1] != 27 || m.ScaleFactor != 1 {
		t.Fatalf("record = %+v", m)
	}
}

func TestHandleListMonitorsWithoutSource(t *testing.T) {
	s := NewServer(&fakeInvoker{}, nil)
	if _, _, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{}); err == nil {
		t.Fatal("expected error without monitor source")
	}
}
