package windowsize

import (
	"math"
	"testing"

	"github.com/1broseidon/windowsize/internal/channel"
	"github.com/1broseidon/windowsize/internal/platform"
	"github.com/1broseidon/windowsize/internal/value"
)

type fakeWindow struct {
	x, y, width, height int
	calls               []string
}

func (w *fakeWindow) Move(x, y int) {
	w.x, w.y = x, y
	w.calls = append(w.calls, "move")
}

func (w *fakeWindow) Resize(width, height int) {
	w.width, w.height = width, height
	w.calls = append(w.calls, "resize")
}

type fakeView struct {
	window   *fakeWindow
	monitors []platform.Monitor
}

func (v *fakeView) Toplevel() platform.Window {
	if v.window == nil {
		return nil
	}
	return v.window
}

func (v *fakeView) Monitors() ([]platform.Monitor, error) { return v.monitors, nil }

type fakeRegistrar struct {
	messenger *channel.Registry
	view      platform.View
}

func (r *fakeRegistrar) Messenger() channel.Messenger { return r.messenger }
func (r *fakeRegistrar) View() platform.View          { return r.view }

func newTestPlugin(view platform.View) (*Plugin, *fakeRegistrar) {
	reg := &fakeRegistrar{messenger: channel.NewRegistry(), view: view}
	return New(reg, nil), reg
}

func frameCall(items ...value.Value) channel.MethodCall {
	return channel.MethodCall{Method: SetWindowFrameMethod, Args: value.List(items...)}
}

func TestUnknownMethodsAreNotImplemented(t *testing.T) {
	win := &fakeWindow{}
	p, _ := newTestPlugin(&fakeView{window: win})

	for _, method := range []string{"getScreenList", "setwindowframe", "", "setWindowFrame "} {
		resp := p.HandleMethodCall(channel.MethodCall{Method: method, Args: value.List(value.Float(1), value.Float(2), value.Float(3), value.Float(4))})
		if resp.Kind != channel.KindNotImplemented {
			t.Errorf("%q: response kind = %s, want NOT_IMPLEMENTED", method, resp.Kind)
		}
	}
	if len(win.calls) != 0 {
		t.Fatalf("window touched by unknown methods: %v", win.calls)
	}
}

func TestSetWindowFrameBadArguments(t *testing.T) {
	tests := []struct {
		name string
		args value.Value
	}{
		{"null", value.Null()},
		{"map", value.NewMap().Set("x", value.Float(1))},
		{"string", value.String("1,2,3,4")},
		{"three items", value.List(value.Float(1), value.Float(2), value.Float(3))},
		{"five items", value.List(value.Float(1), value.Float(2), value.Float(3), value.Float(4), value.Float(5))},
		{"empty", value.List()},
		{"non-numeric item", value.List(value.Float(1), value.String("2"), value.Float(3), value.Float(4))},
		{"null item", value.List(value.Float(1), value.Float(2), value.Null(), value.Float(4))},
		{"infinite item", value.List(value.Float(1), value.Float(2), value.Float(math.Inf(1)), value.Float(4))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := &fakeWindow{}
			p, _ := newTestPlugin(&fakeView{window: win})

			resp := p.HandleMethodCall(channel.MethodCall{Method: SetWindowFrameMethod, Args: tt.args})
			if resp.Kind != channel.KindError {
				t.Fatalf("response kind = %s, want ERROR", resp.Kind)
			}
			if resp.Code != "Bad Arguments" || resp.Message != "Expected 4-element list" || !resp.Details.IsNull() {
				t.Fatalf("response = %+v", resp)
			}
			if len(win.calls) != 0 {
				t.Fatalf("window mutated: %v", win.calls)
			}
		})
	}
}

func TestSetWindowFrameNoScreen(t *testing.T) {
	tests := []struct {
		name string
		view platform.View
	}{
		{"no view", nil},
		{"no toplevel", &fakeView{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPlugin(tt.view)
			resp := p.HandleMethodCall(frameCall(value.Float(1), value.Float(2), value.Float(3), value.Float(4)))
			if resp.Kind != channel.KindError || resp.Code != "No Screen" || resp.Message != "" {
				t.Fatalf("response = %+v, want No Screen without message", resp)
			}
		})
	}
}

func TestSetWindowFrameMovesThenResizes(t *testing.T) {
	win := &fakeWindow{}
	p, _ := newTestPlugin(&fakeView{window: win})

	resp := p.HandleMethodCall(frameCall(value.Float(10.9), value.Float(-20.7), value.Float(800.5), value.Int(600)))
	if resp.Kind != channel.KindSuccess || !resp.Result.IsNull() {
		t.Fatalf("response = %+v, want void success", resp)
	}
	if win.x != 10 || win.y != -20 || win.width != 800 || win.height != 600 {
		t.Fatalf("window = (%d,%d %dx%d), want (10,-20 800x600)", win.x, win.y, win.width, win.height)
	}
	if len(win.calls) != 2 || win.calls[0] != "move" || win.calls[1] != "resize" {
		t.Fatalf("calls = %v, want [move resize]", win.calls)
	}
}

func TestSetWindowFrameIsIdempotent(t *testing.T) {
	win := &fakeWindow{}
	p, _ := newTestPlugin(&fakeView{window: win})
	call := frameCall(value.Float(5), value.Float(6), value.Float(700), value.Float(500))

	for i := 0; i < 3; i++ {
		if resp := p.HandleMethodCall(call); resp.Kind != channel.KindSuccess {
			t.Fatalf("call %d response = %+v", i, resp)
		}
		if win.x != 5 || win.y != 6 || win.width != 700 || win.height != 500 {
			t.Fatalf("call %d window = (%d,%d %dx%d)", i, win.x, win.y, win.width, win.height)
		}
	}
}

func TestPluginServesChannel(t *testing.T) {
	win := &fakeWindow{}
	_, reg := newTestPlugin(&fakeView{window: win})

	out, err := reg.messenger.Dispatch(ChannelName, []byte(`{"method":"setWindowFrame","args":[1,2,300,400]}`))
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if string(out) != `{"status":"OK"}` {
		t.Fatalf("reply = %s", out)
	}
	if win.width != 300 || win.height != 400 {
		t.Fatalf("window size = %dx%d", win.width, win.height)
	}

	out, _ = reg.messenger.Dispatch(ChannelName, []byte(`{"method":"setWindowFrame","args":[1,2]}`))
	if string(out) != `{"status":"ERROR","code":"Bad Arguments","message":"Expected 4-element list"}` {
		t.Fatalf("bad args reply = %s", out)
	}
}

func TestPluginInitialGeometryIsUnconstrained(t *testing.T) {
	p, _ := newTestPlugin(nil)
	want := Geometry{MinWidth: -1, MinHeight: -1, MaxWidth: math.MaxInt32, MaxHeight: math.MaxInt32}
	if p.geometry != want {
		t.Fatalf("geometry = %+v, want %+v", p.geometry, want)
	}
}

func TestDisposeReleasesChannelAndRegistrar(t *testing.T) {
	p, reg := newTestPlugin(&fakeView{window: &fakeWindow{}})
	if reg.messenger.Channels() != 1 {
		t.Fatalf("Channels() = %d, want 1", reg.messenger.Channels())
	}

	p.Dispose()
	p.Dispose()

	if reg.messenger.Channels() != 0 {
		t.Fatalf("Channels() after Dispose = %d, want 0", reg.messenger.Channels())
	}
	if p.registrar != nil || p.channel != nil {
		t.Fatal("Dispose must clear registrar and channel")
	}
}
