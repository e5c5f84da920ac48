package mcp

// SetWindowFrameInput is the input for the set_window_frame tool.
type SetWindowFrameInput struct {
	X      float64 `json:"x" jsonschema:"Left edge of the window in screen pixels"`
	Y      float64 `json:"y" jsonschema:"Top edge of the window in screen pixels"`
	Width  float64 `json:"width" jsonschema:"Window width in pixels"`
	Height float64 `json:"height" jsonschema:"Window height in pixels"`
}

// SetWindowFrameOutput is the output for the set_window_frame tool.
type SetWindowFrameOutput struct {
	Applied bool       `json:"applied"`
	Frame   [4]float64 `json:"frame"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorRecord mirrors the keyed record sent to the UI runtime.
type MonitorRecord struct {
	Frame        []float64 `json:"frame"`
	VisibleFrame []float64 `json:"visibleFrame"`
	ScaleFactor  float64   `json:"scaleFactor"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorRecord `json:"monitors"`
}
