package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/windowsize/internal/value"
)

// printValue writes v as JSON: indented on a terminal, compact otherwise.
func printValue(w io.Writer, v value.Value) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	return writeJSON(w, data, isTerminal(w))
}

func writeJSON(w io.Writer, data []byte, indent bool) error {
	if indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	_, err := fmt.Fprintln(w, string(data))
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
