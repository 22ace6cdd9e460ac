package cli

import (
	"fmt"
	"io"
	"os"
)

// StreamingWriter provides utilities for writing streaming content to output
type StreamingWriter struct {
	writer    io.Writer
	colorMode bool
}

func NewStreamingWriter(w io.Writer) *StreamingWriter {
	if w == nil {
		w = os.Stdout
	}
	return &StreamingWriter{
		writer:    w,
		colorMode: true,
	}
}

func (sw *StreamingWriter) SetColorMode(enabled bool) {
	sw.colorMode = enabled
}

// Write writes content to the output
func (sw *StreamingWriter) Write(content string) {
	fmt.Fprint(sw.writer, content)
}

// WriteLine writes a line to the output
func (sw *StreamingWriter) WriteLine(content string) {
	fmt.Fprintln(sw.writer, content)
}

// WriteColored writes colored content if color mode is enabled
func (sw *StreamingWriter) WriteColored(content, color string) {
	if sw.colorMode {
		fmt.Fprintf(sw.writer, "%s%s%s", color, content, ColorReset)
	} else {
		fmt.Fprint(sw.writer, content)
	}
}

// ANSI Color codes
const (
	ColorReset = "\033[0m"
	ColorGreen = "\033[32m"
	ColorBold  = "\033[1m"
)

// StreamRenderer prints the final answer as it arrives from the model
type StreamRenderer struct {
	writer  *StreamingWriter
	written int
}

func NewStreamRenderer(writer *StreamingWriter) *StreamRenderer {
	return &StreamRenderer{writer: writer}
}

// RenderDelta renders a single content fragment. The first fragment is
// preceded by an answer header.
func (sr *StreamRenderer) RenderDelta(content string) {
	if content == "" {
		return
	}
	if sr.written == 0 {
		sr.writer.WriteColored("Answer:\n", ColorBold+ColorGreen)
	}
	sr.writer.Write(content)
	sr.written += len(content)
}

// Rendered reports whether any content has been printed
func (sr *StreamRenderer) Rendered() bool {
	return sr.written > 0
}

// RenderComplete terminates the streamed answer
func (sr *StreamRenderer) RenderComplete() {
	if sr.written > 0 {
		sr.writer.WriteLine("")
	}
	sr.written = 0
}
