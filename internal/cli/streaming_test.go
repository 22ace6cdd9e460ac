package cli

import (
	"bytes"
	"testing"
)

func TestStreamRenderer(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamingWriter(&buf)
	w.SetColorMode(false)

	sr := NewStreamRenderer(w)
	if sr.Rendered() {
		t.Fatal("Nothing rendered yet")
	}

	sr.RenderDelta("Musk ")
	sr.RenderDelta("")
	sr.RenderDelta("announced X")

	if !sr.Rendered() {
		t.Error("Expected content to be rendered")
	}

	sr.RenderComplete()

	want := "Answer:\nMusk announced X\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
	if sr.Rendered() {
		t.Error("RenderComplete should reset the renderer")
	}
}

func TestStreamRenderer_NothingToComplete(t *testing.T) {
	var buf bytes.Buffer
	sr := NewStreamRenderer(NewStreamingWriter(&buf))
	sr.RenderComplete()

	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestStreamingWriter_Color(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamingWriter(&buf)
	w.WriteColored("hi", ColorGreen)

	if buf.String() != ColorGreen+"hi"+ColorReset {
		t.Errorf("Unexpected colored output %q", buf.String())
	}
}
