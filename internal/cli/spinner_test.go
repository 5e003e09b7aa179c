package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Rendering SVG...")
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Rendering SVG...") {
		t.Errorf("output = %q, want the message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output = %q, want a cleared line at the end", out)
	}
}

func TestSpinnerStopBeforeFirstFrame(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Connecting to redis...")
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing", buf.String())
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, &buf, "Rendering SVG...")
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), &bytes.Buffer{}, "Rendering SVG...")
	s.Stop()
	s.Stop()
	s.Stop()
}
