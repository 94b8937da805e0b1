package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer lets the test read what the spinner goroutine wrote.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startTestSpinner(ctx context.Context, msg string) (*Spinner, *syncBuffer) {
	out := &syncBuffer{}
	s := newSpinnerWithContext(ctx, msg)
	s.w = out
	s.Start()
	return s, out
}

func TestSpinnerDrawsMessage(t *testing.T) {
	s, out := startTestSpinner(context.Background(), "Running pdflatex")
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Running pdflatex") {
		t.Errorf("message never drawn: %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("line not cleared on stop: %q", got)
	}
}

func TestSpinnerFollowsContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"deadline", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), spinnerInterval/2)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()
			s, _ := startTestSpinner(ctx, "Compiling LaTeX...")
			exited := make(chan struct{})
			go func() {
				s.wg.Wait()
				close(exited)
			}()
			select {
			case <-exited:
			case <-time.After(10 * spinnerInterval):
				t.Fatal("spinner still running after its context ended")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	s, _ := startTestSpinner(context.Background(), "x")
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() { stdout = defaultStdout })

	s, spun := startTestSpinner(context.Background(), "Compiling LaTeX...")
	time.Sleep(2 * spinnerInterval)
	s.StopWithSuccess("Compiled LaTeX")

	if got, want := out.String(), iconSuccess+" Compiled LaTeX"; !strings.Contains(got, want) {
		t.Errorf("output %q missing %q", got, want)
	}
	if !strings.HasSuffix(spun.String(), "\r") {
		t.Errorf("spinner line not cleared before the status line: %q", spun.String())
	}
}
