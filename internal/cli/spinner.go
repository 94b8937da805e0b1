package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a status line on stderr while a slow external step, such
// as pdflatex, runs.
type Spinner struct {
	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	message string
	width   int // length of the drawn message, 0 before the first frame
}

// newSpinnerWithContext returns a stopped spinner. Cancelling ctx ends the
// animation as if Stop had been called.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{w: os.Stderr, ctx: ctx, cancel: cancel, message: message}
}

// Start draws frames until the spinner is stopped.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for n := 0; ; n++ {
			select {
			case <-s.ctx.Done():
				s.erase()
				return
			case <-tick.C:
				s.draw(spinnerFrames[n%len(spinnerFrames)])
			}
		}
	}()
}

// Stop ends the animation and clears its line. Repeated calls are no-ops.
func (s *Spinner) Stop() {
	s.cancel()
	s.wg.Wait()
}

// StopWithSuccess stops and prints a success line to stdout.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
	s.width = len(s.message)
}

func (s *Spinner) erase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
	}
}
