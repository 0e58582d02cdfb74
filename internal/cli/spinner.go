package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates a status line on stderr while a layout or render runs.
// It stops on Stop or when its context is cancelled.
type Spinner struct {
	out    io.Writer
	style  spinner.Spinner
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	message string
	width   int

	startOnce     sync.Once
	stopOnce      sync.Once
	stopped       chan struct{}
	stoppedByCall bool
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner bound to ctx.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     os.Stderr,
		style:   spinner.Dot,
		ctx:     sctx,
		cancel:  cancel,
		message: message,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Calling it twice has no effect.
func (s *Spinner) Start() {
	s.startOnce.Do(func() {
		go s.run()
	})
}

func (s *Spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(s.style.FPS)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			s.draw(s.style.Frames[i%len(s.style.Frames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(strings.TrimSpace(frame)) + " " + StyleDim.Render(s.message)
	s.width = max(s.width, len(s.message)+4)
	fmt.Fprintf(s.out, "\r%s", line)
}

// SetMessage replaces the text shown next to the animation.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop ends the animation and clears the line. It is safe to call more than
// once and before Start.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stoppedByCall = s.ctx.Err() == nil
		s.mu.Unlock()
		s.startOnce.Do(func() { close(s.stopped) })
		s.cancel()
		<-s.stopped
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended before Stop was called.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stoppedByCall && s.ctx.Err() != nil
}
