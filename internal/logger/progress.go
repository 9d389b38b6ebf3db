package logger

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Progress describes progress indicators that can be started and stopped.
type Progress interface {
	Start(operation string)
	Stop(operation string)
}

// SpinnerProgress renders a spinner while a long-running operation (for
// example a workspace scan) is in flight.
type SpinnerProgress struct {
	mu     sync.Mutex
	output io.Writer
	frames []string
	index  int
	stopCh chan struct{}
}

// NewSpinnerProgress creates a spinner writing to the provided output.
func NewSpinnerProgress(output io.Writer) *SpinnerProgress {
	if output == nil {
		output = io.Discard
	}
	return &SpinnerProgress{
		output: output,
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start begins rendering the spinner alongside the operation label.
// Start after Stop begins a fresh spinner.
func (p *SpinnerProgress) Start(operation string) {
	p.mu.Lock()
	if p.stopCh != nil {
		p.mu.Unlock()
		return
	}
	stopCh := make(chan struct{})
	p.stopCh = stopCh
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				p.mu.Lock()
				frame := p.frames[p.index%len(p.frames)]
				p.index++
				fmt.Fprintf(p.output, "\r%s %s", frame, operation)
				p.mu.Unlock()
			}
		}
	}()
}

// Stop terminates the spinner and prints the final line.
func (p *SpinnerProgress) Stop(operation string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopCh != nil {
		close(p.stopCh)
		p.stopCh = nil
	}
	fmt.Fprintf(p.output, "\r✓ %s\n", operation)
}
