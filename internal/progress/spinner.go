package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// spinnerDelay is the frame interval of the spinner animation.
const spinnerDelay = 100 * time.Millisecond

// Spinner shows an animated status line while a step runs. On terminals
// without TTY support it stays silent until the step finishes and then
// prints a single status line.
type Spinner struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
	message string
}

// NewSpinner creates a spinner writing to out, which should be the stream
// caps was detected on.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	return &Spinner{
		out:     out,
		caps:    caps,
		symbols: SelectSymbols(caps),
	}
}

// Start begins the step described by message.
func (s *Spinner) Start(message string) {
	s.message = message
	if !s.caps.IsTTY {
		return
	}
	s.spin = spinner.New(spinner.CharSets[s.symbols.SpinnerSet], spinnerDelay, spinner.WithWriter(s.out))
	s.spin.Suffix = " " + message
	if s.caps.SupportsColor {
		_ = s.spin.Color("cyan")
	}
	s.spin.Start()
}

// Succeed ends the step with a success line. An empty message repeats the
// start message.
func (s *Spinner) Succeed(message string) {
	s.finish(s.symbols.Checkmark, message)
}

// Fail ends the step with a failure line.
func (s *Spinner) Fail(message string) {
	s.finish(s.symbols.Failure, message)
}

func (s *Spinner) finish(symbol, message string) {
	if message == "" {
		message = s.message
	}
	if s.spin != nil {
		s.spin.Stop()
		s.spin = nil
	}
	fmt.Fprintf(s.out, "%s %s\n", symbol, message)
}
