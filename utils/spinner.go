package utils

import (
	"fmt"
	"io"
	"time"

	"github.com/logrusorgru/aurora"
)

// Spinner initializes the process indicator.
type Spinner struct {
	writer   io.Writer
	au       aurora.Aurora
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewSpinner instantiates a new Spinner writing into w.
// Colors are enabled only when colored is true, e.g. when w is a terminal.
func NewSpinner(w io.Writer, colored bool) *Spinner {
	return &Spinner{
		writer: w,
		au:     aurora.NewAurora(colored),
	}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})

	go func() {
		defer close(s.doneChan)
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprintf(s.writer, "\r%s\r", blank(len(message)+2))
					return
				default:
					fmt.Fprintf(s.writer, "\r%s %s", message, s.au.Green(string(r)))
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Stop stops the process indicator and waits until the line has been cleared.
func (s *Spinner) Stop() {
	if s.stopChan == nil {
		return
	}
	close(s.stopChan)
	<-s.doneChan
	s.stopChan = nil
}

func blank(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
