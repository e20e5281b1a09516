package display

import (
	"bufio"
	"io"
	"log"
	"os"
)

// LogBacklight logs backlight transitions instead of driving hardware.
// Used when no panel driver is wired in.
type LogBacklight struct{}

func NewLogBacklight() *LogBacklight { return &LogBacklight{} }

func (b *LogBacklight) Set(on bool) error {
	if on {
		log.Println("[INFO] backlight on")
	} else {
		log.Println("[INFO] backlight off")
	}
	return nil
}

// StdinTouchSource emits a touch event for every line read from a reader,
// which makes pressing Enter act as a tap during development.
type StdinTouchSource struct {
	events chan TouchEvent
	done   chan struct{}
}

// NewStdinTouchSource starts reading os.Stdin.
func NewStdinTouchSource() *StdinTouchSource {
	return newReaderTouchSource(os.Stdin)
}

func newReaderTouchSource(r io.Reader) *StdinTouchSource {
	s := &StdinTouchSource{
		events: make(chan TouchEvent, 4),
		done:   make(chan struct{}),
	}
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case s.events <- TouchEvent{}:
			case <-s.done:
				return
			default:
				// Drop taps nobody is consuming.
			}
		}
	}()
	return s
}

func (s *StdinTouchSource) Events() <-chan TouchEvent { return s.events }

func (s *StdinTouchSource) Close() error {
	close(s.done)
	return nil
}
