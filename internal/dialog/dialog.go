// Package dialog is the modal confirmation/alert primitive. Callers await the
// user's acknowledgment through ordinary sequential control flow; only one
// dialog may be pending at a time.
package dialog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
)

// ErrPending is returned when a second dialog is requested while one is
// already awaiting acknowledgment.
var ErrPending = appErrors.New("DIALOG_PENDING", http.StatusConflict, "another dialog is already pending")

// Service is the awaitable dialog contract.
type Service interface {
	// Alert blocks until the user acknowledges the message.
	Alert(ctx context.Context, message string) error
	// Confirm blocks until the user accepts or rejects the message.
	Confirm(ctx context.Context, message string) (bool, error)
}

// Terminal implements Service over a terminal's reader and writer.
type Terminal struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal constructs a terminal dialog service.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Alert prints the message and waits for the user to press enter.
func (t *Terminal) Alert(ctx context.Context, message string) error {
	if !t.mu.TryLock() {
		return ErrPending
	}
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(t.out, "\n%s\n[press enter] ", message)
	_, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Confirm prints the message and reads a yes/no answer. Anything but an
// explicit yes declines.
func (t *Terminal) Confirm(ctx context.Context, message string) (bool, error) {
	if !t.mu.TryLock() {
		return false, ErrPending
	}
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(t.out, "\n%s [y/N] ", message)
	line, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Scripted is a Service for tests and non-interactive runs: alerts are
// recorded, confirms pop pre-seeded answers (default accept).
type Scripted struct {
	mu       sync.Mutex
	Alerts   []string
	Confirms []string
	Answers  []bool
}

// Alert records the message.
func (s *Scripted) Alert(_ context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Alerts = append(s.Alerts, message)
	return nil
}

// Confirm records the message and returns the next scripted answer.
func (s *Scripted) Confirm(_ context.Context, message string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Confirms = append(s.Confirms, message)
	if len(s.Answers) == 0 {
		return true, nil
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}
