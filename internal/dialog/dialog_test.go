package dialog

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
)

func TestTerminalAlertWaitsForAck(t *testing.T) {
	out := &bytes.Buffer{}
	term := NewTerminal(strings.NewReader("\n"), out)

	err := term.Alert(context.Background(), "schedule is empty")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "schedule is empty")
}

func TestTerminalConfirmAnswers(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"sure\n", false},
	}
	for _, tc := range cases {
		term := NewTerminal(strings.NewReader(tc.input), &bytes.Buffer{})
		ok, err := term.Confirm(context.Background(), "clear data?")
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "input %q", tc.input)
	}
}

func TestTerminalSingleFlight(t *testing.T) {
	blockedIn, unblock := newBlockingReader()
	prompted := make(chan struct{})
	term := NewTerminal(blockedIn, &signalWriter{ch: prompted})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = term.Alert(context.Background(), "first")
	}()

	// once the prompt has been written the first dialog holds the lock
	<-prompted
	second := term.Alert(context.Background(), "second")
	assert.True(t, appErrors.HasCode(second, ErrPending))

	_, err := term.Confirm(context.Background(), "third")
	assert.True(t, appErrors.HasCode(err, ErrPending))

	unblock()
	wg.Wait()
}

type signalWriter struct {
	once sync.Once
	ch   chan struct{}
}

func (w *signalWriter) Write(p []byte) (int, error) {
	w.once.Do(func() { close(w.ch) })
	return len(p), nil
}

func TestTerminalRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	term := NewTerminal(strings.NewReader("y\n"), &bytes.Buffer{})
	err := term.Alert(ctx, "late")
	assert.Error(t, err)

	_, err = term.Confirm(ctx, "late")
	assert.Error(t, err)
}

func TestScriptedDefaults(t *testing.T) {
	s := &Scripted{Answers: []bool{false}}

	ok, err := s.Confirm(context.Background(), "first")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Confirm(context.Background(), "second")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Alert(context.Background(), "done"))
	assert.Equal(t, []string{"done"}, s.Alerts)
	assert.Equal(t, []string{"first", "second"}, s.Confirms)
}

// newBlockingReader returns a reader whose Read blocks until release is
// called, after which it yields newlines forever.
func newBlockingReader() (*blockingReader, func()) {
	gate := make(chan struct{})
	return &blockingReader{gate: gate}, func() { close(gate) }
}

type blockingReader struct {
	gate <-chan struct{}
}

func (r *blockingReader) Read(p []byte) (int, error) {
	<-r.gate
	if len(p) == 0 {
		return 0, nil
	}
	p[0] = '\n'
	return 1, nil
}
