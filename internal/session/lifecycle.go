package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/internal/dialog"
	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
)

type cleaner interface {
	Cleanup(ctx context.Context) error
}

// Lifecycle wires the tab identity into teardown: a best-effort cleanup
// notification when the tab ends, and the explicit, awaited clear-data flow.
type Lifecycle struct {
	identity       *Identity
	backend        cleaner
	dialog         dialog.Service
	cleanupTimeout time.Duration
	logger         *zap.Logger

	resets []func()
}

// NewLifecycle instantiates Lifecycle.
func NewLifecycle(identity *Identity, backend cleaner, d dialog.Service, cleanupTimeout time.Duration, logger *zap.Logger) *Lifecycle {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cleanupTimeout <= 0 {
		cleanupTimeout = 2 * time.Second
	}
	return &Lifecycle{
		identity:       identity,
		backend:        backend,
		dialog:         d,
		cleanupTimeout: cleanupTimeout,
		logger:         logger,
	}
}

// OnReset registers a hook run after a successful explicit clear (schedule
// store reset, view reset).
func (l *Lifecycle) OnReset(fn func()) {
	l.resets = append(l.resets, fn)
}

// Shutdown fires the fire-and-forget cleanup notification on tab teardown.
// It must not block the exit path for long and delivery is not guaranteed; a
// failure is logged, never surfaced.
func (l *Lifecycle) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), l.cleanupTimeout)
	defer cancel()

	if err := l.backend.Cleanup(ctx); err != nil {
		l.logger.Debug("best-effort cleanup not delivered", zap.Error(err))
	}
}

// ClearData is the explicit flow: confirm with the user, await the cleanup
// call, and only on success invalidate the identity and reset dependent
// state. Returns whether data was actually cleared.
func (l *Lifecycle) ClearData(ctx context.Context) (bool, error) {
	ok, err := l.dialog.Confirm(ctx, "Clear all schedule data for this session?")
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := l.backend.Cleanup(ctx); err != nil {
		if alertErr := l.dialog.Alert(ctx, appErrors.FromError(err).Message); alertErr != nil {
			return false, alertErr
		}
		return false, err
	}

	if err := l.identity.Invalidate(); err != nil {
		return false, err
	}
	for _, fn := range l.resets {
		fn()
	}
	l.logger.Info("session data cleared")
	return true, nil
}
