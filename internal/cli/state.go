package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/internal/models"
)

const scheduleCache = "schedule.json"

// The fetched schedule is cached in the session state directory so day views
// work across command invocations within the same session. It is dropped
// whenever the session is cleared.

func (a *app) stateDir() (string, error) {
	dir := a.cfg.Client.StateDir
	if dir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("resolve state directory: %w", err)
		}
		dir = filepath.Join(cache, "course-navigator")
	}
	return dir, os.MkdirAll(dir, 0o755)
}

func (a *app) cacheSchedule(sched models.Schedule) {
	dir, err := a.stateDir()
	if err != nil {
		a.logger.Warn("schedule cache unavailable", zap.Error(err))
		return
	}
	raw, err := json.Marshal(sched)
	if err != nil {
		return
	}
	if err := os.WriteFile(filepath.Join(dir, scheduleCache), raw, 0o600); err != nil {
		a.logger.Warn("schedule cache write failed", zap.Error(err))
	}
}

func (a *app) loadCachedSchedule() (models.Schedule, bool) {
	dir, err := a.stateDir()
	if err != nil {
		return nil, false
	}
	raw, err := os.ReadFile(filepath.Join(dir, scheduleCache))
	if err != nil {
		return nil, false
	}
	var sched models.Schedule
	if err := json.Unmarshal(raw, &sched); err != nil {
		return nil, false
	}
	return sched, true
}

func (a *app) dropCachedSchedule() {
	dir, err := a.stateDir()
	if err != nil {
		return
	}
	_ = os.Remove(filepath.Join(dir, scheduleCache))
}
