// Package schedule holds the canonical day-indexed schedule produced by
// either ingestion path.
package schedule

import (
	"fmt"

	"github.com/Ziming-L/wwu-course-navigator/internal/models"
)

// Store is the process-wide schedule state. It is replaced wholesale on every
// successful ingestion, never merged; day navigation state lives beside it so
// a replacement can pick the first day automatically.
type Store struct {
	schedule   models.Schedule
	selected   string
	navEnabled bool
}

// NewStore returns an empty store with navigation disabled.
func NewStore() *Store {
	return &Store{schedule: models.Schedule{}}
}

// Replace swaps in a freshly ingested schedule, enables day navigation and
// selects the first populated day. The course-identity flag is derived here
// so the rest of the program reads a plain boolean instead of matching
// sentinel strings.
func (s *Store) Replace(sched models.Schedule) {
	if sched == nil {
		sched = models.Schedule{}
	}
	for day := range sched {
		for i := range sched[day] {
			sched[day][i].Unknown = sched[day][i].LacksCourseIdentity()
		}
	}

	s.schedule = sched
	days := sched.Days()
	s.navEnabled = len(days) > 0
	if len(days) > 0 {
		s.selected = days[0]
	} else {
		s.selected = ""
	}
}

// Reset empties the store and disables navigation.
func (s *Store) Reset() {
	s.schedule = models.Schedule{}
	s.selected = ""
	s.navEnabled = false
}

// Days lists the populated weekdays in weekday order.
func (s *Store) Days() []string {
	return s.schedule.Days()
}

// NavEnabled reports whether day navigation is available.
func (s *Store) NavEnabled() bool {
	return s.navEnabled
}

// Selected returns the currently selected day, if any.
func (s *Store) Selected() string {
	return s.selected
}

// Select switches the selected day.
func (s *Store) Select(day string) error {
	if !models.IsWeekday(day) {
		return fmt.Errorf("unknown weekday %q", day)
	}
	if !s.navEnabled {
		return fmt.Errorf("no schedule loaded")
	}
	s.selected = day
	return nil
}

// Snapshot returns the current schedule. Callers must treat it as read-only
// and must not assume consistency across an asynchronous suspension.
func (s *Store) Snapshot() models.Schedule {
	return s.schedule
}

// Occurrences returns the selected or given day's classes in stored order.
func (s *Store) Occurrences(day string) []models.ClassOccurrence {
	return s.schedule[day]
}
