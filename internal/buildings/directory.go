// Package buildings indexes the building directory for autocomplete: official
// name, floorplan abbreviation and matching over both.
package buildings

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/internal/async"
	"github.com/Ziming-L/wwu-course-navigator/internal/dto"
)

// Entry is one building offered by autocomplete.
type Entry struct {
	FullName     string
	Abbreviation string
}

// Suggestion formats the entry the way a selected suggestion fills the field.
func (e Entry) Suggestion() string {
	return e.FullName + " -- " + e.Abbreviation
}

type loader interface {
	LoadBuildingDirectory(ctx context.Context) (dto.BuildingMap, error)
}

// Directory loads the building table once per instance and answers substring
// queries. A failed load degrades to an empty result set; autocomplete then
// silently offers nothing.
type Directory struct {
	loader loader
	logger *zap.Logger

	mu      sync.Mutex
	loaded  bool
	entries []Entry
}

// NewDirectory constructs an unloaded directory.
func NewDirectory(l loader, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{loader: l, logger: logger}
}

// Load fetches and indexes the directory if it has not been loaded yet.
func (d *Directory) Load(ctx context.Context) {
	d.mu.Lock()
	if d.loaded {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	directory, err := d.loader.LoadBuildingDirectory(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loaded = true
	if err != nil {
		d.logger.Warn("building directory load failed, autocomplete disabled", zap.Error(err))
		return
	}
	d.entries = index(directory)
}

// LoadAsync dispatches Load on behalf of owner and invokes done afterwards,
// unless the owner was torn down while the load was in flight.
func (d *Directory) LoadAsync(ctx context.Context, owner *async.Owner, done func()) {
	go func() {
		d.Load(ctx)
		if owner != nil && !owner.Live() {
			return
		}
		if done != nil {
			done()
		}
	}()
}

// Query returns every entry whose full name or abbreviation contains text,
// case-insensitively, in directory order. An empty query matches everything.
func (d *Directory) Query(text string) []Entry {
	d.mu.Lock()
	defer d.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(text))
	matches := make([]Entry, 0, len(d.entries))
	for _, entry := range d.entries {
		if needle == "" ||
			strings.Contains(strings.ToLower(entry.FullName), needle) ||
			strings.Contains(strings.ToLower(entry.Abbreviation), needle) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// index flattens the wire map into name-ordered entries; the abbreviation is
// the floorplan filename without its extension.
func index(directory dto.BuildingMap) []Entry {
	entries := make([]Entry, 0, len(directory))
	for name, info := range directory {
		abbr := strings.TrimSuffix(info.FileName, path.Ext(info.FileName))
		entries = append(entries, Entry{FullName: name, Abbreviation: abbr})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].FullName < entries[j].FullName
	})
	return entries
}
