// Package floorplan resolves a class occurrence to a viewable floor-plan and
// map presentation, probing availability before anything is embedded.
package floorplan

import (
	"context"

	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/internal/async"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
)

type prober interface {
	ProbeFloorplan(ctx context.Context, filename string) error
	FloorplanURL(filename string) (string, error)
}

// State is the outcome of a resolution.
type State int

const (
	// StateUnavailable: the occurrence has no floor-plan document at all.
	StateUnavailable State = iota
	// StateProbeFailed: a document exists but the existence check did not
	// succeed; nothing is embedded.
	StateProbeFailed
	// StateAvailable: the document view may be embedded.
	StateAvailable
)

// EmbeddedView is one embeddable presentation (document or map). Every view
// reports its own load outcome independently.
type EmbeddedView struct {
	Kind   string
	URL    string
	logger *zap.Logger
}

// ReportLoad records the view's load result for observability.
func (v *EmbeddedView) ReportLoad(err error) {
	if v == nil || v.logger == nil {
		return
	}
	if err != nil {
		v.logger.Warn("embedded view failed to load", zap.String("kind", v.Kind), zap.String("url", v.URL), zap.Error(err))
		return
	}
	v.logger.Debug("embedded view loaded", zap.String("kind", v.Kind), zap.String("url", v.URL))
}

// Resolution describes what may be presented for one occurrence.
type Resolution struct {
	State    State
	Document *EmbeddedView
	Map      *EmbeddedView
	Lat, Lon *float64
}

// Resolver performs the probe-then-embed flow. It carries an owner handle so
// a probe resolving after the resolver was torn down is discarded.
type Resolver struct {
	client prober
	owner  *async.Owner
	logger *zap.Logger
}

// NewResolver instantiates Resolver.
func NewResolver(client prober, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{client: client, owner: async.NewOwner(), logger: logger}
}

// Resolve probes the occurrence's document and builds its presentation: no
// document means the static unavailable state; a failed probe means a warning
// and no embed; success yields the document view, plus a map view when
// coordinates are present.
func (r *Resolver) Resolve(ctx context.Context, occ models.ClassOccurrence) Resolution {
	if occ.MapDocument == "" {
		return Resolution{State: StateUnavailable}
	}

	if err := r.client.ProbeFloorplan(ctx, occ.MapDocument); err != nil {
		r.logger.Warn("floorplan probe failed", zap.String("document", occ.MapDocument), zap.Error(err))
		return Resolution{State: StateProbeFailed}
	}

	url, err := r.client.FloorplanURL(occ.MapDocument)
	if err != nil {
		return Resolution{State: StateProbeFailed}
	}

	res := Resolution{
		State:    StateAvailable,
		Document: &EmbeddedView{Kind: "document", URL: url, logger: r.logger},
	}
	if occ.Lat != nil && occ.Lon != nil {
		res.Map = &EmbeddedView{Kind: "map", URL: url, logger: r.logger}
		res.Lat = occ.Lat
		res.Lon = occ.Lon
	}
	return res
}

// ResolveAsync runs Resolve off the caller's flow and applies the result only
// if the resolver is still live when the probe completes.
func (r *Resolver) ResolveAsync(ctx context.Context, occ models.ClassOccurrence, apply func(Resolution)) {
	go func() {
		res := r.Resolve(ctx, occ)
		if !r.owner.Live() {
			return
		}
		if apply != nil {
			apply(res)
		}
	}()
}

// Close tears the resolver down; in-flight probe results are discarded.
func (r *Resolver) Close() {
	r.owner.Close()
}
