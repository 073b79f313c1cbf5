package floorplan

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ziming-L/wwu-course-navigator/internal/models"
	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
)

type proberStub struct {
	mu       sync.Mutex
	probeErr error
	probed   []string
	gate     chan struct{}
}

func (p *proberStub) ProbeFloorplan(_ context.Context, filename string) error {
	if p.gate != nil {
		<-p.gate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probed = append(p.probed, filename)
	return p.probeErr
}

func (p *proberStub) FloorplanURL(filename string) (string, error) {
	return "http://localhost:5500/tab-1/floorplans/" + filename, nil
}

func float64p(v float64) *float64 { return &v }

func TestResolveWithoutDocument(t *testing.T) {
	prober := &proberStub{}
	r := NewResolver(prober, nil)

	res := r.Resolve(context.Background(), models.ClassOccurrence{Building: "Arntzen Hall"})
	assert.Equal(t, StateUnavailable, res.State)
	assert.Nil(t, res.Document)
	assert.Empty(t, prober.probed)
}

func TestResolveProbeFailure(t *testing.T) {
	prober := &proberStub{probeErr: appErrors.ErrResourceUnavailable}
	r := NewResolver(prober, nil)

	res := r.Resolve(context.Background(), models.ClassOccurrence{MapDocument: "AH_004.pdf"})
	assert.Equal(t, StateProbeFailed, res.State)
	assert.Nil(t, res.Document)
	assert.Nil(t, res.Map)
}

func TestResolveAvailableWithCoordinates(t *testing.T) {
	prober := &proberStub{}
	r := NewResolver(prober, nil)

	res := r.Resolve(context.Background(), models.ClassOccurrence{
		MapDocument: "AH_004.pdf",
		Lat:         float64p(48.7331),
		Lon:         float64p(-122.4855),
	})

	require.Equal(t, StateAvailable, res.State)
	require.NotNil(t, res.Document)
	assert.Equal(t, "http://localhost:5500/tab-1/floorplans/AH_004.pdf", res.Document.URL)
	require.NotNil(t, res.Map)
	require.NotNil(t, res.Lat)
	assert.InDelta(t, 48.7331, *res.Lat, 0.0001)
	assert.Equal(t, []string{"AH_004.pdf"}, prober.probed)
}

func TestResolveAvailableWithoutCoordinates(t *testing.T) {
	r := NewResolver(&proberStub{}, nil)

	res := r.Resolve(context.Background(), models.ClassOccurrence{MapDocument: "BH_109.pdf"})
	require.Equal(t, StateAvailable, res.State)
	assert.NotNil(t, res.Document)
	assert.Nil(t, res.Map)
}

func TestResolveAsyncAppliesResult(t *testing.T) {
	r := NewResolver(&proberStub{}, nil)

	applied := make(chan Resolution, 1)
	r.ResolveAsync(context.Background(), models.ClassOccurrence{MapDocument: "AH_004.pdf"}, func(res Resolution) {
		applied <- res
	})

	select {
	case res := <-applied:
		assert.Equal(t, StateAvailable, res.State)
	case <-time.After(time.Second):
		t.Fatal("resolution never applied")
	}
}

func TestResolveAsyncDiscardedAfterClose(t *testing.T) {
	gate := make(chan struct{})
	r := NewResolver(&proberStub{gate: gate}, nil)

	applied := make(chan Resolution, 1)
	r.ResolveAsync(context.Background(), models.ClassOccurrence{MapDocument: "AH_004.pdf"}, func(res Resolution) {
		applied <- res
	})

	r.Close()
	close(gate)

	select {
	case <-applied:
		t.Fatal("stale resolution applied after close")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEmbeddedViewReportLoadNil(t *testing.T) {
	var view *EmbeddedView
	assert.NotPanics(t, func() { view.ReportLoad(nil) })
}
