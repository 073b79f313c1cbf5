package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ziming-L/wwu-course-navigator/internal/dto"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
	"github.com/Ziming-L/wwu-course-navigator/pkg/storage"
)

func float64p(v float64) *float64 { return &v }

// newFloorplanFixture lays out a building map file, the floorplan assets and
// a tab storage root under a temp directory.
func newFloorplanFixture(t *testing.T) (*FloorplanService, *storage.TabStorage) {
	t.Helper()
	root := t.TempDir()

	directory := dto.BuildingMap{
		"Arntzen Hall": {FileName: "AH.pdf", Lat: float64p(48.7331), Lon: float64p(-122.4855)},
		"Bond Hall":    {FileName: "BH.pdf"},
		"No Asset":     {FileName: ""},
	}
	raw, err := json.Marshal(directory)
	require.NoError(t, err)
	mapPath := filepath.Join(root, "building_map.json")
	require.NoError(t, os.WriteFile(mapPath, raw, 0o644))

	planDir := filepath.Join(root, "floorplans")
	require.NoError(t, os.MkdirAll(planDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(planDir, "AH.pdf"), []byte("%PDF-AH"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(planDir, "BH.pdf"), []byte("%PDF-BH"), 0o644))

	store, err := storage.NewTabStorage(filepath.Join(root, "tmp"))
	require.NoError(t, err)

	return NewFloorplanService(mapPath, planDir, store, NewMetricsService(), nil), store
}

func TestFloorplanAnnotateExactMatch(t *testing.T) {
	svc, store := newFloorplanFixture(t)

	sched := models.Schedule{
		"Monday": {{Building: "Arntzen Hall", Room: "004", Campus: models.CampusMain}},
	}
	svc.Annotate("tab-1", sched)

	occ := sched["Monday"][0]
	assert.Equal(t, "AH_004.pdf", occ.MapDocument)
	require.NotNil(t, occ.Lat)
	assert.InDelta(t, 48.7331, *occ.Lat, 0.0001)
	assert.True(t, store.Exists("tab-1", filepath.Join("floorplans", "AH_004.pdf")))
}

func TestFloorplanAnnotateFuzzyMatch(t *testing.T) {
	svc, _ := newFloorplanFixture(t)

	sched := models.Schedule{
		"Tuesday": {{Building: "arntzen hall", Room: "210", Campus: models.CampusMain}},
	}
	svc.Annotate("tab-1", sched)

	assert.Equal(t, "AH_210.pdf", sched["Tuesday"][0].MapDocument)
}

func TestFloorplanAnnotateSkipsOnline(t *testing.T) {
	svc, _ := newFloorplanFixture(t)

	sched := models.Schedule{
		"Wednesday": {{Building: models.OnlineBuilding, Room: models.OnlineRoom, Campus: models.CampusOnline}},
	}
	svc.Annotate("tab-1", sched)

	occ := sched["Wednesday"][0]
	assert.Empty(t, occ.MapDocument)
	assert.Nil(t, occ.Lat)
}

func TestFloorplanAnnotateNoAsset(t *testing.T) {
	svc, _ := newFloorplanFixture(t)

	sched := models.Schedule{
		"Thursday": {{Building: "No Asset", Room: "1", Campus: models.CampusMain}},
	}
	svc.Annotate("tab-1", sched)

	assert.Empty(t, sched["Thursday"][0].MapDocument)
}

func TestFloorplanAnnotateMissingDirectoryFile(t *testing.T) {
	store, err := storage.NewTabStorage(filepath.Join(t.TempDir(), "tmp"))
	require.NoError(t, err)
	svc := NewFloorplanService(filepath.Join(t.TempDir(), "missing.json"), t.TempDir(), store, nil, nil)

	sched := models.Schedule{
		"Friday": {{Building: "Arntzen Hall", Room: "004", Campus: models.CampusMain}},
	}
	svc.Annotate("tab-1", sched)

	// annotation degrades to a no-op
	assert.Empty(t, sched["Friday"][0].MapDocument)
}

func TestFloorplanAnnotateSharedRoomsCached(t *testing.T) {
	svc, _ := newFloorplanFixture(t)

	sched := models.Schedule{
		"Monday":    {{Building: "Arntzen Hall", Room: "004", Campus: models.CampusMain}},
		"Wednesday": {{Building: "Arntzen Hall", Room: "004", Campus: models.CampusMain}},
	}
	svc.Annotate("tab-1", sched)

	assert.Equal(t, "AH_004.pdf", sched["Monday"][0].MapDocument)
	assert.Equal(t, "AH_004.pdf", sched["Wednesday"][0].MapDocument)
}
