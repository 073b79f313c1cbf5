package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ziming-L/wwu-course-navigator/pkg/storage"
)

func newFilesRouter(t *testing.T) (*gin.Engine, *storage.TabStorage, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	root := t.TempDir()

	dataDir := filepath.Join(root, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "building_map_with_coords.json"), []byte(`{}`), 0o644))

	store, err := storage.NewTabStorage(filepath.Join(root, "tmp"))
	require.NoError(t, err)

	h := NewFilesHandler(store, dataDir)
	r := gin.New()
	r.GET("/data/:filename", h.Data)
	r.GET("/:tabId/schedule.pdf", h.SchedulePDF)
	r.HEAD("/:tabId/schedule.pdf", h.SchedulePDF)
	r.GET("/:tabId/floorplans/:filename", h.Floorplan)
	r.HEAD("/:tabId/floorplans/:filename", h.Floorplan)
	return r, store, dataDir
}

func TestFilesDataServesDirectory(t *testing.T) {
	r, _, _ := newFilesRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/data/building_map_with_coords.json", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestFilesFloorplanServesAndProbes(t *testing.T) {
	r, store, _ := newFilesRouter(t)
	_, err := store.Save("tab-1", filepath.Join("floorplans", "AH_004.pdf"), []byte("%PDF-AH"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/tab-1/floorplans/AH_004.pdf", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-AH", w.Body.String())

	// the existence probe uses HEAD against the same route
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodHead, "/tab-1/floorplans/AH_004.pdf", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFilesFloorplanMissing(t *testing.T) {
	r, _, _ := newFilesRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodHead, "/tab-1/floorplans/ZZ_000.pdf", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilesFloorplanTraversalBlocked(t *testing.T) {
	r, store, dataDir := newFilesRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "secret.txt"), []byte("secret"), 0o644))
	_, err := store.Save("tab-1", filepath.Join("floorplans", "AH_004.pdf"), []byte("%PDF-AH"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/tab-1/floorplans/..%2F..%2Fsecret.txt", nil)
	r.ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestFilesSchedulePDF(t *testing.T) {
	r, store, _ := newFilesRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/tab-1/schedule.pdf", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	_, err := store.Save("tab-1", "schedule.pdf", []byte("%PDF-SCHEDULE"))
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/tab-1/schedule.pdf", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-SCHEDULE", w.Body.String())
}
