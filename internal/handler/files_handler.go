package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
	"github.com/Ziming-L/wwu-course-navigator/pkg/middleware/tabid"
	"github.com/Ziming-L/wwu-course-navigator/pkg/response"
	"github.com/Ziming-L/wwu-course-navigator/pkg/storage"
)

// FilesHandler serves per-tab session documents and the static data files.
// http.ServeFile answers HEAD as well, which is what the client's floorplan
// existence probe relies on.
type FilesHandler struct {
	storage *storage.TabStorage
	dataDir string
}

// NewFilesHandler constructs handler.
func NewFilesHandler(store *storage.TabStorage, dataDir string) *FilesHandler {
	return &FilesHandler{storage: store, dataDir: dataDir}
}

// Floorplan serves GET|HEAD /:tabId/floorplans/:filename.
func (h *FilesHandler) Floorplan(c *gin.Context) {
	id := tabid.Sanitize(c.Param("tabId"))
	name := filepath.Base(c.Param("filename"))

	path := h.storage.Path(id, filepath.Join("floorplans", name))
	if !h.storage.Exists(id, filepath.Join("floorplans", name)) {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	http.ServeFile(c.Writer, c.Request, path)
}

// SchedulePDF serves GET|HEAD /:tabId/schedule.pdf, the original uploaded
// document or the generated one for manual sessions.
func (h *FilesHandler) SchedulePDF(c *gin.Context) {
	id := tabid.Sanitize(c.Param("tabId"))

	if !h.storage.Exists(id, "schedule.pdf") {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	http.ServeFile(c.Writer, c.Request, h.storage.Path(id, "schedule.pdf"))
}

// Data serves GET /data/:filename, e.g. the building directory file.
func (h *FilesHandler) Data(c *gin.Context) {
	name := filepath.Base(c.Param("filename"))

	path := filepath.Join(h.dataDir, name)
	http.ServeFile(c.Writer, c.Request, path)
}
