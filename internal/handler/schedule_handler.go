package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ziming-L/wwu-course-navigator/internal/dto"
	"github.com/Ziming-L/wwu-course-navigator/internal/service"
	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
	"github.com/Ziming-L/wwu-course-navigator/pkg/middleware/tabid"
	"github.com/Ziming-L/wwu-course-navigator/pkg/response"
)

// ScheduleHandler exposes both schedule ingestion endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// ParseSchedule handles POST /parse_schedule: a multipart schedule document
// upload, answered with the parsed weekday-indexed schedule.
func (h *ScheduleHandler) ParseSchedule(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Please upload a PDF"))
		return
	}
	defer file.Close() //nolint:errcheck

	sched, err := h.service.ParseUpload(tabid.Value(c), header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sched)
}

// ParseText handles POST /parse_text: a manual entry batch, answered with the
// parsed weekday-indexed schedule.
func (h *ScheduleHandler) ParseText(c *gin.Context) {
	var req dto.SubmitEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid entries payload"))
		return
	}

	sched, err := h.service.ParseEntries(tabid.Value(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sched)
}

// Cleanup handles POST /cleanup/:tabId, deleting the tab's session data.
func (h *ScheduleHandler) Cleanup(c *gin.Context) {
	id := tabid.Sanitize(c.Param("tabId"))
	if id == "" {
		response.Error(c, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing tab id"))
		return
	}

	if err := h.service.Cleanup(id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}
