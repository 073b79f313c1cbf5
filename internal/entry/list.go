package entry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/internal/dialog"
	"github.com/Ziming-L/wwu-course-navigator/internal/dto"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
	"github.com/Ziming-L/wwu-course-navigator/internal/schedule"
	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
)

type submitter interface {
	SubmitEntries(ctx context.Context, req dto.SubmitEntriesRequest) (models.Schedule, error)
}

// Controller owns the ordered authoring list and orchestrates validation and
// submission.
type Controller struct {
	editors  []*Editor
	pipeline *Pipeline
	dialog   dialog.Service
	backend  submitter
	store    *schedule.Store
	logger   *zap.Logger
}

// NewController instantiates Controller.
func NewController(pipeline *Pipeline, d dialog.Service, backend submitter, store *schedule.Store, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		pipeline: pipeline,
		dialog:   d,
		backend:  backend,
		store:    store,
		logger:   logger,
	}
}

// Add appends an editor to the end of the list.
func (c *Controller) Add(ed *Editor) {
	c.editors = append(c.editors, ed)
}

// Remove detaches the editor at i from the list. Other editors keep their
// state untouched.
func (c *Controller) Remove(i int) {
	if i < 0 || i >= len(c.editors) {
		return
	}
	c.editors[i].Detach()
	c.editors = append(c.editors[:i], c.editors[i+1:]...)
}

// Editors returns the list in order.
func (c *Controller) Editors() []*Editor {
	return c.editors
}

// Len returns the number of entries being authored.
func (c *Controller) Len() int {
	return len(c.editors)
}

// Submit validates the batch strictly in list order, stopping at the first
// failing entry, then submits the wire-shaped batch. Success replaces the
// schedule store wholesale and clears the authoring list; any failure keeps
// the list intact for correction. Each attempt restarts validation from entry
// zero.
func (c *Controller) Submit(ctx context.Context) error {
	if len(c.editors) == 0 {
		message := "Add at least one course entry before saving."
		if err := c.dialog.Alert(ctx, message); err != nil {
			return err
		}
		return appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}

	for i, ed := range c.editors {
		if err := c.pipeline.Run(ctx, i, ed); err != nil {
			return err
		}
	}

	wire := make([]dto.WireEntry, 0, len(c.editors))
	for _, ed := range c.editors {
		entry, err := wireFromDraft(ed.Draft())
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "entry transform failed")
		}
		wire = append(wire, entry)
	}

	sched, err := c.backend.SubmitEntries(ctx, dto.SubmitEntriesRequest{Entries: wire})
	if err != nil {
		c.logger.Warn("manual submission failed", zap.Error(err))
		if alertErr := c.dialog.Alert(ctx, appErrors.FromError(err).Message); alertErr != nil {
			return alertErr
		}
		return err
	}

	c.store.Replace(sched)
	for _, ed := range c.editors {
		ed.Detach()
	}
	c.editors = nil
	c.logger.Info("manual submission accepted", zap.Int("entries", len(wire)))
	return nil
}

// wireFromDraft reshapes a validated draft for the wire: MM/DD/YYYY dates,
// 12-hour hh:mm AM/PM times, and the flattened location string.
func wireFromDraft(e models.CourseEntry) (dto.WireEntry, error) {
	startDate, err := time.Parse(dateLayout, strings.TrimSpace(e.StartDate))
	if err != nil {
		return dto.WireEntry{}, fmt.Errorf("start date: %w", err)
	}
	endDate, err := time.Parse(dateLayout, strings.TrimSpace(e.EndDate))
	if err != nil {
		return dto.WireEntry{}, fmt.Errorf("end date: %w", err)
	}
	startTime, err := time.Parse("15:04", strings.TrimSpace(e.StartTime))
	if err != nil {
		return dto.WireEntry{}, fmt.Errorf("start time: %w", err)
	}
	endTime, err := time.Parse("15:04", strings.TrimSpace(e.EndTime))
	if err != nil {
		return dto.WireEntry{}, fmt.Errorf("end time: %w", err)
	}

	return dto.WireEntry{
		CourseName:    strings.TrimSpace(e.CourseName),
		CourseCode:    strings.TrimSpace(e.CourseCode),
		CourseSection: strings.TrimSpace(e.CourseSection),
		CreditHours:   strings.TrimSpace(e.CreditHours),
		CRN:           strings.TrimSpace(e.CRN),
		StartDate:     startDate.Format("01/02/2006"),
		EndDate:       endDate.Format("01/02/2006"),
		Days:          e.Days,
		StartTime:     startTime.Format("03:04 PM"),
		EndTime:       endTime.Format("03:04 PM"),
		Location:      fmt.Sprintf("%s, %s, %s", e.Campus, strings.TrimSpace(e.Building), strings.TrimSpace(e.Room)),
		Instructor:    strings.TrimSpace(e.Instructor),
	}, nil
}
