package service

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/internal/dto"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
	"github.com/Ziming-L/wwu-course-navigator/internal/parser"
	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
	"github.com/Ziming-L/wwu-course-navigator/pkg/export"
	"github.com/Ziming-L/wwu-course-navigator/pkg/storage"
)

const (
	scheduleDocument = "schedule.pdf"
	parsedSchedule   = "schedule_parsed.json"
)

// ScheduleService owns both ingestion paths: uploaded schedule documents and
// manual entry batches. Either path replaces the tab's parsed schedule
// wholesale.
type ScheduleService struct {
	storage    *storage.TabStorage
	floorplans *FloorplanService
	exporter   *export.PDFExporter
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(store *storage.TabStorage, floorplans *FloorplanService, exporter *export.PDFExporter, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		storage:    store,
		floorplans: floorplans,
		exporter:   exporter,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
	}
}

// ParseUpload stores the uploaded document for the tab, extracts its text and
// parses the schedule from it.
func (s *ScheduleService) ParseUpload(tabID, filename string, file io.Reader) (models.Schedule, error) {
	start := time.Now()

	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Please upload a PDF")
	}

	path, err := s.storage.SaveStream(tabID, scheduleDocument, file)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store schedule document")
	}

	lines, err := extractLines(path)
	if err != nil {
		s.metrics.ObserveParse("upload", err, time.Since(start))
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not read the uploaded document")
	}

	sched := parser.ParseScheduleLines(lines)
	if len(sched) == 0 {
		err := appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "no schedule entries found in document")
		s.metrics.ObserveParse("upload", err, time.Since(start))
		return nil, err
	}

	if err := s.finalize(tabID, sched); err != nil {
		s.metrics.ObserveParse("upload", err, time.Since(start))
		return nil, err
	}

	s.metrics.ObserveParse("upload", nil, time.Since(start))
	s.logger.Info("schedule loaded from document", zap.String("tab_id", tabID), zap.Int("days", len(sched)))
	return sched, nil
}

// ParseEntries turns a manual entry batch into the parsed schedule, and
// renders a schedule document so the tab has one without an upload.
func (s *ScheduleService) ParseEntries(tabID string, req dto.SubmitEntriesRequest) (models.Schedule, error) {
	start := time.Now()

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid entries payload")
	}

	sched := parser.ParseScheduleLines(parser.LinesFromEntries(req.Entries))
	if err := s.finalize(tabID, sched); err != nil {
		s.metrics.ObserveParse("manual", err, time.Since(start))
		return nil, err
	}

	if doc, err := s.renderScheduleDocument(sched); err != nil {
		s.logger.Warn("schedule document render failed", zap.String("tab_id", tabID), zap.Error(err))
	} else if _, err := s.storage.Save(tabID, scheduleDocument, doc); err != nil {
		s.logger.Warn("schedule document save failed", zap.String("tab_id", tabID), zap.Error(err))
	}

	s.metrics.ObserveParse("manual", nil, time.Since(start))
	s.logger.Info("schedule loaded from manual input", zap.String("tab_id", tabID), zap.Int("days", len(sched)))
	return sched, nil
}

// Cleanup drops every session file held for the tab.
func (s *ScheduleService) Cleanup(tabID string) error {
	if err := s.storage.RemoveTab(tabID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clean up session data")
	}
	s.metrics.RecordCleanup()
	s.logger.Info("session data cleaned up", zap.String("tab_id", tabID))
	return nil
}

// finalize annotates floorplans and persists the parsed schedule for the tab.
func (s *ScheduleService) finalize(tabID string, sched models.Schedule) error {
	s.floorplans.Annotate(tabID, sched)

	raw, err := json.MarshalIndent(sched, "", "  ")
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode schedule")
	}
	if _, err := s.storage.Save(tabID, parsedSchedule, raw); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist schedule")
	}
	return nil
}

func (s *ScheduleService) renderScheduleDocument(sched models.Schedule) ([]byte, error) {
	headers := []string{"Time", "Course", "Location", "Instructor"}
	sections := map[string]export.Dataset{}
	order := sched.Days()

	for _, day := range order {
		rows := make([]map[string]string, 0, len(sched[day]))
		for _, occ := range sched[day] {
			location := fmt.Sprintf("%s %s", occ.Building, occ.Room)
			if occ.Online() {
				location = string(models.CampusOnline)
			}
			rows = append(rows, map[string]string{
				"Time":       occ.Time,
				"Course":     occ.Course,
				"Location":   location,
				"Instructor": occ.Instructor,
			})
		}
		sections[day] = export.Dataset{Headers: headers, Rows: rows}
	}

	return s.exporter.Render("Course Schedule", sections, order)
}

// extractLines pulls non-empty trimmed text lines out of a PDF document.
func extractLines(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var lines []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", pageNum, err)
		}
		for _, line := range strings.Split(text, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
	}
	return lines, nil
}
