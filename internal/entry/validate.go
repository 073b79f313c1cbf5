package entry

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Ziming-L/wwu-course-navigator/internal/dialog"
	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
)

// courseCodePattern is the accepted course code form: letters, one space,
// digits, case-insensitive (e.g. "math 204").
var courseCodePattern = regexp.MustCompile(`^(?i)[a-z]+ [0-9]+$`)

const dateLayout = "2006-01-02"

// Pipeline runs the fixed, ordered checks over one editor's current values,
// short-circuiting on the first failing stage. Every failure flags the
// offending fields and raises a dialog naming the entry, which blocks the
// whole batch until acknowledged.
type Pipeline struct {
	dialog dialog.Service
}

// NewPipeline constructs a Pipeline reporting through the given dialog
// service.
func NewPipeline(d dialog.Service) *Pipeline {
	return &Pipeline{dialog: d}
}

// Run validates the entry at the given list position (zero-based). The stage
// order is fixed: required fields, date range, day selection, time range,
// course code format.
func (p *Pipeline) Run(ctx context.Context, index int, ed *Editor) error {
	ed.ClearFlags()

	stages := []func(context.Context, int, *Editor) error{
		p.checkRequired,
		p.checkDateRange,
		p.checkDaySelection,
		p.checkTimeRange,
		p.checkCourseCode,
	}
	for _, stage := range stages {
		if err := stage(ctx, index, ed); err != nil {
			return err
		}
	}
	return nil
}

// checkRequired flags every currently-required field that is empty after
// trimming, respecting the defaults/campus overrides.
func (p *Pipeline) checkRequired(ctx context.Context, index int, ed *Editor) error {
	var missing []string
	for f := Field(0); f < fieldCount; f++ {
		if !ed.Required(f) {
			continue
		}
		if strings.TrimSpace(ed.Value(f)) == "" {
			ed.Flag(f)
			missing = append(missing, f.String())
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return p.fail(ctx, fmt.Sprintf("Entry %d: please fill in all required fields (%s).",
		index+1, strings.Join(missing, ", ")))
}

// checkDateRange compares the dates by calendar value, not string order.
func (p *Pipeline) checkDateRange(ctx context.Context, index int, ed *Editor) error {
	start, errStart := time.Parse(dateLayout, strings.TrimSpace(ed.Value(FieldStartDate)))
	end, errEnd := time.Parse(dateLayout, strings.TrimSpace(ed.Value(FieldEndDate)))
	if errStart != nil || errEnd != nil {
		ed.Flag(FieldStartDate)
		ed.Flag(FieldEndDate)
		return p.fail(ctx, fmt.Sprintf("Entry %d: dates must be valid calendar dates (YYYY-MM-DD).", index+1))
	}
	if end.Before(start) {
		ed.Flag(FieldStartDate)
		ed.Flag(FieldEndDate)
		return p.fail(ctx, fmt.Sprintf("Entry %d: the end date is before the start date.", index+1))
	}
	return nil
}

func (p *Pipeline) checkDaySelection(ctx context.Context, index int, ed *Editor) error {
	if len(ed.SelectedDays()) > 0 {
		return nil
	}
	ed.FlagDays()
	return p.fail(ctx, fmt.Sprintf("Entry %d: select at least one day.", index+1))
}

// checkTimeRange compares zero-padded 24-hour HH:MM strings; lexicographic
// order is time order for same-day values of that form.
func (p *Pipeline) checkTimeRange(ctx context.Context, index int, ed *Editor) error {
	start := strings.TrimSpace(ed.Value(FieldStartTime))
	end := strings.TrimSpace(ed.Value(FieldEndTime))
	if end < start {
		ed.Flag(FieldStartTime)
		ed.Flag(FieldEndTime)
		return p.fail(ctx, fmt.Sprintf("Entry %d: the end time is before the start time.", index+1))
	}
	return nil
}

// checkCourseCode validates the code format and attaches a live re-check so
// subsequent edits clear or restore the flag immediately.
func (p *Pipeline) checkCourseCode(ctx context.Context, index int, ed *Editor) error {
	code := strings.TrimSpace(ed.Value(FieldCourseCode))
	if courseCodePattern.MatchString(code) {
		return nil
	}
	ed.Flag(FieldCourseCode)
	ed.attachLiveCheck(FieldCourseCode, func(value string) bool {
		return courseCodePattern.MatchString(strings.TrimSpace(value))
	})
	return p.fail(ctx, fmt.Sprintf("Entry %d: the course code must look like \"CSCI 241\".", index+1))
}

// fail raises the blocking dialog and converts the stage into a validation
// error.
func (p *Pipeline) fail(ctx context.Context, message string) error {
	if err := p.dialog.Alert(ctx, message); err != nil {
		return err
	}
	return appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
