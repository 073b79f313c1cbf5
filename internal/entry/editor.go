// Package entry implements the manual-entry authoring pipeline: the per-entry
// editor with its two state axes, the ordered validation pipeline, and the
// list controller that turns a valid batch into a submission.
package entry

import (
	"context"

	"github.com/Ziming-L/wwu-course-navigator/internal/async"
	"github.com/Ziming-L/wwu-course-navigator/internal/buildings"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
)

// Field identifies one editable field of a course entry.
type Field int

const (
	FieldCourseName Field = iota
	FieldCourseCode
	FieldCourseSection
	FieldCreditHours
	FieldCRN
	FieldStartDate
	FieldEndDate
	FieldStartTime
	FieldEndTime
	FieldBuilding
	FieldRoom
	FieldInstructor
	fieldCount
)

// FieldOrder lists every field in display order.
var FieldOrder = []Field{
	FieldCourseName, FieldCourseCode, FieldCourseSection, FieldCreditHours,
	FieldCRN, FieldStartDate, FieldEndDate, FieldStartTime, FieldEndTime,
	FieldBuilding, FieldRoom, FieldInstructor,
}

var fieldLabels = map[Field]string{
	FieldCourseName:    "course name",
	FieldCourseCode:    "course code",
	FieldCourseSection: "course section",
	FieldCreditHours:   "credit hours",
	FieldCRN:           "CRN",
	FieldStartDate:     "start date",
	FieldEndDate:       "end date",
	FieldStartTime:     "start time",
	FieldEndTime:       "end time",
	FieldBuilding:      "building",
	FieldRoom:          "room",
	FieldInstructor:    "instructor",
}

func (f Field) String() string {
	return fieldLabels[f]
}

// defaultableFields are the course-identity fields the Defaults axis replaces
// when only the floor-plan location is of interest.
var defaultableFields = []Field{
	FieldCourseName, FieldCourseCode, FieldCourseSection,
	FieldCreditHours, FieldCRN, FieldInstructor,
}

var defaultValues = map[Field]string{
	FieldCourseName:    models.PlaceholderCourseName,
	FieldCourseCode:    models.PlaceholderCourseCode,
	FieldCourseSection: models.PlaceholderSection,
	FieldCreditHours:   models.PlaceholderCredits,
	FieldCRN:           models.PlaceholderCRN,
	FieldInstructor:    models.UnknownInstructor,
}

// DefaultsState is the defaults axis of the editor.
type DefaultsState int

const (
	DefaultsNormal DefaultsState = iota
	DefaultsApplied
)

type fieldState struct {
	value    string
	required bool
	visible  bool
	enabled  bool
	flagged  bool
	// liveCheck, once attached, re-evaluates the flag on every edit
	liveCheck func(string) bool
}

type locationSnapshot struct {
	building string
	room     string
}

// Editor owns one authored course entry's interactive state: field values,
// the defaults and campus axes with their pre-toggle snapshots, the building
// autocomplete, and the day selection group.
type Editor struct {
	fields [fieldCount]fieldState
	days   map[string]bool

	dayFlagged bool

	defaults         DefaultsState
	defaultsSnapshot map[Field]string

	campus         models.Campus
	campusSnapshot *locationSnapshot

	directory *buildings.Directory
	owner     *async.Owner

	suggestions     []buildings.Entry
	suggestionsOpen bool

	detached bool
}

// NewEditor creates an editor in its initial state: all fields required and
// visible, main campus, defaults off. The building directory load is kicked
// off lazily on behalf of this editor; if the editor is detached before the
// load resolves, the result is discarded.
func NewEditor(ctx context.Context, directory *buildings.Directory) *Editor {
	e := &Editor{
		days:      map[string]bool{},
		campus:    models.CampusMain,
		directory: directory,
		owner:     async.NewOwner(),
	}
	for f := Field(0); f < fieldCount; f++ {
		e.fields[f] = fieldState{required: true, visible: true, enabled: true}
	}
	if directory != nil {
		directory.LoadAsync(ctx, e.owner, nil)
	}
	return e
}

// SetField updates a field value. A field carrying a live check re-evaluates
// its flag on every edit.
func (e *Editor) SetField(f Field, value string) {
	state := &e.fields[f]
	state.value = value
	if state.liveCheck != nil {
		state.flagged = !state.liveCheck(value)
	}
}

// Value returns the field's current value.
func (e *Editor) Value(f Field) string {
	return e.fields[f].value
}

// Required reports whether the field currently takes part in required-field
// validation, respecting both axes.
func (e *Editor) Required(f Field) bool {
	return e.fields[f].required
}

// Visible reports whether the field's row is currently shown.
func (e *Editor) Visible(f Field) bool {
	return e.fields[f].visible
}

// Enabled reports whether the field currently accepts edits.
func (e *Editor) Enabled(f Field) bool {
	return e.fields[f].enabled
}

// Flag marks a field as failing validation.
func (e *Editor) Flag(f Field) {
	e.fields[f].flagged = true
}

// Flagged reports whether the field is currently marked as failing.
func (e *Editor) Flagged(f Field) bool {
	return e.fields[f].flagged
}

// ClearFlags resets every field flag and the day-group flag.
func (e *Editor) ClearFlags() {
	for f := Field(0); f < fieldCount; f++ {
		e.fields[f].flagged = false
	}
	e.dayFlagged = false
}

func (e *Editor) attachLiveCheck(f Field, check func(string) bool) {
	e.fields[f].liveCheck = check
}

// Defaults returns the editor's defaults-axis state.
func (e *Editor) Defaults() DefaultsState {
	return e.defaults
}

// DefaultsLabel is the affordance text, derived from the state and never the
// other way around.
func (e *Editor) DefaultsLabel() string {
	if e.defaults == DefaultsApplied {
		return "Restore Course Info"
	}
	return "Use Default Course Info"
}

// ToggleDefaults flips the defaults axis. Entering the defaulted state
// snapshots the six course-identity fields, overwrites them with the
// placeholders, and hides, disables and un-requires their rows; leaving it
// restores the snapshot and reinstates the rows.
func (e *Editor) ToggleDefaults() {
	if e.defaults == DefaultsNormal {
		e.defaultsSnapshot = make(map[Field]string, len(defaultableFields))
		for _, f := range defaultableFields {
			e.defaultsSnapshot[f] = e.fields[f].value
			e.fields[f].value = defaultValues[f]
			e.fields[f].required = false
			e.fields[f].enabled = false
			e.fields[f].visible = false
			e.fields[f].flagged = false
		}
		e.defaults = DefaultsApplied
		return
	}

	for _, f := range defaultableFields {
		e.fields[f].value = e.defaultsSnapshot[f]
		e.fields[f].required = true
		e.fields[f].enabled = true
		e.fields[f].visible = true
	}
	e.defaultsSnapshot = nil
	e.defaults = DefaultsNormal
}

// Campus returns the campus-axis state.
func (e *Editor) Campus() models.Campus {
	return e.campus
}

// SetCampus switches the campus axis. Going online snapshots building/room
// and substitutes the online sentinels; returning to main campus restores the
// snapshot when one exists, else clears both fields.
func (e *Editor) SetCampus(campus models.Campus) {
	if campus == e.campus {
		return
	}

	if campus == models.CampusOnline {
		e.campusSnapshot = &locationSnapshot{
			building: e.fields[FieldBuilding].value,
			room:     e.fields[FieldRoom].value,
		}
		e.fields[FieldBuilding].value = models.OnlineBuilding
		e.fields[FieldRoom].value = models.OnlineRoom
		for _, f := range []Field{FieldBuilding, FieldRoom} {
			e.fields[f].required = false
			e.fields[f].visible = false
			e.fields[f].flagged = false
		}
		e.suggestionsOpen = false
		e.campus = models.CampusOnline
		return
	}

	if e.campusSnapshot != nil {
		e.fields[FieldBuilding].value = e.campusSnapshot.building
		e.fields[FieldRoom].value = e.campusSnapshot.room
		e.campusSnapshot = nil
	} else {
		e.fields[FieldBuilding].value = ""
		e.fields[FieldRoom].value = ""
	}
	for _, f := range []Field{FieldBuilding, FieldRoom} {
		e.fields[f].required = true
		e.fields[f].visible = true
	}
	e.campus = models.CampusMain
}

// ToggleDay checks or unchecks a weekday. Checking any day clears the
// day-group error indicator.
func (e *Editor) ToggleDay(day string, checked bool) {
	if !models.IsWeekday(day) {
		return
	}
	e.days[day] = checked
	if checked {
		e.dayFlagged = false
	}
}

// SelectedDays returns the checked weekdays in weekday order.
func (e *Editor) SelectedDays() []string {
	var days []string
	for _, day := range models.WeekdayOrder {
		if e.days[day] {
			days = append(days, day)
		}
	}
	return days
}

// FlagDays marks the day-selection group as failing.
func (e *Editor) FlagDays() {
	e.dayFlagged = true
}

// DayFlagged reports the day-group error indicator.
func (e *Editor) DayFlagged() bool {
	return e.dayFlagged
}

// FocusBuilding opens the suggestion list for the field's current text.
func (e *Editor) FocusBuilding() {
	e.refreshSuggestions()
	e.suggestionsOpen = true
}

// SetBuildingText updates the building field and recomputes suggestions.
func (e *Editor) SetBuildingText(text string) {
	e.SetField(FieldBuilding, text)
	e.refreshSuggestions()
	e.suggestionsOpen = true
}

// Suggestions returns the current matches and whether the list is open.
func (e *Editor) Suggestions() ([]buildings.Entry, bool) {
	if !e.suggestionsOpen {
		return nil, false
	}
	return e.suggestions, true
}

// SelectSuggestion fills the building field with the canonical
// "<fullName> -- <abbreviation>" form and closes the list.
func (e *Editor) SelectSuggestion(i int) {
	if i < 0 || i >= len(e.suggestions) {
		return
	}
	e.SetField(FieldBuilding, e.suggestions[i].Suggestion())
	e.CloseSuggestions()
}

// CloseSuggestions closes the list; any interaction outside the field and its
// list routes here.
func (e *Editor) CloseSuggestions() {
	e.suggestionsOpen = false
	e.suggestions = nil
}

func (e *Editor) refreshSuggestions() {
	if e.directory == nil {
		e.suggestions = nil
		return
	}
	e.suggestions = e.directory.Query(e.fields[FieldBuilding].value)
}

// Detach removes the editor from the authoring list. In-flight work it owns
// is discarded when it resolves; other editors are unaffected.
func (e *Editor) Detach() {
	e.owner.Close()
	e.CloseSuggestions()
	e.detached = true
}

// Detached reports whether the editor has been removed.
func (e *Editor) Detached() bool {
	return e.detached
}

// Draft materialises the current values as a CourseEntry.
func (e *Editor) Draft() models.CourseEntry {
	return models.CourseEntry{
		CourseName:    e.Value(FieldCourseName),
		CourseCode:    e.Value(FieldCourseCode),
		CourseSection: e.Value(FieldCourseSection),
		CreditHours:   e.Value(FieldCreditHours),
		CRN:           e.Value(FieldCRN),
		StartDate:     e.Value(FieldStartDate),
		EndDate:       e.Value(FieldEndDate),
		Days:          e.SelectedDays(),
		StartTime:     e.Value(FieldStartTime),
		EndTime:       e.Value(FieldEndTime),
		Campus:        e.campus,
		Building:      e.Value(FieldBuilding),
		Room:          e.Value(FieldRoom),
		Instructor:    e.Value(FieldInstructor),
	}
}
