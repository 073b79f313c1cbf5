package models

import "strings"

// WeekdayOrder fixes the rendering and sorting order of schedule days.
var WeekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// IsWeekday reports whether name is a full weekday name.
func IsWeekday(name string) bool {
	return WeekdayIndex(name) >= 0
}

// WeekdayIndex returns the position of name in WeekdayOrder, or -1.
func WeekdayIndex(name string) int {
	for i, day := range WeekdayOrder {
		if day == name {
			return i
		}
	}
	return -1
}

// Campus distinguishes a physically located class from an online one.
type Campus string

const (
	CampusMain   Campus = "Main Campus"
	CampusOnline Campus = "Online"
)

// Placeholder values substituted while an editor axis hides a field group.
const (
	OnlineBuilding = "Online"
	OnlineRoom     = "N/A"

	PlaceholderCourseName = "Class"
	PlaceholderCourseCode = "AAA 000"
	PlaceholderSection    = "0"
	PlaceholderCredits    = "0"
	PlaceholderCRN        = "00000"

	UnknownInstructor = "Unknown Instructor"
)

// CourseEntry is the authoring draft of one class. Dates are held in
// 2006-01-02 form and times in zero-padded 24-hour HH:MM until the entry is
// transformed to the wire shape.
type CourseEntry struct {
	CourseName    string
	CourseCode    string
	CourseSection string
	CreditHours   string
	CRN           string
	StartDate     string
	EndDate       string
	Days          []string
	StartTime     string
	EndTime       string
	Campus        Campus
	Building      string
	Room          string
	Instructor    string
}

// ClassOccurrence is one rendered class instance for a specific weekday.
// The JSON tags are the schedule wire shape; Unknown is derived on ingest and
// never crosses the wire.
type ClassOccurrence struct {
	Time        string   `json:"time"`
	Course      string   `json:"course"`
	Building    string   `json:"building"`
	Room        string   `json:"room"`
	Campus      Campus   `json:"campus"`
	Instructor  string   `json:"instructor"`
	MapDocument string   `json:"map_pdf,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
	Unknown     bool     `json:"-"`
}

// Online reports whether the occurrence has no physical location.
func (o ClassOccurrence) Online() bool {
	return o.Campus == CampusOnline
}

// LacksCourseIdentity reports whether the course label should be suppressed:
// either no course at all, or the placeholder identity an authored
// location-only entry carries.
func (o ClassOccurrence) LacksCourseIdentity() bool {
	course := strings.TrimSpace(o.Course)
	return course == "" || strings.HasPrefix(course, PlaceholderCourseCode)
}

// Schedule maps full weekday names to that day's occurrences, ordered by
// start time.
type Schedule map[string][]ClassOccurrence

// Days returns the populated weekdays in weekday order.
func (s Schedule) Days() []string {
	days := make([]string, 0, len(s))
	for _, day := range WeekdayOrder {
		if len(s[day]) > 0 {
			days = append(days, day)
		}
	}
	return days
}
