package dto

// WireEntry is the manual-entry submission shape: dates in MM/DD/YYYY,
// times in 12-hour hh:mm AM/PM, location flattened to
// "<campus>, <building>, <room>".
type WireEntry struct {
	CourseName    string   `json:"courseName" validate:"required"`
	CourseCode    string   `json:"courseCode" validate:"required"`
	CourseSection string   `json:"courseSection" validate:"required"`
	CreditHours   string   `json:"creditHours" validate:"required"`
	CRN           string   `json:"crn" validate:"required"`
	StartDate     string   `json:"startDate" validate:"required"`
	EndDate       string   `json:"endDate" validate:"required"`
	Days          []string `json:"days" validate:"required,min=1"`
	StartTime     string   `json:"startTime" validate:"required"`
	EndTime       string   `json:"endTime" validate:"required"`
	Location      string   `json:"location" validate:"required"`
	Instructor    string   `json:"instructor" validate:"required"`
}

// SubmitEntriesRequest is the POST /parse_text payload.
type SubmitEntriesRequest struct {
	Entries []WireEntry `json:"entries" validate:"required,min=1,dive"`
}

// BuildingInfo is one row of the building directory file: the floorplan asset
// name plus optional map coordinates.
type BuildingInfo struct {
	FileName string   `json:"fileName"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
}

// BuildingMap is the directory file shape, keyed by official building name.
type BuildingMap map[string]BuildingInfo
