// Package parser turns the raw schedule line protocol into a weekday-indexed
// schedule. Both ingestion paths meet here: uploaded documents are reduced to
// the same line stream that manual entries are rendered into.
package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Ziming-L/wwu-course-navigator/internal/dto"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
)

var (
	// codePattern matches a course code line, e.g. "CSCI 447 0" or "M/CS 375 A".
	codePattern = regexp.MustCompile(`^[A-Z/]+(?:/[A-Z]+)?\s*\d+[A-Z]?\s+[A-Z0-9]+$`)
	// meetingDatePattern matches a meeting date range, e.g. "01/07/2025 - 03/21/2025".
	meetingDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}\s*-\s*\d{2}/\d{2}/\d{4}$`)
)

// ParseScheduleLines walks the stripped line stream and collects every course
// meeting into its weekdays. Each day's occurrences are sorted by start time;
// occurrences with an unparseable time sort last.
func ParseScheduleLines(lines []string) models.Schedule {
	schedule := models.Schedule{}

	for idx := 0; idx < len(lines); idx++ {
		if !codePattern.MatchString(lines[idx]) || idx == 0 {
			continue
		}

		title := lines[idx-1]
		codeSec := lines[idx]

		// drop the trailing section number: "CSCI 447 0" -> "CSCI 447"
		parts := strings.Fields(codeSec)
		courseCode := strings.Join(parts[:len(parts)-1], " ")

		// skip credit hours and CRN
		cursor := idx + 3

		for cursor < len(lines) && meetingDatePattern.MatchString(lines[cursor]) {
			if cursor+3 >= len(lines) {
				break
			}
			daysLine := lines[cursor+1]
			timeLine := lines[cursor+2]
			locationLine := lines[cursor+3]

			// the next line is either the instructor or the start of another
			// meeting block
			instructor := models.UnknownInstructor
			moveBy := 4
			if cursor+4 < len(lines) {
				peek := strings.TrimSpace(lines[cursor+4])
				if peek != "" && !meetingDatePattern.MatchString(peek) && !codePattern.MatchString(peek) {
					instructor = peek
					moveBy = 5
				}
			}
			cursor += moveBy

			days := splitDays(daysLine)
			campus, building, room := splitLocation(locationLine)

			occurrence := models.ClassOccurrence{
				Time:       timeLine,
				Course:     fmt.Sprintf("%s - %s", courseCode, title),
				Building:   building,
				Room:       room,
				Campus:     campus,
				Instructor: instructor,
			}

			for _, day := range days {
				schedule[day] = append(schedule[day], occurrence)
			}
		}
	}

	for day := range schedule {
		sortByStartTime(schedule[day])
	}

	return schedule
}

// LinesFromEntries renders submitted manual entries into the raw line protocol
// so they flow through the same parser as uploaded documents.
func LinesFromEntries(entries []dto.WireEntry) []string {
	lines := make([]string, 0, len(entries)*9)
	for _, e := range entries {
		lines = append(lines,
			titleCase(e.CourseName),
			fmt.Sprintf("%s %s", strings.ToUpper(e.CourseCode), e.CourseSection),
			e.CreditHours,
			e.CRN,
			fmt.Sprintf("%s - %s", e.StartDate, e.EndDate),
			strings.Join(e.Days, ", "),
			fmt.Sprintf("%s - %s", e.StartTime, e.EndTime),
			e.Location,
			e.Instructor,
		)
	}
	return lines
}

func splitDays(line string) []string {
	var days []string
	for _, part := range strings.Split(line, ",") {
		day := strings.TrimSpace(part)
		if models.IsWeekday(day) {
			days = append(days, day)
		}
	}
	return days
}

// splitLocation pulls building and room from the last two comma parts and the
// campus from the first when present, e.g. "Main Campus, Arntzen Hall, 004".
func splitLocation(line string) (models.Campus, string, string) {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return models.CampusMain, strings.TrimSpace(line), ""
	}

	building := parts[len(parts)-2]
	room := parts[len(parts)-1]

	campus := models.CampusMain
	if len(parts) >= 3 && parts[0] != "" {
		campus = models.Campus(parts[0])
	}
	if building == models.OnlineBuilding {
		campus = models.CampusOnline
	}
	return campus, building, room
}

func sortByStartTime(occurrences []models.ClassOccurrence) {
	fallback, _ := time.Parse("3:04 PM", "11:59 PM")

	startOf := func(o models.ClassOccurrence) time.Time {
		raw := strings.TrimSpace(strings.Split(o.Time, "-")[0])
		t, err := time.Parse("3:04 PM", raw)
		if err != nil {
			return fallback
		}
		return t
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return startOf(occurrences[i]).Before(startOf(occurrences[j]))
	})
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
