package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ziming-L/wwu-course-navigator/internal/dto"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
)

func TestParseScheduleLinesSingleMeeting(t *testing.T) {
	lines := []string{
		"Operating Systems",
		"CSCI 447 0",
		"4",
		"12345",
		"01/07/2025 - 03/21/2025",
		"Monday, Wednesday, Friday",
		"10:00 AM - 10:50 AM",
		"Main Campus, Communications Facility, 105",
		"Phil Nelson",
	}

	sched := ParseScheduleLines(lines)
	require.Len(t, sched["Monday"], 1)
	require.Len(t, sched["Wednesday"], 1)
	require.Len(t, sched["Friday"], 1)
	assert.Empty(t, sched["Tuesday"])

	occ := sched["Monday"][0]
	assert.Equal(t, "CSCI 447 - Operating Systems", occ.Course)
	assert.Equal(t, "10:00 AM - 10:50 AM", occ.Time)
	assert.Equal(t, "Communications Facility", occ.Building)
	assert.Equal(t, "105", occ.Room)
	assert.Equal(t, models.CampusMain, occ.Campus)
	assert.Equal(t, "Phil Nelson", occ.Instructor)
}

func TestParseScheduleLinesMultipleMeetingBlocks(t *testing.T) {
	lines := []string{
		"Data Structures",
		"CSCI 241 A",
		"4",
		"23456",
		"01/07/2025 - 03/21/2025",
		"Tuesday, Thursday",
		"9:00 AM - 9:50 AM",
		"Main Campus, Arntzen Hall, 004",
		"01/07/2025 - 03/21/2025",
		"Friday",
		"1:00 PM - 1:50 PM",
		"Main Campus, Bond Hall, 109",
		"Aran Clauson",
	}

	sched := ParseScheduleLines(lines)
	require.Len(t, sched["Tuesday"], 1)
	require.Len(t, sched["Friday"], 1)

	// the lecture block carries no trailing instructor line, so the fallback
	// applies to it alone
	assert.Equal(t, models.UnknownInstructor, sched["Tuesday"][0].Instructor)
	assert.Equal(t, "Aran Clauson", sched["Friday"][0].Instructor)
	assert.Equal(t, "Bond Hall", sched["Friday"][0].Building)
}

func TestParseScheduleLinesOnlineLocation(t *testing.T) {
	lines := []string{
		"Technical Writing",
		"ENG 302 B",
		"3",
		"34567",
		"01/07/2025 - 03/21/2025",
		"Wednesday",
		"2:00 PM - 3:50 PM",
		"Online, N/A",
		"Jane Doe",
	}

	sched := ParseScheduleLines(lines)
	require.Len(t, sched["Wednesday"], 1)
	occ := sched["Wednesday"][0]
	assert.Equal(t, models.CampusOnline, occ.Campus)
	assert.Equal(t, models.OnlineBuilding, occ.Building)
	assert.Equal(t, models.OnlineRoom, occ.Room)
	assert.True(t, occ.Online())
}

func TestParseScheduleLinesSortsByStartTime(t *testing.T) {
	lines := []string{
		"Afternoon Class",
		"CSCI 301 0",
		"4",
		"11111",
		"01/07/2025 - 03/21/2025",
		"Monday",
		"2:00 PM - 2:50 PM",
		"Main Campus, Arntzen Hall, 210",
		"A",
		"Morning Class",
		"CSCI 145 0",
		"4",
		"22222",
		"01/07/2025 - 03/21/2025",
		"Monday",
		"8:00 AM - 8:50 AM",
		"Main Campus, Bond Hall, 105",
		"B",
	}

	sched := ParseScheduleLines(lines)
	require.Len(t, sched["Monday"], 2)
	assert.Equal(t, "8:00 AM - 8:50 AM", sched["Monday"][0].Time)
	assert.Equal(t, "2:00 PM - 2:50 PM", sched["Monday"][1].Time)
}

func TestParseScheduleLinesTruncatedBlock(t *testing.T) {
	lines := []string{
		"Cut Short",
		"CSCI 101 0",
		"4",
		"33333",
		"01/07/2025 - 03/21/2025",
		"Monday",
	}

	sched := ParseScheduleLines(lines)
	assert.Empty(t, sched)
}

func TestParseScheduleLinesIgnoresUnknownDays(t *testing.T) {
	lines := []string{
		"Partial Days",
		"CSCI 202 0",
		"4",
		"44444",
		"01/07/2025 - 03/21/2025",
		"Monday, TBD, Friday",
		"11:00 AM - 11:50 AM",
		"Main Campus, Arntzen Hall, 100",
		"C",
	}

	sched := ParseScheduleLines(lines)
	assert.Len(t, sched["Monday"], 1)
	assert.Len(t, sched["Friday"], 1)
	assert.Len(t, sched, 2)
}

func TestLinesFromEntriesRoundTrip(t *testing.T) {
	entries := []dto.WireEntry{{
		CourseName:    "operating systems",
		CourseCode:    "csci 447",
		CourseSection: "0",
		CreditHours:   "4",
		CRN:           "12345",
		StartDate:     "01/07/2025",
		EndDate:       "03/21/2025",
		Days:          []string{"Monday", "Wednesday"},
		StartTime:     "10:00 AM",
		EndTime:       "10:50 AM",
		Location:      "Main Campus, Communications Facility, 105",
		Instructor:    "Phil Nelson",
	}}

	lines := LinesFromEntries(entries)
	require.Len(t, lines, 9)
	assert.Equal(t, "Operating Systems", lines[0])
	assert.Equal(t, "CSCI 447 0", lines[1])

	sched := ParseScheduleLines(lines)
	require.Len(t, sched["Monday"], 1)
	occ := sched["Monday"][0]
	assert.Equal(t, "CSCI 447 - Operating Systems", occ.Course)
	assert.Equal(t, "10:00 AM - 10:50 AM", occ.Time)
	assert.Equal(t, "Phil Nelson", occ.Instructor)
	assert.Equal(t, models.CampusMain, occ.Campus)
}
