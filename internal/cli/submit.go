package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ziming-L/wwu-course-navigator/internal/entry"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
)

// entryFile is one authored entry in a submission file. Axis toggles are
// applied through the editor so the same snapshot/placeholder semantics run
// as in interactive authoring.
type entryFile struct {
	CourseName    string   `json:"courseName"`
	CourseCode    string   `json:"courseCode"`
	CourseSection string   `json:"courseSection"`
	CreditHours   string   `json:"creditHours"`
	CRN           string   `json:"crn"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Days          []string `json:"days"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	Online        bool     `json:"online"`
	Building      string   `json:"building"`
	Room          string   `json:"room"`
	Instructor    string   `json:"instructor"`
	UseDefaults   bool     `json:"useDefaults"`
}

func newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <entries.json>",
		Short: "Validate and submit a batch of course entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync() //nolint:errcheck

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var items []entryFile
			if err := json.Unmarshal(raw, &items); err != nil {
				return fmt.Errorf("decode entries file: %w", err)
			}

			ctx := context.Background()
			controller := entry.NewController(entry.NewPipeline(a.dialog), a.dialog, a.backend, a.store, a.logger)
			for _, item := range items {
				controller.Add(editorFromFile(ctx, a, item))
			}

			if err := controller.Submit(ctx); err != nil {
				return err
			}

			a.cacheSchedule(a.store.Snapshot())
			return a.renderSelectedDay(ctx)
		},
	}
}

func editorFromFile(ctx context.Context, a *app, item entryFile) *entry.Editor {
	ed := entry.NewEditor(ctx, nil)
	ed.SetField(entry.FieldCourseName, item.CourseName)
	ed.SetField(entry.FieldCourseCode, item.CourseCode)
	ed.SetField(entry.FieldCourseSection, item.CourseSection)
	ed.SetField(entry.FieldCreditHours, item.CreditHours)
	ed.SetField(entry.FieldCRN, item.CRN)
	ed.SetField(entry.FieldStartDate, item.StartDate)
	ed.SetField(entry.FieldEndDate, item.EndDate)
	ed.SetField(entry.FieldStartTime, item.StartTime)
	ed.SetField(entry.FieldEndTime, item.EndTime)
	ed.SetField(entry.FieldBuilding, item.Building)
	ed.SetField(entry.FieldRoom, item.Room)
	ed.SetField(entry.FieldInstructor, item.Instructor)
	for _, day := range item.Days {
		if name, err := canonicalDay(day); err == nil {
			day = name
		}
		ed.ToggleDay(day, true)
	}
	if item.Online {
		ed.SetCampus(models.CampusOnline)
	}
	if item.UseDefaults {
		ed.ToggleDefaults()
	}
	return ed
}
