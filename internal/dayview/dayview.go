// Package dayview renders the class list for one selected weekday.
package dayview

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/Ziming-L/wwu-course-navigator/internal/floorplan"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
	"github.com/Ziming-L/wwu-course-navigator/internal/schedule"
)

// Renderer draws a day's classes and delegates occurrence-level presentation
// to the floor-plan resolver. Each render builds the complete view from
// scratch before anything is written, so nothing from the previously
// selected day can survive a switch.
type Renderer struct {
	store    *schedule.Store
	resolver *floorplan.Resolver
	out      io.Writer
}

// NewRenderer instantiates Renderer.
func NewRenderer(store *schedule.Store, resolver *floorplan.Resolver, out io.Writer) *Renderer {
	return &Renderer{store: store, resolver: resolver, out: out}
}

// Render selects the day and draws its class list.
func (r *Renderer) Render(ctx context.Context, day string) error {
	if err := r.store.Select(day); err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	header := color.New(color.FgGreen, color.Bold)
	header.Fprintf(buf, "%s\n", day) //nolint:errcheck

	occurrences := r.store.Occurrences(day)
	if len(occurrences) == 0 {
		fmt.Fprintln(buf, "no classes")
		_, err := r.out.Write(buf.Bytes())
		return err
	}

	table := uitable.New()
	table.MaxColWidth = 50
	table.Wrap = true
	table.AddRow("TIME", "COURSE", "LOCATION", "INSTRUCTOR")
	for _, occ := range occurrences {
		table.AddRow(occ.Time, courseLabel(occ), locationLabel(occ), occ.Instructor)
	}
	fmt.Fprintln(buf, table.String())

	for _, occ := range occurrences {
		r.renderResolution(ctx, buf, occ)
	}

	_, err := r.out.Write(buf.Bytes())
	return err
}

// courseLabel omits the course for occurrences lacking a course identity.
func courseLabel(occ models.ClassOccurrence) string {
	if occ.Unknown {
		return color.New(color.Faint).Sprint("(course unknown)")
	}
	return occ.Course
}

// locationLabel shows a campus marker instead of a room for online classes.
func locationLabel(occ models.ClassOccurrence) string {
	if occ.Online() {
		return color.New(color.FgCyan).Sprint("Online")
	}
	return fmt.Sprintf("%s %s", occ.Building, occ.Room)
}

// renderResolution presents the floor-plan outcome for one occurrence.
// Online occurrences never attempt resolution.
func (r *Renderer) renderResolution(ctx context.Context, buf *bytes.Buffer, occ models.ClassOccurrence) {
	if occ.Online() || r.resolver == nil {
		return
	}

	res := r.resolver.Resolve(ctx, occ)
	switch res.State {
	case floorplan.StateUnavailable:
		fmt.Fprintf(buf, "  %s: floor plan not available\n", occ.Building)
	case floorplan.StateProbeFailed:
		fmt.Fprintf(buf, "  %s: %s\n", occ.Building,
			color.New(color.FgYellow).Sprint("floor plan could not be reached"))
	case floorplan.StateAvailable:
		fmt.Fprintf(buf, "  %s: floor plan %s\n", occ.Building, res.Document.URL)
		res.Document.ReportLoad(nil)
		if res.Map != nil {
			fmt.Fprintf(buf, "  %s: map at %.5f, %.5f\n", occ.Building, *res.Lat, *res.Lon)
			res.Map.ReportLoad(nil)
		}
	}
}
