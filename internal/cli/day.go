package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ziming-L/wwu-course-navigator/internal/dayview"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
	"github.com/Ziming-L/wwu-course-navigator/pkg/errors"
)

func newDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day [weekday]",
		Short: "Show one day of the last fetched schedule",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync() //nolint:errcheck

			sched, ok := a.loadCachedSchedule()
			if !ok {
				return errors.New(errors.ErrNotFound.Code, http.StatusNotFound,
					"no schedule in this session yet; run submit or upload first")
			}
			a.store.Replace(sched)

			day := a.store.Selected()
			if len(args) == 1 {
				day, err = canonicalDay(args[0])
				if err != nil {
					return err
				}
			}
			return a.renderDay(context.Background(), day)
		},
	}
}

// canonicalDay maps user input like "monday" or "Mon" onto the stored
// weekday names.
func canonicalDay(input string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(input))
	for _, day := range models.WeekdayOrder {
		lower := strings.ToLower(day)
		if needle == lower || needle == lower[:3] {
			return day, nil
		}
	}
	return "", errors.New(errors.ErrValidation.Code, http.StatusBadRequest,
		fmt.Sprintf("unknown weekday %q", input))
}

func (a *app) renderDay(ctx context.Context, day string) error {
	renderer := dayview.NewRenderer(a.store, a.resolver, os.Stdout)
	return renderer.Render(ctx, day)
}

// renderSelectedDay renders the day the store picked after a schedule
// replacement. A schedule with no populated day renders nothing.
func (a *app) renderSelectedDay(ctx context.Context) error {
	if !a.store.NavEnabled() || a.store.Selected() == "" {
		return nil
	}
	return a.renderDay(ctx, a.store.Selected())
}
