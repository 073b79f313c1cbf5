package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/pkg/errors"
)

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <schedule.pdf>",
		Short: "Upload a schedule PDF and view the parsed result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync() //nolint:errcheck

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			ctx := context.Background()
			sched, err := a.backend.ParseScheduleFile(ctx, filepath.Base(args[0]), file)
			if err != nil {
				a.logger.Error("schedule upload failed", zap.Error(err))
				if alertErr := a.dialog.Alert(ctx, errors.FromError(err).Message); alertErr != nil {
					a.logger.Warn("upload failure alert not shown", zap.Error(alertErr))
				}
				return err
			}

			a.store.Replace(sched)
			a.cacheSchedule(sched)
			return a.renderSelectedDay(ctx)
		},
	}
}
