// Package cli is the navigator command tree: authoring, submission, day
// views and session management against the course-navigator backend.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/internal/api"
	"github.com/Ziming-L/wwu-course-navigator/internal/dialog"
	"github.com/Ziming-L/wwu-course-navigator/internal/floorplan"
	"github.com/Ziming-L/wwu-course-navigator/internal/schedule"
	"github.com/Ziming-L/wwu-course-navigator/internal/session"
	"github.com/Ziming-L/wwu-course-navigator/pkg/config"
	"github.com/Ziming-L/wwu-course-navigator/pkg/logger"
)

// app bundles the session-scoped collaborators every command shares. All
// outbound calls go through the session transport, so the tab identity header
// cannot be skipped by any individual command.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	identity  *session.Identity
	backend   *api.Client
	dialog    dialog.Service
	store     *schedule.Store
	resolver  *floorplan.Resolver
	lifecycle *session.Lifecycle
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}

	identity, err := session.NewIdentity(cfg.Client.StateDir)
	if err != nil {
		return nil, err
	}

	httpClient := session.NewHTTPClient(identity, cfg.Client.RequestTimeout)
	backend := api.New(cfg.Client.BaseURL, httpClient, identity, logr)
	dlg := dialog.NewTerminal(os.Stdin, os.Stdout)
	store := schedule.NewStore()

	a := &app{
		cfg:       cfg,
		logger:    logr,
		identity:  identity,
		backend:   backend,
		dialog:    dlg,
		store:     store,
		resolver:  floorplan.NewResolver(backend, logr),
		lifecycle: session.NewLifecycle(identity, backend, dlg, cfg.Client.CleanupTimeout, logr),
	}
	a.lifecycle.OnReset(func() {
		a.store.Reset()
		a.dropCachedSchedule()
	})
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:           "navigator",
	Short:         "Course schedule viewer client",
	Long:          "navigator authors, validates and submits course entries, and renders day-scoped class lists with floor-plan lookups.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(newComposeCmd())
	rootCmd.AddCommand(newSubmitCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newDayCmd())
	rootCmd.AddCommand(newClearCmd())
}
