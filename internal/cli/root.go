// Package cli wires the cobra command tree.
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tashichi/clipflow/internal/app"
	"github.com/tashichi/clipflow/internal/camera"
	"github.com/tashichi/clipflow/internal/capture"
	"github.com/tashichi/clipflow/internal/config"
	"github.com/tashichi/clipflow/internal/playback"
	"github.com/tashichi/clipflow/internal/store"
	"github.com/tashichi/clipflow/internal/version"
)

type Dependencies struct {
	Store  *store.Store
	Config *config.Config
	// Warning carries a data-loss notice from a degraded store load.
	Warning string
}

// NewController builds the capture controller over the configured camera.
func (d *Dependencies) NewController() *capture.Controller {
	device := camera.New(d.Config.Camera(), d.Config.CaptureFormat, capture.Facing(d.Config.Facing))
	return capture.NewController(device, d.Store.NewID, d.Config.DataDir, d.Config.AudioEnabled)
}

// NewPlayer builds the configured gapless player.
func (d *Dependencies) NewPlayer() playback.Player {
	return playback.NewMPVPlayer(d.Config.PlayerCommand)
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clipflow",
		Short: "Capture and replay one-second video segments",
		Long:  "Capture a video project as a sequence of one-second clips and replay them back-to-back as one continuous video.",
		RunE: func(cmd *cobra.Command, args []string) error {
			model := app.New(deps.Store, deps.NewController(), deps.NewPlayer(), deps.Config.DataDir, deps.Warning)
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewRecordCmd(deps))
	rootCmd.AddCommand(NewPlayCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
