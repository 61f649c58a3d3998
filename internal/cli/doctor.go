package cli

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/tashichi/clipflow/internal/camera"
	"github.com/tashichi/clipflow/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			if err := camera.CheckFFmpeg(); err != nil {
				f.SetupCheck("ffmpeg", false, err.Error())
				ok = false
			} else {
				f.SetupCheck("ffmpeg", true, "installed")
			}

			if _, err := exec.LookPath(deps.Config.PlayerCommand); err != nil {
				f.SetupCheck(deps.Config.PlayerCommand, false, "not found. Install it with your package manager")
				ok = false
			} else {
				f.SetupCheck(deps.Config.PlayerCommand, true, "installed")
			}

			if _, err := os.Stat(deps.Config.Camera()); err != nil {
				f.SetupCheck("camera", false, deps.Config.Camera()+" not present")
				ok = false
			} else {
				f.SetupCheck("camera", true, deps.Config.Camera())
			}

			f.SetupCheck("data directory", true, deps.Config.DataDir)
			f.SetupCheck("database", true, deps.Config.DBPath)

			if deps.Warning != "" {
				f.Warning(deps.Warning)
			}

			if ok {
				f.Success("\nAll prerequisites met. Ready to record!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
