package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tashichi/clipflow/internal/output"
	"github.com/tashichi/clipflow/internal/playback"
)

func NewPlayCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "play <project-id>",
		Short: "Play a project's segments back-to-back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			project, ok := deps.Store.Project(id)
			if !ok {
				return fmt.Errorf("project %d not found", id)
			}

			queue, err := playback.BuildQueueFromDir(project, deps.Config.DataDir)
			if errors.Is(err, playback.ErrNothingToPlay) {
				formatter.Info("Nothing to play")
				return nil
			}
			if err != nil {
				return err
			}

			player := deps.NewPlayer()
			player.SetQueue(queue)
			if err := player.Prepare(); err != nil {
				return err
			}
			defer player.Release()

			formatter.Playing(len(queue))
			return player.Play(cmd.Context())
		},
	}
}
