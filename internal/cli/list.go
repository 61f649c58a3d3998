package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tashichi/clipflow/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if deps.Warning != "" {
				formatter.Warning(deps.Warning)
			}

			projects := deps.Store.Projects()
			if len(projects) == 0 {
				formatter.Info("No projects found")
				return nil
			}

			formatter.ProjectListHeader()
			for _, p := range projects {
				formatter.ProjectListItem(p.ID, p.Name, p.SegmentCount(), p.LastModified.Time)
			}
			return nil
		},
	}
}
