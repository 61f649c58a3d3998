package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tashichi/clipflow/internal/output"
	"github.com/tashichi/clipflow/internal/store"
)

func NewRecordCmd(deps *Dependencies) *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:   "record [project-id]",
		Short: "Record one segment into a project",
		Long:  "Record exactly one fixed-length segment and append it to the given project. With --new, a fresh project is created first.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			project, err := resolveProject(deps, args, create)
			if err != nil {
				return err
			}

			controller := deps.NewController()
			if err := controller.Setup(cmd.Context()); err != nil {
				return err
			}

			seg, err := controller.RecordSegment(cmd.Context(), &project)
			if err != nil {
				return err
			}

			project.AddSegment(seg)
			if err := deps.Store.UpdateProject(project); err != nil {
				return err
			}

			formatter.SegmentRecorded(seg.Order, seg.URI)
			return nil
		},
	}

	cmd.Flags().BoolVar(&create, "new", false, "Create a new project to record into")

	return cmd
}

func resolveProject(deps *Dependencies, args []string, create bool) (store.Project, error) {
	if create {
		return deps.Store.CreateProject()
	}
	if len(args) == 0 {
		return store.Project{}, fmt.Errorf("a project id is required (or pass --new)")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return store.Project{}, fmt.Errorf("invalid project id %q", args[0])
	}
	project, ok := deps.Store.Project(id)
	if !ok {
		return store.Project{}, fmt.Errorf("project %d not found", id)
	}
	return project, nil
}
