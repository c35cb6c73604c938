package tasks

import (
	"fmt"

	"github.com/foyerapp/foyer/internal/cli"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return err
	}

	if err := ctx.Reschedule(); err != nil {
		return err
	}

	fmt.Printf("Deleted task %s\n", c.ID)
	return nil
}
