package tasks

import (
	"fmt"

	"github.com/foyerapp/foyer/internal/cli"
	"github.com/foyerapp/foyer/internal/constants"
)

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID to mark done."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.SetTaskStatus(c.ID, constants.StatusDone); err != nil {
		return err
	}

	if err := ctx.Reschedule(); err != nil {
		return err
	}

	fmt.Printf("Marked task %s as done\n", c.ID)
	return nil
}
