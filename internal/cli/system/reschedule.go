package system

import (
	"fmt"

	"github.com/foyerapp/foyer/internal/cli"
)

type RescheduleCmd struct{}

func (c *RescheduleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Reschedule(); err != nil {
		return err
	}

	scheduled, err := ctx.Transport.ListScheduled()
	if err != nil {
		return err
	}

	fmt.Printf("Rescheduled %d notification(s).\n", len(scheduled))
	return nil
}
