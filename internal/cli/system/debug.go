package system

import (
	"fmt"
	"sort"

	"github.com/foyerapp/foyer/internal/cli"
	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/notifier"
)

type DebugCmd struct {
	Scheduled DebugScheduledCmd `cmd:"" help:"Dump the scheduled notification set." default:"1"`
	Actions   DebugActionsCmd   `cmd:"" help:"List the registered notification action buttons."`
}

type DebugScheduledCmd struct{}

func (c *DebugScheduledCmd) Run(ctx *cli.Context) error {
	scheduled, err := ctx.Transport.ListScheduled()
	if err != nil {
		return err
	}

	if len(scheduled) == 0 {
		fmt.Println("No notifications scheduled.")
		return nil
	}

	sort.Slice(scheduled, func(i, j int) bool {
		return scheduled[i].FireAt.Before(scheduled[j].FireAt)
	})

	fmt.Println(cli.TitleStyle.Render("Scheduled notifications"))
	for _, s := range scheduled {
		fmt.Printf("%s %s at %s — %s\n",
			cli.BulletStyle.Render("•"), s.Identifier, s.FireAt.Format("2006-01-02 15:04:05"), s.Content.Title)
	}
	return nil
}

type DebugActionsCmd struct{}

func (c *DebugActionsCmd) Run(ctx *cli.Context) error {
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Category %q", constants.TaskActionsCategory)))
	for _, b := range notifier.TaskActionButtons() {
		fmt.Printf("%s %s → %s\n", cli.BulletStyle.Render("•"), b.Label, b.Identifier)
	}
	return nil
}
