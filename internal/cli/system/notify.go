package system

import (
	"fmt"
	"time"

	"github.com/foyerapp/foyer/internal/cli"
	"github.com/foyerapp/foyer/internal/notifier"
)

// NotifyCmd drains due notifications from the spool through the tray
// agent. Invoked by the tray agent (or cron) every minute.
type NotifyCmd struct {
	DryRun bool `help:"Print due notifications to stdout instead of sending them."`
}

type stdoutSender struct{}

func (stdoutSender) Send(title, body string) error {
	fmt.Printf("[DryRun] %s: %s\n", title, body)
	return nil
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	var sender notifier.Sender = notifier.NewTraySender()
	if c.DryRun {
		sender = stdoutSender{}
	}

	deliverer := notifier.NewDeliverer(ctx.Store, sender)
	delivered, err := deliverer.DeliverDue(time.Now())
	if err != nil {
		return err
	}

	if c.DryRun {
		fmt.Printf("%d notification(s) due.\n", delivered)
	}
	return nil
}
