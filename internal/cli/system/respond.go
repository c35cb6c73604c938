package system

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/foyerapp/foyer/internal/actions"
	"github.com/foyerapp/foyer/internal/cli"
)

// RespondCmd handles a notification-response event. The tray agent
// invokes it with the event JSON when the user taps a notification or
// one of its action buttons; the process is usually cold at that point,
// so everything needed must be inside the event payload.
type RespondCmd struct {
	Event string `arg:"" optional:"" help:"Response event JSON. Reads stdin when omitted."`
}

func (c *RespondCmd) Run(ctx *cli.Context) error {
	raw := []byte(c.Event)
	if c.Event == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read event from stdin: %w", err)
		}
		raw = data
	}

	var event actions.ResponseEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return fmt.Errorf("malformed response event: %w", err)
	}

	handler := actions.New(ctx.Store)
	outcome, err := handler.Handle(event)
	if err != nil {
		// Mutation failures must reach the user; a silent swallow here
		// was a regression once already.
		return err
	}

	if !outcome.Handled {
		fmt.Println("Event not handled.")
		return nil
	}

	switch outcome.Action {
	case "open":
		if outcome.DeepLink != nil {
			fmt.Printf("Open: %s %v\n", outcome.DeepLink.Route, outcome.DeepLink.Params)
		} else {
			fmt.Println("Open: tasks")
		}
		return nil
	default:
		fmt.Printf("Applied %s to task %s\n", outcome.Action, outcome.TaskID)
	}

	// The task set changed; rebuild the scheduled notifications.
	return ctx.Reschedule()
}
