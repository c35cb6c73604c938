package tasks

import (
	"fmt"
	"sort"

	"github.com/foyerapp/foyer/internal/cli"
	"github.com/foyerapp/foyer/internal/models"
	"github.com/foyerapp/foyer/internal/utils"
)

type TaskListCmd struct {
	All bool `short:"a" help:"Include completed tasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetNotificationSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}

	var visible []models.Task
	for _, t := range tasks {
		if !c.All && t.IsDone() {
			continue
		}
		visible = append(visible, t)
	}

	if len(visible) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	// Dated tasks first by deadline, then undated by creation.
	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if (a.Deadline != nil) != (b.Deadline != nil) {
			return a.Deadline != nil
		}
		if a.Deadline != nil && b.Deadline != nil && !a.Deadline.Equal(*b.Deadline) {
			return a.Deadline.Before(*b.Deadline)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	fmt.Println(cli.TitleStyle.Render("Tasks"))
	for _, t := range visible {
		title := t.Title
		if t.IsDone() {
			title = cli.DoneStyle.Render(title)
		}
		fmt.Printf("%s %s [%s] %s (ID: %s)\n",
			cli.BulletStyle.Render("•"), title, t.Category, cli.FormatDeadline(&t, now), t.ID)
	}
	return nil
}
