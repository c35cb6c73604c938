package tasks

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer/internal/cli"
	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
	"github.com/foyerapp/foyer/internal/rules"
	"github.com/foyerapp/foyer/internal/utils"
)

type TaskAddCmd struct {
	Title        string `arg:"" help:"Task title."`
	Category     string `short:"c" help:"Category (school|health|admin|activities|home|other)." default:"other"`
	Deadline     string `short:"d" help:"Deadline date (YYYY-MM-DD)."`
	Description  string `help:"Longer description."`
	Source       string `short:"s" help:"Task source (manual|email|profile|photo)." default:"manual"`
	ContactName  string `help:"Contact person for this task."`
	ContactEmail string `help:"Contact email for this task."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Deadline != "" {
		if _, err := time.Parse(constants.DateFormat, c.Deadline); err != nil {
			return fmt.Errorf("invalid deadline format (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetNotificationSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}

	task := models.Task{
		ID:           uuid.New().String(),
		Title:        c.Title,
		Category:     constants.TaskCategory(c.Category),
		Description:  c.Description,
		Status:       constants.StatusTodo,
		Source:       constants.TaskSource(c.Source),
		CreatedAt:    now,
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
	}

	if c.Deadline != "" {
		deadline, err := utils.ParseDateInLocation(c.Deadline, now.Location())
		if err != nil {
			return fmt.Errorf("invalid deadline: %w", err)
		}
		task.Deadline = &deadline
	}

	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	// Ingested tasks with close deadlines get an immediate heads-up.
	// Urgent takes precedence; the near-deadline reminder only fires for
	// tasks that miss the urgency bar.
	if rules.IsUrgentTask(task, now) {
		if err := ctx.Scheduler.TriggerUrgentTask(task, settings, now); err != nil {
			return err
		}
	} else if err := ctx.Scheduler.TriggerNearDeadlineTask(task, settings, now); err != nil {
		return err
	}

	if err := ctx.Reschedule(); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", c.Title, task.ID)
	return nil
}
