package settings

import (
	"fmt"

	"github.com/foyerapp/foyer/internal/cli"
	"github.com/foyerapp/foyer/internal/utils"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"Show notification settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change notification settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetNotificationSettings()
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render("Notification settings"))
	fmt.Printf("Morning digest:    %s\n", onOff(settings.MorningEnabled))
	fmt.Printf("Day-before (J-1):  %s\n", onOff(settings.DayBeforeEnabled))
	fmt.Printf("Evening quote:     %s\n", onOff(settings.EveningEnabled))
	fmt.Printf("Overdue reminders: %s\n", onOff(settings.OverdueEnabled))
	fmt.Printf("Smart extras:      %s\n", onOff(settings.SmartEnabled))
	fmt.Printf("City:              %s\n", settings.City)
	fmt.Printf("Timezone:          %s\n", settings.Timezone)
	return nil
}

type SettingsSetCmd struct {
	Morning   *bool  `help:"Enable or disable the morning digest." negatable:""`
	DayBefore *bool  `help:"Enable or disable the day-before heads-up." negatable:""`
	Evening   *bool  `help:"Enable or disable the evening quote." negatable:""`
	Overdue   *bool  `help:"Enable or disable overdue reminders." negatable:""`
	Smart     *bool  `help:"Enable or disable smart extras (urgent, rain, weekend)." negatable:""`
	City      string `help:"City used for the weather line."`
	Timezone  string `help:"IANA timezone name, or 'Local'."`
}

func (c *SettingsSetCmd) Validate() error {
	if c.Timezone != "" && !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone: %s", c.Timezone)
	}
	return nil
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetNotificationSettings()
	if err != nil {
		return err
	}

	if c.Morning != nil {
		settings.MorningEnabled = *c.Morning
	}
	if c.DayBefore != nil {
		settings.DayBeforeEnabled = *c.DayBefore
	}
	if c.Evening != nil {
		settings.EveningEnabled = *c.Evening
	}
	if c.Overdue != nil {
		settings.OverdueEnabled = *c.Overdue
	}
	if c.Smart != nil {
		settings.SmartEnabled = *c.Smart
	}
	if c.City != "" {
		settings.City = c.City
	}
	if c.Timezone != "" {
		settings.Timezone = c.Timezone
	}

	if err := ctx.Store.SaveNotificationSettings(settings); err != nil {
		return err
	}

	// Toggles changed what should exist on the device; rebuild.
	if err := ctx.Reschedule(); err != nil {
		return err
	}

	fmt.Println("Settings saved.")
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
