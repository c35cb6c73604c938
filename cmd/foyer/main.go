package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/foyerapp/foyer/internal/cli"
	"github.com/foyerapp/foyer/internal/cli/profile"
	"github.com/foyerapp/foyer/internal/cli/settings"
	"github.com/foyerapp/foyer/internal/cli/system"
	"github.com/foyerapp/foyer/internal/cli/tasks"
	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/errors"
	"github.com/foyerapp/foyer/internal/keyring"
	"github.com/foyerapp/foyer/internal/logger"
	"github.com/foyerapp/foyer/internal/notifier"
	"github.com/foyerapp/foyer/internal/quote"
	"github.com/foyerapp/foyer/internal/storage"
	"github.com/foyerapp/foyer/internal/trigger"
	"github.com/foyerapp/foyer/internal/weather"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path, PostgreSQL connection string, or 'keyring' to read the connection string from the OS keyring. PostgreSQL strings must NOT embed credentials." type:"string" default:"~/.config/foyer/foyer.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init       system.InitCmd       `cmd:"" help:"Initialize foyer storage."`
	Reschedule system.RescheduleCmd `cmd:"" help:"Recompute and reschedule all notifications."`
	Respond    system.RespondCmd    `cmd:"" hidden:"" help:"Handle a notification response event (used internally)."`
	Notify     system.NotifyCmd     `cmd:"" hidden:"" help:"Deliver due notifications (used internally)."`
	DebugCmd   system.DebugCmd      `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Keyring    system.KeyringCmd    `cmd:"" help:"Manage database credentials in the OS keyring."`
	Task       struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List tasks." default:"1"`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
		Done   tasks.TaskDoneCmd   `cmd:"" help:"Mark a task as done."`
	} `cmd:"" help:"Manage tasks."`
	Profile  profile.ProfileCmd   `cmd:"" help:"Manage the family profile."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage notification settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Family task assistant with on-device notification scheduling"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config := expandHome(CLI.Config)

	if config == "keyring" {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			errors.Fatal(err)
		}
		config = connStr
	}

	var store storage.Provider
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if storage.HasEmbeddedCredentials(config) {
			fmt.Fprintf(os.Stderr, "Error: PostgreSQL connection strings with embedded credentials are not allowed.\n")
			fmt.Fprintf(os.Stderr, "       Store the full connection string in the OS keyring and pass --config=keyring,\n")
			fmt.Fprintf(os.Stderr, "       or use a .pgpass file with a password-less connection string.\n")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(config)
	} else {
		store = storage.NewSQLiteStore(config)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: expandHome("~/.config/foyer")}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	transport := notifier.NewSpoolTransport(store)

	appCtx := &cli.Context{
		Store:     store,
		Transport: transport,
		Scheduler: trigger.New(transport),
		Weather:   weather.NewClient(),
		Quotes:    quote.NewProvider(),
	}

	// Load the store before running the command (init handles its own
	// setup, keyring commands never touch the store)
	command := ctx.Command()
	if command != "init" && !strings.HasPrefix(command, "keyring") {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	errors.Fatal(ctx.Run(appCtx))
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
