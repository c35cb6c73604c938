package system

import (
	"fmt"

	"github.com/foyerapp/foyer/internal/cli"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	fmt.Printf("Initialized foyer storage at %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Run 'foyer profile edit' to set up your family profile.")
	return nil
}
