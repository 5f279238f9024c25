// Package system holds the lifecycle and diagnostics commands.
package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitkit/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete existing storage before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()

	if c.Force {
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			fmt.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habitkit storage at: %s\n", path)
	fmt.Println("Next: create an account with 'habitkit register'.")
	return nil
}
