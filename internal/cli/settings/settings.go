// Package settings holds the preference commands.
package settings

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
)

type ThemeCmd struct {
	Theme string `arg:"" optional:"" help:"Theme to switch to: light or dark."`
}

func (c *ThemeCmd) Run(ctx *cli.Context) error {
	if c.Theme == "" {
		theme, err := ctx.Store.GetTheme()
		if err != nil {
			return err
		}
		fmt.Printf("Current theme: %s\n", theme)
		return nil
	}

	theme := models.Theme(c.Theme)
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q (expected light or dark)", c.Theme)
	}
	if err := ctx.Store.SaveTheme(theme); err != nil {
		return err
	}

	fmt.Println(cli.StylesFor(theme).Success.Render(fmt.Sprintf("Switched to the %s theme.", theme)))
	return nil
}
