// Package auth holds the account commands: register, login, logout,
// whoami, and profile edits.
package auth

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/validation"
)

type RegisterCmd struct {
	Email string `help:"Email address for the new account."`
	Name  string `help:"Display name."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	email := c.Email
	name := c.Name
	var password, confirm string

	var fields []huh.Field
	if email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&email).
			Validate(validation.Email))
	}
	if name == "" {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Value(&name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name cannot be empty")
				}
				return nil
			}))
	}
	fields = append(fields,
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Validate(validation.Password),
		huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&confirm),
	)

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	user, err := ctx.Session.Register(email, password, name)
	if err != nil {
		return err
	}

	styles := ctx.Styles()
	fmt.Println(styles.Success.Render(fmt.Sprintf("Welcome, %s! You are signed in as %s.", user.Name, user.Email)))
	ctx.PerformAutomaticBackup()
	return nil
}

type LoginCmd struct {
	Email string `help:"Email address to sign in with."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	email := c.Email
	var password string

	var fields []huh.Field
	if email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&email).
			Validate(validation.Email))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password))

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return err
	}

	user, err := ctx.Session.Login(email, password)
	if err != nil {
		return err
	}

	fmt.Println(ctx.Styles().Success.Render(fmt.Sprintf("Signed in as %s.", user.Email)))
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if _, ok := ctx.Session.Current(); !ok {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := ctx.Session.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	styles := ctx.Styles()
	fmt.Printf("%s <%s>\n", styles.Title.Render(user.Name), user.Email)
	fmt.Println(styles.Muted.Render(fmt.Sprintf("Member since %s", user.CreatedAt.Format("January 2, 2006"))))
	return nil
}

type ProfileCmd struct {
	Name  string `help:"New display name."`
	Email string `help:"New email address."`
}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	name := user.Name
	email := user.Email
	if c.Name != "" {
		name = c.Name
	}
	if c.Email != "" {
		email = c.Email
	}

	// No flags given: edit interactively, prefilled with current values.
	if c.Name == "" && c.Email == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(validation.Email),
		)).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
	} else if err := validation.Email(email); err != nil {
		return err
	}

	user.Name = name
	user.Email = email
	if err := ctx.Session.UpdateUser(user); err != nil {
		return err
	}

	fmt.Println(ctx.Styles().Success.Render("Profile updated."))
	ctx.PerformAutomaticBackup()
	return nil
}
