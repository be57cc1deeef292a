package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/service"
)

func loginCmd() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in to the EcoTrash API and store the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"ECOTRASH_PASSWORD"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c.Context)
			if err != nil {
				return err
			}
			defer e.Close(c.Context)
			e.store.Bootstrap(c.Context)

			s, err := e.auth.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return cli.Exit(loginMessage(err), 1)
			}

			fmt.Fprintf(c.App.Writer, "logged in as %s (%s)\n", displayName(s), s.Role)
			if s.NeedsPasswordChange() {
				fmt.Fprintln(c.App.Writer, "a password change is required: run `ecotrash change-password`")
			}
			return nil
		},
	}
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnverifiedAccount):
		return err.Error()
	}
	if notes := service.Notifications(err); len(notes) > 0 {
		return notes[0].Message
	}
	return err.Error()
}

func logoutCmd() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the stored session",
		Action: func(c *cli.Context) error {
			e, err := setup(c.Context)
			if err != nil {
				return err
			}
			defer e.Close(c.Context)
			e.store.Bootstrap(c.Context)

			e.auth.Logout(c.Context)
			fmt.Fprintln(c.App.Writer, "logged out")
			return nil
		},
	}
}

func whoamiCmd() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the stored session",
		Action: func(c *cli.Context) error {
			e, err := setup(c.Context)
			if err != nil {
				return err
			}
			defer e.Close(c.Context)
			e.store.Bootstrap(c.Context)

			if !e.store.IsAuthenticated() {
				return cli.Exit("not logged in", 1)
			}
			s := e.store.Current()

			w := c.App.Writer
			fmt.Fprintf(w, "user:  %s <%s>\n", displayName(s), s.Email)
			fmt.Fprintf(w, "role:  %s\n", s.Role)
			if s.RoleProfile != nil {
				fmt.Fprintf(w, "profile: %s (#%d)\n", s.RoleProfile.Name, s.RoleProfile.ID)
			}
			if info, ok := service.InspectToken(s.Token); ok && !info.ExpiresAt.IsZero() {
				state := "valid"
				if info.Expired(time.Now()) {
					state = "expired"
				}
				fmt.Fprintf(w, "token: %s until %s\n", state, info.ExpiresAt.Format(time.RFC3339))
			}
			if s.NeedsPasswordChange() {
				fmt.Fprintln(w, "a password change is required")
			}
			return nil
		},
	}
}

func changePasswordCmd() *cli.Command {
	return &cli.Command{
		Name:  "change-password",
		Usage: "Change the password of the logged in user; the session ends afterwards",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "current", EnvVars: []string{"ECOTRASH_PASSWORD"}, Required: true},
			&cli.StringFlag{Name: "new", EnvVars: []string{"ECOTRASH_NEW_PASSWORD"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			if len(c.String("new")) < 8 {
				return cli.Exit("the new password must be at least 8 characters", 1)
			}

			e, err := setup(c.Context)
			if err != nil {
				return err
			}
			defer e.Close(c.Context)
			e.store.Bootstrap(c.Context)

			if !e.store.IsAuthenticated() {
				return cli.Exit("not logged in", 1)
			}
			if err := e.auth.ChangePassword(c.Context, c.String("current"), c.String("new")); err != nil {
				return cli.Exit(loginMessage(err), 1)
			}
			fmt.Fprintln(c.App.Writer, "password changed, please log in again")
			return nil
		},
	}
}

func displayName(s domain.Session) string {
	if s.Name != "" {
		return s.Name
	}
	if s.Username != "" {
		return s.Username
	}
	return s.Email
}
