package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/bookstore/cmd/app/commands"
	"github.com/allisson/bookstore/internal/app"
	"github.com/allisson/bookstore/internal/config"
)

func getAccountCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-admin",
			Usage: "Create the admin account, or reset its password when it exists",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "username",
					Aliases: []string{"u"},
					Value:   "",
					Usage:   "Admin username (defaults to ADMIN_USERNAME)",
				},
				&cli.StringFlag{
					Name:    "email",
					Aliases: []string{"e"},
					Value:   "",
					Usage:   "Admin email (defaults to ADMIN_EMAIL)",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Value:   "",
					Usage:   "Admin password (prompted when omitted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				username := cmd.String("username")
				if username == "" {
					username = cfg.AdminUsername
				}
				email := cmd.String("email")
				if email == "" {
					email = cfg.AdminEmail
				}

				return commands.RunCreateAdmin(
					ctx,
					accountUseCase,
					container.Logger(),
					commands.DefaultIO(),
					username,
					email,
					cmd.String("password"),
				)
			},
		},
	}
}
