// Command token issues bearer tokens for the mutating API routes.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Black-And-White-Club/guildkeeper/config"
	"github.com/Black-And-White-Club/guildkeeper/internal/httpapi"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "token",
		Usage: "issue and check API bearer tokens",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Commands: []*cli.Command{
			{
				Name:      "issue",
				Usage:     "print a signed token for subject",
				ArgsUsage: "<subject>",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "token lifetime"},
				},
				Action: func(c *cli.Context) error {
					auth, err := authenticator(c)
					if err != nil {
						return err
					}
					subject := c.Args().First()
					if subject == "" {
						return cli.Exit("subject is required", 2)
					}
					tok, err := auth.IssueToken(subject, c.Duration("ttl"))
					if err != nil {
						return err
					}
					fmt.Println(tok)
					return nil
				},
			},
			{
				Name:      "check",
				Usage:     "validate a token and print its subject",
				ArgsUsage: "<token>",
				Action: func(c *cli.Context) error {
					auth, err := authenticator(c)
					if err != nil {
						return err
					}
					subject, err := auth.ValidateToken(c.Args().First())
					if err != nil {
						return err
					}
					fmt.Println(subject)
					return nil
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func authenticator(c *cli.Context) (*httpapi.TokenAuthenticator, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	auth := httpapi.NewTokenAuthenticator(cfg.HTTP.JWTSecret)
	if auth == nil {
		return nil, cli.Exit("http.jwt_secret is not configured", 1)
	}
	return auth, nil
}
