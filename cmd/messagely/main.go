package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/reamslin/messagely/cmd/messagely/messages"
	"github.com/reamslin/messagely/cmd/messagely/serve"
	"github.com/reamslin/messagely/cmd/messagely/users"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "messagely",
		Usage: "Credential and session core for the messagely service",
		Commands: []*cli.Command{
			serve.Cmd(),
			users.Cmd(),
			messages.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}
