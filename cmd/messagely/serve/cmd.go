package serve

import (
	"os"

	"github.com/reamslin/messagely/api"
	"github.com/reamslin/messagely/auth"
	"github.com/reamslin/messagely/internal/cmdflags"
	"github.com/reamslin/messagely/internal/httpserver"
	"github.com/reamslin/messagely/store"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:7100"
	storeDir := "./data"
	var secretEnvVar string
	var workFactor int
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the messagely HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "bind",
				Usage:       "Address to bind for incoming requests",
				Value:       bindAddr,
				Destination: &bindAddr,
			},
			cmdflags.StoreDir(&storeDir),
			cmdflags.SecretEnvVar(&secretEnvVar),
			cmdflags.WorkFactor(&workFactor),
		},
		Action: func(ctx *cli.Context) error {
			st, err := store.Open(ctx.Context, storeDir)
			if err != nil {
				return err
			}
			defer st.Close()
			secret, err := auth.SecretFromEnv(secretEnvVar, os.Getenv, os.Setenv)
			if err != nil {
				return err
			}
			tokens, err := auth.NewTokenService(secret)
			if err != nil {
				return err
			}
			authn := auth.NewAuthenticator(st, auth.NewHasher(workFactor))
			return httpserver.Serve(ctx.Context, bindAddr, api.AsHandler(authn, tokens, st))
		},
	}
}
