package users

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/reamslin/messagely/auth"
	"github.com/reamslin/messagely/internal/cmdflags"
	"github.com/reamslin/messagely/store"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	storeDir := "./data"
	var workFactor int
	var st *store.Store
	return &cli.Command{
		Name:  "users",
		Usage: "Manage accounts directly in the store, bypassing the HTTP API",
		Flags: []cli.Flag{
			cmdflags.StoreDir(&storeDir),
			cmdflags.WorkFactor(&workFactor),
		},
		Before: func(ctx *cli.Context) error {
			var err error
			st, err = store.Open(ctx.Context, storeDir)
			return err
		},
		After: func(*cli.Context) error {
			if st == nil {
				return nil
			}
			return st.Close()
		},
		Subcommands: []*cli.Command{
			addCmd(&st, &workFactor),
		},
	}
}

func addCmd(st **store.Store, workFactor *int) *cli.Command {
	var username string
	var firstName string
	var lastName string
	var phone string
	return &cli.Command{
		Name:  "add",
		Usage: "Register a new account (password is read from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u", "user"},
				Usage:       "Name of the account to register",
				Destination: &username,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "first-name",
				Destination: &firstName,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "last-name",
				Destination: &lastName,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "phone",
				Destination: &phone,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			sc := bufio.NewScanner(os.Stdin)
			if !sc.Scan() {
				return sc.Err()
			}
			password := strings.TrimSpace(sc.Text())
			if len(password) == 0 {
				return errors.New("missing password from stdin")
			}
			authn := auth.NewAuthenticator(*st, auth.NewHasher(*workFactor))
			_, err := authn.Register(ctx.Context, username, password, firstName, lastName, phone)
			return err
		},
	}
}
