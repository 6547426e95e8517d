package messages

import (
	"github.com/reamslin/messagely/internal/cmdflags"
	"github.com/reamslin/messagely/store"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	storeDir := "./data"
	var st *store.Store
	return &cli.Command{
		Name:  "messages",
		Usage: "Manage messages directly in the store",
		Flags: []cli.Flag{
			cmdflags.StoreDir(&storeDir),
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
			sendCmd(&st),
		},
	}
}

func sendCmd(st **store.Store) *cli.Command {
	var from string
	var to string
	var body string
	return &cli.Command{
		Name:  "send",
		Usage: "Store a message between two registered accounts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "from",
				Usage:       "Sender username",
				Destination: &from,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "to",
				Usage:       "Recipient username",
				Destination: &to,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "body",
				Usage:       "Message body",
				Destination: &body,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			_, err := (*st).CreateMessage(ctx.Context, from, to, body)
			return err
		},
	}
}
