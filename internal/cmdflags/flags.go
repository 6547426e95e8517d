package cmdflags

import (
	"github.com/reamslin/messagely/auth"
	"github.com/urfave/cli/v2"
)

func StoreDir(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "store",
		Aliases:     []string{"s"},
		Usage:       "Directory holding the messagely database",
		Destination: out,
		Value:       *out,
	}
}

func SecretEnvVar(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = auth.SecretEnvVar
	}
	return &cli.StringFlag{
		Name:        "secret-envvar-name",
		Usage:       "Name of the environment variable that holds the token signing secret. The secret itself should not be passed as an argument",
		Value:       *out,
		Destination: out,
	}
}

func WorkFactor(out *int) cli.Flag {
	if *out == 0 {
		*out = auth.DefaultWorkFactor
	}
	return &cli.IntFlag{
		Name:        "work-factor",
		Usage:       "bcrypt cost applied to newly created password digests (old digests keep working)",
		Value:       *out,
		Destination: out,
	}
}
