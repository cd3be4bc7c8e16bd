package main

import (
	"context"

	"github.com/alecthomas/kong"
)

var (
	version = "dev"
	cli     struct {
		Debug        bool             `help:"Enable debug logging."`
		Version      kong.VersionFlag `help:"Print the version and exit."`
		Serve        ServeCmd         `cmd:"" default:"1" help:"Start the access gateway."`
		InspectToken InspectTokenCmd  `cmd:"" help:"Print the issue time carried by a session token."`
	}
)

type Globals struct {
	Debug   bool
	Version string
}

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("love-ludo"),
		kong.Description("Session and access gateway for Love Ludo."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
