package main

import (
	"context"
	"fmt"
	"os"

	"go.llib.dev/frameless/pkg/cli"

	"go.llib.dev/lazykit/internal/seqcli"
)

func main() {
	cfg, err := seqcli.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(cli.ExitCodeBadRequest)
	}
	app := seqcli.App{
		Config: cfg,
		Logger: cfg.Logger(os.Stderr),
	}
	cli.Main(context.Background(), seqcli.NewMux(app))
}
