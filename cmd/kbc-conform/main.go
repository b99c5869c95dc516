package main

import (
	"context"
	"os"

	"github.com/spf13/afero"

	"github.com/keboola/kbc-conform/internal/pkg/cli"
	"github.com/keboola/kbc-conform/internal/pkg/env"
)

func main() {
	root := cli.NewRootCommand(os.Stdout, os.Stderr, env.FromOs(), afero.NewOsFs())
	os.Exit(root.Execute(context.Background()))
}
