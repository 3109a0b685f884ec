package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/cyphergate/internal/gate/cli"
)

func main() {
	ctx := context.Background()
	os.Exit(cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
