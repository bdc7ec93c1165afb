package main

import (
	"context"
	"os"

	"github.com/medcare-web/medcare/cmd/medcare/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
