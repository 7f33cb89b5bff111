package main

import (
	"os"

	"github.com/kochabx/jwekit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
