package main

import (
	"os"

	"github.com/sadopc/ticklist/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
