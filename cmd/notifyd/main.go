package main

import (
	"os"

	"notifyd/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
