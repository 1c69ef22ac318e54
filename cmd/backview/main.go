package main

import (
	"os"

	"github.com/rustyeddy/backview/cmd/backview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
