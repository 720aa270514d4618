package main

import (
	"os"

	"github.com/rustyeddy/fxrobot/cmd/fxrobot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
