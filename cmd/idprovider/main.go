package main

import (
	"os"

	"github.com/viant/idprovider/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
