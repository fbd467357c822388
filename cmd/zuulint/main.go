package main

import (
	"fmt"
	"os"

	"zuulint/cmd/zuulint/commands"
	"zuulint/cmd/zuulint/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
