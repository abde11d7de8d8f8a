package main

import (
	"os"

	"github.com/zephyrtronium/symcalc/cmd/symcalc/commands"
	"github.com/zephyrtronium/symcalc/internal/logger"
)

func main() {
	defer logger.Cleanup()
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
