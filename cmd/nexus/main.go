// Package main is the entry point for the nexus CLI.
package main

import (
	"fmt"
	"os"

	"github.com/nexuscli/nexus/cmd/nexus/app"
	"github.com/nexuscli/nexus/internal/logging"
	"github.com/nexuscli/nexus/internal/style"
)

func main() {
	rootCmd := app.NewRootCmd()
	err := rootCmd.Execute()
	_ = logging.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorText.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(app.ExitCodeFor(err))
	}
}
