package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=X.Y.Z".
var Version = "0.0.0-dev"

// newRootCommand receives the result of loading .env so each command can
// report it through its own output.
func newRootCommand(envErr error) *cobra.Command {
	root := &cobra.Command{
		Use:           "kidtracker",
		Short:         "Track children's sick days and illness episodes",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envErr)
		},
	}
	root.AddCommand(newServeCommand(envErr))
	root.AddCommand(newResetPasswordCommand(envErr))
	root.AddCommand(newSeedDemoCommand(envErr))
	return root
}

func main() {
	if err := newRootCommand(loadDotEnv()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
