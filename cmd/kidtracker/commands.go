package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/diegocrew/kidtracker/internal/cli"
	"github.com/spf13/cobra"
)

func newResetPasswordCommand(envErr error) *cobra.Command {
	var prompt bool
	command := &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Reset an account password",
		Long: `Without --prompt a temporary password is generated and printed; the
account has to choose a new one at its next login. With --prompt the new
password is read from the terminal without echo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warnEnv(cmd, envErr)
			options := cli.ResetPasswordOptions{Email: args[0]}
			if prompt {
				password, err := cli.PromptNewPassword(os.Stdin, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				options.NewPassword = password
			}
			return cli.RunResetPasswordCommand(resolveDBPath(), options, cmd.OutOrStdout())
		},
	}
	command.Flags().BoolVar(&prompt, "prompt", false, "read the new password from the terminal")
	return command
}

func newSeedDemoCommand(envErr error) *cobra.Command {
	var profileName string
	var today string
	command := &cobra.Command{
		Use:   "seed-demo <email>",
		Short: "Load sample illness history into a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warnEnv(cmd, envErr)
			options := cli.SeedDemoOptions{Email: args[0], ProfileName: profileName}
			if raw := strings.TrimSpace(today); raw != "" {
				parsed, err := time.Parse(time.DateOnly, raw)
				if err != nil {
					return errors.New("--today must use the YYYY-MM-DD format")
				}
				options.Today = parsed
			}
			return cli.RunSeedDemoCommand(resolveDBPath(), options, cmd.OutOrStdout())
		},
	}
	command.Flags().StringVar(&profileName, "profile", "", "profile name (defaults to the first profile)")
	command.Flags().StringVar(&today, "today", "", "anchor date for the demo history, YYYY-MM-DD")
	return command
}

// warnEnv reports a broken .env file on stderr for the one-shot commands,
// which run without the server logger.
func warnEnv(cmd *cobra.Command, envErr error) {
	if envErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", envErr)
	}
}
