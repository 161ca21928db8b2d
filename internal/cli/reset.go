package cli

import (
	"fmt"
	"io"

	"github.com/diegocrew/kidtracker/internal/db"
	"github.com/diegocrew/kidtracker/internal/security"
	"github.com/diegocrew/kidtracker/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// ResetPasswordOptions selects between a generated temporary password, which
// forces a change at next login, and an explicit new one.
type ResetPasswordOptions struct {
	Email       string
	NewPassword string
}

func RunResetPasswordCommand(dbPath string, options ResetPasswordOptions, out io.Writer) error {
	return withDatabase(dbPath, func(database *gorm.DB) error {
		return resetPassword(database, options, out)
	})
}

func resetPassword(database *gorm.DB, options ResetPasswordOptions, out io.Writer) error {
	authService := services.NewAuthService(db.NewRepositories(database).Users)

	password := options.NewPassword
	temporary := password == ""
	if temporary {
		generated, err := generateTemporaryPassword(12)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
		password = generated
	}

	user, err := authService.ResetPassword(options.Email, password, temporary)
	if err != nil {
		return fmt.Errorf("reset password for %s: %w", options.Email, err)
	}

	fmt.Fprintf(out, "Password reset for %s\n", user.Email)
	if temporary {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
		fmt.Fprintln(out, "A new password must be chosen at next login.")
	}
	return nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	return security.RandomString(length, temporaryPasswordAlphabet)
}

func withDatabase(dbPath string, run func(database *gorm.DB) error) error {
	database, err := db.OpenSQLite(dbPath, nil)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	return run(database)
}
