package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/diegocrew/kidtracker/internal/db"
	"github.com/diegocrew/kidtracker/internal/services"
	"gorm.io/gorm"
)

type SeedDemoOptions struct {
	Email       string
	ProfileName string
	Today       time.Time
}

// RunSeedDemoCommand loads the demo illness history into a profile of the
// given account. Without a profile name the first profile is used.
func RunSeedDemoCommand(dbPath string, options SeedDemoOptions, out io.Writer) error {
	return withDatabase(dbPath, func(database *gorm.DB) error {
		return seedDemo(database, options, out)
	})
}

func seedDemo(database *gorm.DB, options SeedDemoOptions, out io.Writer) error {
	repositories := db.NewRepositories(database)

	email := services.NormalizeAuthEmail(options.Email)
	if email == "" {
		return fmt.Errorf("invalid email address %q", options.Email)
	}
	user, found, err := repositories.Users.FindByNormalizedEmail(email)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if !found {
		return fmt.Errorf("user %s not found", email)
	}

	profileService := services.NewProfileService(repositories.Profiles)
	if _, err := profileService.EnsureDefaultProfile(user.ID); err != nil {
		return err
	}
	profiles, err := profileService.ListProfiles(user.ID)
	if err != nil {
		return err
	}

	target := profiles[0]
	if name := strings.TrimSpace(options.ProfileName); name != "" {
		matched := false
		for _, profile := range profiles {
			if strings.EqualFold(profile.Name, name) {
				target = profile
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("profile %q not found for %s", name, email)
		}
	}

	today := options.Today
	if today.IsZero() {
		today = time.Now()
	}
	imported, err := services.NewDayService(repositories.DailyLogs).ImportDayLogs(target.ID, services.GenerateDemoLogs(today))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Loaded %d demo days into profile %s (%s)\n", imported, target.Name, target.ID)
	return nil
}
