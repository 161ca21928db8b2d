package api

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/diegocrew/kidtracker/internal/models"
	"github.com/diegocrew/kidtracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportJSONResponse struct {
	Profile    models.Profile         `json:"profile"`
	ExportedAt time.Time              `json:"exported_at"`
	Summary    services.ExportSummary `json:"summary"`
	Stats      services.IllnessStats  `json:"stats"`
	Entries    []services.ExportEntry `json:"entries"`
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	profile, entries, _, err := handler.loadExport(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	content, err := services.BuildCSV(entries)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	setAttachmentHeaders(c, "text/csv; charset=utf-8", handler.exportFilename(profile, "csv"))
	return c.Send(content)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	profile, entries, stats, err := handler.loadExport(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	setAttachmentHeaders(c, fiber.MIMEApplicationJSONCharsetUTF8, handler.exportFilename(profile, "json"))
	return c.JSON(exportJSONResponse{
		Profile:    *profile,
		ExportedAt: handler.now().UTC(),
		Summary:    services.BuildExportSummary(entries),
		Stats:      stats,
		Entries:    entries,
	})
}

func (handler *Handler) ExportXLSX(c *fiber.Ctx) error {
	profile, entries, stats, err := handler.loadExport(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	content, err := services.BuildWorkbook(profile.Name, entries, stats)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	setAttachmentHeaders(c, xlsxContentType, handler.exportFilename(profile, "xlsx"))
	return c.Send(content)
}

func (handler *Handler) loadExport(c *fiber.Ctx) (*models.Profile, []services.ExportEntry, services.IllnessStats, error) {
	profile, ok := currentProfile(c)
	if !ok {
		return nil, nil, services.IllnessStats{}, services.ErrProfileNotFound
	}

	from, to := optionalRange(c)
	entries, stats, err := handler.exportService.LoadEntries(profile.ID, from, to)
	if err != nil {
		return nil, nil, services.IllnessStats{}, err
	}
	return profile, entries, stats, nil
}

func (handler *Handler) exportFilename(profile *models.Profile, extension string) string {
	day := handler.now().In(handler.location).Format(models.DateKeyLayout)
	return fmt.Sprintf("kidtracker-%s-%s.%s", filenameSlug(profile.Name), day, extension)
}

func filenameSlug(name string) string {
	var builder strings.Builder
	for _, char := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case char < unicode.MaxASCII && (unicode.IsLetter(char) || unicode.IsDigit(char)):
			builder.WriteRune(char)
		case char == ' ' || char == '-' || char == '_':
			builder.WriteRune('-')
		}
	}
	slug := strings.Trim(builder.String(), "-")
	if slug == "" {
		return "profile"
	}
	return slug
}
