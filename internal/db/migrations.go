package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/diegocrew/kidtracker/migrations"
	"gorm.io/gorm"
)

var (
	migrationFilePattern        = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	addColumnStatementPattern   = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)
	errEmptyMigration           = errors.New("migration has no SQL statements")
	createSchemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
)

type migration struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

type appliedMigrationRow struct {
	Version string `gorm:"column:version"`
}

type tableColumnRow struct {
	Name string `gorm:"column:name"`
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	return applyMigrations(database, embeddedmigrations.Files)
}

// applyMigrations runs every not yet recorded *.sql file of source in version
// order. Each file runs in its own transaction together with its bookkeeping
// row.
func applyMigrations(database *gorm.DB, source fs.FS) error {
	if err := database.Exec(createSchemaMigrationsTable).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	migrations, err := loadMigrations(source)
	if err != nil {
		return err
	}

	applied, err := appliedMigrationVersions(database)
	if err != nil {
		return err
	}

	for _, pending := range migrations {
		if _, done := applied[pending.Version]; done {
			continue
		}
		if err := runMigration(database, pending); err != nil {
			return err
		}
	}
	return nil
}

func loadMigrations(source fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]migration, 0, len(entries))
	owners := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()
		matches := migrationFilePattern.FindStringSubmatch(fileName)
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", fileName, err)
		}
		if owner, duplicate := owners[version]; duplicate {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, owner, fileName)
		}
		owners[version] = fileName

		body, err := fs.ReadFile(source, fileName)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", fileName, err)
		}
		migrations = append(migrations, migration{Version: version, Order: order, Name: fileName, SQL: string(body)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		if migrations[i].Order == migrations[j].Order {
			return migrations[i].Name < migrations[j].Name
		}
		return migrations[i].Order < migrations[j].Order
	})
	return migrations, nil
}

func appliedMigrationVersions(database *gorm.DB) (map[string]struct{}, error) {
	rows := make([]appliedMigrationRow, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}
	versions := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		versions[row.Version] = struct{}{}
	}
	return versions, nil
}

func runMigration(database *gorm.DB, pending migration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitSQLStatements(pending.SQL)
		if len(statements) == 0 {
			return fmt.Errorf("%s: %w", pending.Name, errEmptyMigration)
		}

		for _, statement := range statements {
			exists, err := addedColumnExists(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", pending.Name, err)
			}
			if exists {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", pending.Name, statement, err)
			}
		}

		if err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, pending.Version, pending.Name).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", pending.Name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// addedColumnExists makes ALTER TABLE ... ADD COLUMN statements idempotent for
// databases that received the column before the migration was recorded.
func addedColumnExists(database *gorm.DB, statement string) (bool, error) {
	matches := addColumnStatementPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}
	table := normalizeSQLIdentifier(matches[1])
	column := normalizeSQLIdentifier(matches[2])

	columns := make([]tableColumnRow, 0)
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", table, err)
	}
	for _, existing := range columns {
		if strings.EqualFold(strings.TrimSpace(existing.Name), column) {
			return true, nil
		}
	}
	return false, nil
}

func normalizeSQLIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
