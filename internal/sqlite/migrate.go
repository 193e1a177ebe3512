package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/GuiaBolso/darwin"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// ApplicationID is the SQLite application_id for console state databases.
// "SBTC" in ASCII: S=0x53, B=0x42, T=0x54, C=0x43
const ApplicationID = 0x53425443

// ErrInvalidDatabase is returned when the file is not a console state database.
var ErrInvalidDatabase = errors.New("not a valid 'sbtconsole' state database")

// defineMigrations returns the local state migrations. darwin stores a
// checksum of every script, so a released step is never edited.
func defineMigrations() []darwin.Migration {
	m := []darwin.Migration{

		// 0x53425443 = "SBTC" in ASCII
		{Version: 1.00, Description: "Set application_id", Script: `
		PRAGMA application_id = 0x53425443;`},

		{Version: 1.01, Description: "Create Table 'local_state'", Script: `
		CREATE TABLE IF NOT EXISTS local_state (
			state_key VARCHAR(64) PRIMARY KEY,
			state_value TEXT NOT NULL,
			updated_at VARCHAR(25) NOT NULL
		);`},
	}
	return m
}

// VerifyApplicationID accepts a console state database or a brand new empty
// file and rejects anything else.
func VerifyApplicationID(db *sql.DB) error {
	var appID, tables int
	if err := db.QueryRow(`PRAGMA application_id;`).Scan(&appID); err != nil {
		return fmt.Errorf("read application_id: %w", err)
	}
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`).Scan(&tables)
	if err != nil {
		return fmt.Errorf("count tables: %w", err)
	}

	switch {
	case appID == ApplicationID:
		return nil
	case appID != 0:
		return fmt.Errorf("%w (application_id 0x%X)", ErrInvalidDatabase, appID)
	case tables > 0:
		return fmt.Errorf("%w (has tables but no application_id)", ErrInvalidDatabase)
	}
	return nil
}

// RunMigrations brings the local_state schema up to date.
func RunMigrations(db *sql.DB) error {
	if err := VerifyApplicationID(db); err != nil {
		return err
	}

	migrations := defineMigrations()
	steps := make(chan darwin.MigrationInfo, len(migrations))
	d := darwin.New(darwin.NewGenericDriver(db, darwin.SqliteDialect{}), migrations, steps)

	err := d.Migrate()
	close(steps)

	applied := 0
	for step := range steps {
		if step.Error != nil {
			log.Error().Err(step.Error).Float64("version", step.Migration.Version).
				Str("step", step.Migration.Description).Msg("state migration step failed")
			continue
		}
		if step.Status == darwin.Applied {
			applied++
		}
	}
	if err != nil {
		return fmt.Errorf("migrate state database: %w", err)
	}

	if applied > 0 {
		log.Info().Int("steps", applied).Float64("version", migrations[len(migrations)-1].Version).Msg("state database migrated")
	}
	return nil
}

// Open opens (creating if needed) and migrates the state database at path.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, err
	}
	if err := RunMigrations(db.DB); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
