package database

import (
	"log"

	"gorm.io/gorm"
)

// RunMigrations runs any custom data migrations after schema changes
func RunMigrations(db *gorm.DB) error {
	if err := migrateLegacyCaughtFlags(db); err != nil {
		return err
	}
	if err := backfillCaughtTimestamps(db); err != nil {
		return err
	}
	return nil
}

// migrateLegacyCaughtFlags imports rows from the old key-value caught_flags
// table (one row per "caught:<id>" / "shiny:<id>" key, as the first releases
// stored them) into caught_entries, then drops the old table. Safe to run
// multiple times: it only does work while the legacy table still exists.
func migrateLegacyCaughtFlags(db *gorm.DB) error {
	if !db.Migrator().HasTable("caught_flags") {
		return nil
	}

	log.Println("Migrating legacy caught_flags table")

	result := db.Exec(`
		INSERT OR IGNORE INTO caught_entries (species_id, species_key, shiny, caught_at)
		SELECT
			CAST(SUBSTR(key, INSTR(key, ':') + 1) AS INTEGER),
			'',
			CASE WHEN key LIKE 'shiny:%' THEN 1 ELSE 0 END,
			CURRENT_TIMESTAMP
		FROM caught_flags
		WHERE key LIKE 'caught:%' OR key LIKE 'shiny:%'
	`)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Imported %d legacy caught flags", result.RowsAffected)
	}

	if err := db.Migrator().DropTable("caught_flags"); err != nil {
		log.Printf("Warning: failed to drop legacy caught_flags table: %v", err)
	}
	return nil
}

// backfillCaughtTimestamps gives imported rows without a timestamp a value so
// sorting by caught_at stays total.
func backfillCaughtTimestamps(db *gorm.DB) error {
	if !db.Migrator().HasColumn("caught_entries", "caught_at") {
		return nil
	}
	db.Exec(`UPDATE caught_entries SET caught_at = CURRENT_TIMESTAMP WHERE caught_at IS NULL`)
	return nil
}
