package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// RunMigrations executes all SQL migration files for the active dialect.
// Migrations live under migrationsPath/<dialect subdir>/*.sql and run in
// lexical order; completed files are tracked in the migrations table.
func (db *DB) RunMigrations(migrationsPath string) error {
	// Create migrations table if it doesn't exist
	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Get all migration files for this dialect
	dir := filepath.Join(migrationsPath, db.Dialect.MigrationsSubdir())
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	// Sort files to ensure they run in order
	sort.Strings(files)

	// Run each migration
	for _, file := range files {
		filename := filepath.Base(file)

		// Check if migration has already been run
		hasRun, err := db.hasMigrationRun(filename)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}

		if hasRun {
			continue
		}

		// Read migration file
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		// Execute migration
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}

		// Record migration as completed
		if err := db.recordMigration(filename); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", filename, err)
		}

		log.Printf("Migration completed: %s", filename)
	}

	return nil
}

// createMigrationsTable creates the table to track completed migrations
func (db *DB) createMigrationsTable() error {
	_, err := db.Exec(db.Dialect.CreateMigrationsTableQuery())
	return err
}

// hasMigrationRun checks if a migration has already been executed
func (db *DB) hasMigrationRun(filename string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM migrations WHERE filename = ?"
	err := db.QueryRow(query, filename).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// recordMigration marks a migration as completed
func (db *DB) recordMigration(filename string) error {
	query := "INSERT INTO migrations (filename) VALUES (?)"
	_, err := db.Exec(query, filename)
	return err
}
