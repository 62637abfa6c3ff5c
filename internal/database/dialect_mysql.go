package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders like SQLite, no rewrite needed
	return query
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool for MySQL
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Ensure foreign key checks are enabled
	if _, err := db.Exec("SET FOREIGN_KEY_CHECKS = 1;"); err != nil {
		return err
	}

	return nil
}

func (d *MySQLDialect) MigrationsSubdir() string {
	return "mysql"
}

func (d *MySQLDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		);
	`
}

// MySQL error numbers raised when a row is still referenced or a
// referenced parent row is missing
const (
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

func (d *MySQLDialect) IsForeignKeyViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == mysqlRowIsReferenced || mysqlErr.Number == mysqlNoReferencedRow
}
