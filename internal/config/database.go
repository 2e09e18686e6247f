// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

func (d *DatabaseConfig) IsSQLite() bool {
	return d.Driver == "sqlite"
}

// SQLiteDSN is the SQLite path with foreign key enforcement switched on.
func (d *DatabaseConfig) SQLiteDSN() string {
	const pragma = "_pragma=foreign_keys(1)"
	if strings.Contains(d.SQLitePath, pragma) {
		return d.SQLitePath
	}
	if strings.Contains(d.SQLitePath, "?") {
		return d.SQLitePath + "&" + pragma
	}
	return d.SQLitePath + "?" + pragma
}
