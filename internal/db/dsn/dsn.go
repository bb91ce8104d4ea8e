// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/GoMembership/GoMembership/internal/config"
)

// Create builds the Data Source Name of the configured engine.
// For sqlite the database name is the file path, ":memory:" included.
func Create(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return postgres(&cfg.DB)
	case config.EngineSQLite:
		return cfg.DB.Name
	default:
		return mysql(&cfg.DB)
	}
}

func mysql(db *config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
	)

	if db.Extras != "" {
		out += "?" + db.Extras
	}

	return out
}

// postgres builds a keyword/value connection string, extras use the same form (e.g. "sslmode=disable").
func postgres(db *config.DB) string {
	parts := []string{
		"host=" + db.Host,
		fmt.Sprintf("port=%d", db.Port),
		"user=" + db.User,
		"password=" + db.Password,
		"dbname=" + db.Name,
	}

	if db.Extras != "" {
		parts = append(parts, strings.ReplaceAll(db.Extras, "&", " "))
	}

	return strings.Join(parts, " ")
}
