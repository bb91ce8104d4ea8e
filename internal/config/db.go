package config

const (
	// EngineMySQL selects the gorm mysql driver and mysql session storage.
	EngineMySQL = "mysql"
	// EnginePostgres selects the gorm postgres driver and postgres session storage.
	EnginePostgres = "postgres"
	// EngineSQLite selects the pure go sqlite driver and in-memory session storage.
	EngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string // database name, or file path for sqlite
	GormEngine string
}
