package config

// Supported database drivers.
const (
	DBDriverSQLite   = "sqlite"
	DBDriverMySQL    = "mysql"
	DBDriverPostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Driver   string // sqlite, mysql or postgres
	Path     string // file path for the sqlite driver
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
