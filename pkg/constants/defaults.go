package constants

// Default values for service operations
const (
	DefaultPort         = "3001"
	DefaultDBDriver     = "sqlite"
	DefaultSQLitePath   = "data/alerts.db"
	DefaultLogLevel     = "info"
	DefaultTimezone     = "UTC"
	DefaultBITimeoutSec = 30
)
