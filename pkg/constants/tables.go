package constants

import "strings"

// Table names owned by the alert manager.
const (
	TablePrefix          = "am_"
	TableAlert           = "am_alert"
	TableSchemaMigration = "am_schema_migration"
)

// IsManagedTable reports whether the table belongs to this service.
func IsManagedTable(tableName string) bool {
	return strings.HasPrefix(tableName, TablePrefix)
}
