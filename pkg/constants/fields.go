package constants

// Column names of the alert table.
const (
	FieldID                      = "id"
	FieldOwnerID                 = "owner_id"
	FieldDashboardID             = "dashboard_id"
	FieldDashboardTitle          = "dashboard_title"
	FieldDashboardURL            = "dashboard_url"
	FieldQuerySlug               = "query_slug"
	FieldModel                   = "model"
	FieldView                    = "view_name"
	FieldCustomTitle             = "custom_title"
	FieldComparisonType          = "comparison_type"
	FieldThreshold               = "threshold"
	FieldCron                    = "cron"
	FieldAlertField              = "field"
	FieldAppliedDashboardFilters = "applied_dashboard_filters"
	FieldDestinations            = "destinations"
	FieldFollowers               = "followers"
	FieldCreatedDate             = "created_at"
	FieldLastModifiedDate        = "updated_at"
)

// AlertColumns is the column order used by every alert SELECT.
var AlertColumns = []string{
	FieldID,
	FieldOwnerID,
	FieldDashboardID,
	FieldDashboardTitle,
	FieldDashboardURL,
	FieldQuerySlug,
	FieldModel,
	FieldView,
	FieldCustomTitle,
	FieldComparisonType,
	FieldThreshold,
	FieldCron,
	FieldAlertField,
	FieldAppliedDashboardFilters,
	FieldDestinations,
	FieldFollowers,
	FieldCreatedDate,
	FieldLastModifiedDate,
}
