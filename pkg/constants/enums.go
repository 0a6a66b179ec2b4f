package constants

// DestinationType is the kind of notification target attached to an alert
type DestinationType string

const (
	DestinationTypeEmail     DestinationType = "EMAIL"
	DestinationTypeActionHub DestinationType = "ACTION_HUB"
)

// ComparisonType is the operator an alert applies between its field and threshold
type ComparisonType string

const (
	ComparisonEqualTo              ComparisonType = "EQUAL_TO"
	ComparisonGreaterThan          ComparisonType = "GREATER_THAN"
	ComparisonGreaterThanOrEqualTo ComparisonType = "GREATER_THAN_OR_EQUAL_TO"
	ComparisonLessThan             ComparisonType = "LESS_THAN"
	ComparisonLessThanOrEqualTo    ComparisonType = "LESS_THAN_OR_EQUAL_TO"
	ComparisonIncreasesBy          ComparisonType = "INCREASES_BY"
	ComparisonDecreasesBy          ComparisonType = "DECREASES_BY"
	ComparisonChangesBy            ComparisonType = "CHANGES_BY"
)

// IsDateComparison reports whether the comparison needs a previous value
func IsDateComparison(c ComparisonType) bool {
	switch c {
	case ComparisonIncreasesBy, ComparisonDecreasesBy, ComparisonChangesBy:
		return true
	}
	return false
}

// Explore field categories as reported by model metadata
const (
	CategoryDimension        = "dimension"
	CategoryMeasure          = "measure"
	CategoryTableCalculation = "table_calculation"
)

// Integration ids with special handling
const (
	IntegrationEmail             = "email"
	IntegrationSlackSuffix       = "slack"
	IntegrationSlackLegacySuffix = "slack_legacy"
)
