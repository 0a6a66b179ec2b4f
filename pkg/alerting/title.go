// Package alerting holds alert presentation and evaluation rules shared by the
// REST handlers: titles, condition checks and dashboard grouping.
package alerting

import (
	"strconv"

	"github.com/alertmgr/backend/pkg/constants"
	"github.com/alertmgr/backend/pkg/models"
)

var operators = map[constants.ComparisonType]string{
	constants.ComparisonGreaterThan:          "is greater than",
	constants.ComparisonLessThan:             "is less than",
	constants.ComparisonEqualTo:              "is equal to",
	constants.ComparisonGreaterThanOrEqualTo: "is greater than or equal to",
	constants.ComparisonLessThanOrEqualTo:    "is less than or equal to",
	constants.ComparisonIncreasesBy:          "increases by",
	constants.ComparisonDecreasesBy:          "decreases by",
	constants.ComparisonChangesBy:            "changes by",
}

// Operator returns the phrase for a comparison type, or "" when unknown
func Operator(ct constants.ComparisonType) string {
	return operators[ct]
}

// Title picks customTitle, then the alert's own custom title, and otherwise
// describes the rule as "{field} {operator} {threshold}"
func Title(alert models.Alert, customTitle string) string {
	if customTitle != "" {
		return customTitle
	}
	if alert.CustomTitle != "" {
		return alert.CustomTitle
	}
	threshold := "..."
	if alert.Threshold != nil {
		threshold = strconv.FormatFloat(*alert.Threshold, 'f', -1, 64)
	}
	return alert.Field.Title + " " + Operator(alert.ComparisonType) + " " + threshold
}
