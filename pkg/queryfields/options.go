package queryfields

import (
	"strings"

	"github.com/alertmgr/backend/pkg/models"
)

// OptionSeparator joins a field name with its pivot values in an option value
const OptionSeparator = "::"

// FieldRef names a field and the title shown for it
type FieldRef struct {
	Title string `json:"title"`
	Name  string `json:"name"`
}

// FieldOption is one selectable field, optionally narrowed to a pivot combination
type FieldOption struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Level   int    `json:"level"`
	Display string `json:"display"`
}

// NewFieldOption builds the option for ref narrowed to pivots
func NewFieldOption(ref FieldRef, pivots []string) FieldOption {
	if len(pivots) == 0 {
		return FieldOption{Label: ref.Title, Value: ref.Name, Level: 0, Display: ref.Title}
	}
	return FieldOption{
		Label:   ref.Title + " (any)",
		Value:   EncodeOptionValue(ref.Name, pivots),
		Level:   len(pivots),
		Display: "Any " + ref.Title,
	}
}

// BuildFieldOptions emits, per measure, a base option followed by one option per
// pivot combination. Pivoted options are titled by their first pivot value only.
func BuildFieldOptions(combinations [][]string, measures []Field) []FieldOption {
	options := make([]FieldOption, 0, len(measures)*(len(combinations)+1))
	for _, m := range measures {
		options = append(options, NewFieldOption(FieldRef{Title: m.Title(), Name: m.Name}, nil))
		for _, combo := range combinations {
			if len(combo) == 0 {
				continue
			}
			options = append(options, NewFieldOption(FieldRef{Title: combo[0], Name: m.Name}, combo))
		}
	}
	return options
}

// EncodeOptionValue joins name and pivot values with OptionSeparator
func EncodeOptionValue(name string, pivots []string) string {
	if len(pivots) == 0 {
		return name
	}
	return name + OptionSeparator + strings.Join(pivots, OptionSeparator)
}

// DecodeOptionValue splits an option value into the field name and its pivot values
func DecodeOptionValue(value string) (string, []string) {
	parts := strings.Split(value, OptionSeparator)
	if len(parts) == 1 {
		return parts[0], nil
	}
	return parts[0], parts[1:]
}

// AlertFieldToOptionValue encodes an alert field as an option value
func AlertFieldToOptionValue(f models.AlertField) string {
	return EncodeOptionValue(f.Name, alertFieldPivots(f))
}

// OptionValueToAlertField decodes an option value into an alert field whose
// filters carry the pivot values positionally
func OptionValueToAlertField(value string) models.AlertField {
	name, pivots := DecodeOptionValue(value)
	field := models.AlertField{Name: name}
	for _, p := range pivots {
		field.Filter = append(field.Filter, models.AlertFieldFilter{FilterValue: p})
	}
	return field
}

// AlertFieldOption is the option that selects f
func AlertFieldOption(f models.AlertField) FieldOption {
	return NewFieldOption(FieldRef{Title: f.Title, Name: f.Name}, alertFieldPivots(f))
}

func alertFieldPivots(f models.AlertField) []string {
	if len(f.Filter) == 0 {
		return nil
	}
	pivots := make([]string, len(f.Filter))
	for i, filter := range f.Filter {
		pivots[i] = filter.FilterValue
	}
	return pivots
}
