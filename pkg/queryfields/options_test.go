package queryfields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alertmgr/backend/pkg/models"
)

func TestNewFieldOption(t *testing.T) {
	ref := FieldRef{Title: "Order Items Big", Name: "order_items_big.count"}

	tests := []struct {
		name     string
		pivots   []string
		expected FieldOption
	}{
		{
			name:     "no pivots",
			pivots:   nil,
			expected: FieldOption{Label: "Order Items Big", Value: "order_items_big.count", Level: 0, Display: "Order Items Big"},
		},
		{
			name:     "one pivot",
			pivots:   []string{"Cancelled"},
			expected: FieldOption{Label: "Order Items Big (any)", Value: "order_items_big.count::Cancelled", Level: 1, Display: "Any Order Items Big"},
		},
		{
			name:     "two pivots",
			pivots:   []string{"Cancelled", "Complete"},
			expected: FieldOption{Label: "Order Items Big (any)", Value: "order_items_big.count::Cancelled::Complete", Level: 2, Display: "Any Order Items Big"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewFieldOption(ref, tt.pivots))
		})
	}
}

func TestBuildFieldOptions_SinglePivot(t *testing.T) {
	measures := []Field{
		{Source: SourceModel, Name: "order_items_big.count", Label: "Order Items Big Count", Kind: KindMeasure, Type: TypeNumber},
		{Source: SourceDynamic, Name: "count_of_user_id", Label: "Count of User ID", Kind: KindMeasure, Type: TypeNumber},
	}
	combos := [][]string{{"Cancelled"}, {"Complete"}, {"Processing"}, {"Returned"}, {"Shipped"}}

	options := BuildFieldOptions(combos, measures)
	assert.Len(t, options, 12)

	assert.Equal(t, FieldOption{Label: "Order Items Big Count", Value: "order_items_big.count", Level: 0, Display: "Order Items Big Count"}, options[0])
	assert.Equal(t, FieldOption{Label: "Cancelled (any)", Value: "order_items_big.count::Cancelled", Level: 1, Display: "Any Cancelled"}, options[1])
	assert.Equal(t, FieldOption{Label: "Count of User ID", Value: "count_of_user_id", Level: 0, Display: "Count of User ID"}, options[6])
	assert.Equal(t, "count_of_user_id::Shipped", options[11].Value)
}

func TestBuildFieldOptions_MultiPivotUsesFirstValueAsLabel(t *testing.T) {
	measures := []Field{{Name: "m", Label: "M", Kind: KindMeasure, Type: TypeNumber}}
	options := BuildFieldOptions([][]string{{"Complete", "2022-01"}}, measures)

	assert.Equal(t, []FieldOption{
		{Label: "M", Value: "m", Level: 0, Display: "M"},
		{Label: "Complete (any)", Value: "m::Complete::2022-01", Level: 2, Display: "Any Complete"},
	}, options)
}

func TestBuildFieldOptions_NoPivots(t *testing.T) {
	measures := []Field{{Name: "m", Label: "M"}, {Name: "n", Label: "N"}}
	options := BuildFieldOptions(nil, measures)
	assert.Equal(t, []FieldOption{
		{Label: "M", Value: "m", Level: 0, Display: "M"},
		{Label: "N", Value: "n", Level: 0, Display: "N"},
	}, options)
}

func TestOptionValueToAlertField(t *testing.T) {
	field := OptionValueToAlertField("f::A::B")
	assert.Equal(t, models.AlertField{
		Name:   "f",
		Filter: []models.AlertFieldFilter{{FilterValue: "A"}, {FilterValue: "B"}},
	}, field)

	assert.Equal(t, "f::A::B", AlertFieldToOptionValue(field))

	field.Title = "F"
	assert.Equal(t, FieldOption{Label: "F (any)", Value: "f::A::B", Level: 2, Display: "Any F"}, AlertFieldOption(field))

	plain := OptionValueToAlertField("orders.count")
	assert.Equal(t, "orders.count", plain.Name)
	assert.Empty(t, plain.Filter)
	assert.Equal(t, "orders.count", AlertFieldToOptionValue(plain))
}

func TestOptionValueRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		pivots []string
	}{
		{"orders.count", nil},
		{"orders.count", []string{"Complete"}},
		{"orders.count", []string{"Complete", "2022-01"}},
		{"orders.count", []string{"", ""}},
		{"count_of_user_id", []string{"a:b", "c"}},
	}

	for _, tt := range tests {
		name, pivots := DecodeOptionValue(EncodeOptionValue(tt.name, tt.pivots))
		assert.Equal(t, tt.name, name)
		assert.Equal(t, tt.pivots, pivots)
	}
}
