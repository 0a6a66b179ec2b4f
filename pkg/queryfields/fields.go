package queryfields

import (
	"encoding/json"

	"github.com/alertmgr/backend/pkg/constants"
	"github.com/alertmgr/backend/pkg/models"
)

// Source tells whether a field came from the model or from the query's dynamic fields
type Source string

const (
	SourceModel   Source = "model"
	SourceDynamic Source = "dynamic"
)

// Kind is the dimension/measure classification of a field
type Kind string

const (
	KindDimension Kind = "dimension"
	KindMeasure   Kind = "measure"
)

// TypeHint is the value type of a field
type TypeHint string

const (
	TypeString   TypeHint = "string"
	TypeNumber   TypeHint = "number"
	TypeYesNo    TypeHint = "yesno"
	TypeDatetime TypeHint = "datetime"
	TypeDate     TypeHint = "date"
)

// DynamicField is a table calculation or custom field defined inside a query
type DynamicField struct {
	Dimension        string   `json:"dimension,omitempty"`
	Measure          string   `json:"measure,omitempty"`
	TableCalculation string   `json:"table_calculation,omitempty"`
	Label            string   `json:"label"`
	Category         string   `json:"category,omitempty"`
	KindHint         Kind     `json:"_kind_hint,omitempty"`
	TypeHint         TypeHint `json:"_type_hint,omitempty"`
}

// Key is the first non-empty of the dimension, measure and table calculation names
func (d DynamicField) Key() string {
	switch {
	case d.Dimension != "":
		return d.Dimension
	case d.Measure != "":
		return d.Measure
	default:
		return d.TableCalculation
	}
}

// ParseDynamicFields decodes a query's dynamic_fields JSON.
// Any decode failure yields an empty mapping.
func ParseDynamicFields(raw string) map[string]DynamicField {
	var list []DynamicField
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return map[string]DynamicField{}
	}
	out := make(map[string]DynamicField, len(list))
	for _, df := range list {
		if key := df.Key(); key != "" {
			out[key] = df
		}
	}
	return out
}

// Field is a resolved query field, either from the model or dynamic
type Field struct {
	Source   Source   `json:"source"`
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Category string   `json:"category,omitempty"`
	Kind     Kind     `json:"kind"`
	Type     TypeHint `json:"type,omitempty"`
}

// Title is the label shown for the field
func (f Field) Title() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Alertable reports whether an alert may compare this field against a threshold
func (f Field) Alertable() bool {
	return f.Kind == KindMeasure && f.Type == TypeNumber
}

func modelField(ef models.ExploreField) Field {
	kind := KindMeasure
	if ef.Category == constants.CategoryDimension {
		kind = KindDimension
	}
	typ := TypeString
	if ef.IsNumeric {
		typ = TypeNumber
	}
	return Field{
		Source:   SourceModel,
		Name:     ef.Name,
		Label:    ef.Label,
		Category: ef.Category,
		Kind:     kind,
		Type:     typ,
	}
}

func dynamicField(df DynamicField) Field {
	kind := df.KindHint
	if kind == "" {
		kind = KindDimension
		if df.Measure != "" {
			kind = KindMeasure
		}
	}
	return Field{
		Source:   SourceDynamic,
		Name:     df.Key(),
		Label:    df.Label,
		Category: df.Category,
		Kind:     kind,
		Type:     df.TypeHint,
	}
}
