// Package queryfields resolves the fields of a saved query against model
// metadata and turns a pivoted sample result into selectable alert fields.
package queryfields

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alertmgr/backend/pkg/models"
)

// QueryRunner executes a saved query and returns its JSON result rows
type QueryRunner interface {
	RunQuery(ctx context.Context, queryID string) ([]ResultRow, error)
}

// QueryRunnerFunc adapts a function to QueryRunner
type QueryRunnerFunc func(ctx context.Context, queryID string) ([]ResultRow, error)

func (f QueryRunnerFunc) RunQuery(ctx context.Context, queryID string) ([]ResultRow, error) {
	return f(ctx, queryID)
}

// PivotFieldOptions is everything a field picker needs for one query
type PivotFieldOptions struct {
	PivotValues    [][]string    `json:"pivot_values"`
	NonPivotFields []Field       `json:"non_pivot_fields"`
	PivotFields    []Field       `json:"pivot_fields"`
	FieldOptions   []FieldOption `json:"field_options"`
}

// Resolver looks up the fields of one query
type Resolver struct {
	query         models.Query
	modelFields   map[string]Field
	dynamicFields map[string]DynamicField
}

// NewResolver indexes the explore's dimensions and measures and the query's dynamic fields
func NewResolver(explore models.ModelExplore, query models.Query) *Resolver {
	r := &Resolver{
		query:         query,
		modelFields:   make(map[string]Field, len(explore.Fields.Dimensions)+len(explore.Fields.Measures)),
		dynamicFields: map[string]DynamicField{},
	}
	for _, group := range [][]models.ExploreField{explore.Fields.Dimensions, explore.Fields.Measures} {
		for _, ef := range group {
			r.modelFields[ef.Name] = modelField(ef)
		}
	}
	if query.DynamicFields != "" {
		r.dynamicFields = ParseDynamicFields(query.DynamicFields)
	}
	return r
}

// DynamicFields returns the parsed dynamic fields keyed by name
func (r *Resolver) DynamicFields() map[string]DynamicField {
	return r.dynamicFields
}

// LookupField resolves name against model fields first, then dynamic fields
func (r *Resolver) LookupField(name string) (Field, bool) {
	if f, ok := r.modelFields[name]; ok {
		return f, true
	}
	if df, ok := r.dynamicFields[name]; ok {
		return dynamicField(df), true
	}
	return Field{}, false
}

func (r *Resolver) lookupAll(names []string) []Field {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		if f, ok := r.LookupField(name); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// QueryFields resolves the query's fields in order, skipping unknown names
func (r *Resolver) QueryFields() []Field {
	return r.lookupAll(r.query.Fields)
}

// AlertFields is the subset of QueryFields that are numeric measures
func (r *Resolver) AlertFields() []Field {
	var out []Field
	for _, f := range r.QueryFields() {
		if f.Alertable() {
			out = append(out, f)
		}
	}
	return out
}

// QueryPivotFieldOptions builds the field picker options. The query is run only
// when it declares pivots; combinations are sorted by their joined form.
func (r *Resolver) QueryPivotFieldOptions(ctx context.Context, runner QueryRunner) (PivotFieldOptions, error) {
	pivotValues := [][]string{}
	if len(r.query.Pivots) > 0 {
		rows, err := runner.RunQuery(ctx, r.query.ID)
		if err != nil {
			return PivotFieldOptions{}, fmt.Errorf("run query %s: %w", r.query.ID, err)
		}
		pivotValues = ExtractPivotCombinations(rows, r.query.Fields, r.query.Pivots)
		SortCombinations(pivotValues)
	}

	nonPivots := make([]string, 0, len(r.query.Fields))
	for _, f := range r.query.Fields {
		if !slices.Contains(r.query.Pivots, f) {
			nonPivots = append(nonPivots, f)
		}
	}

	return PivotFieldOptions{
		PivotValues:    pivotValues,
		NonPivotFields: r.lookupAll(nonPivots),
		PivotFields:    r.lookupAll(r.query.Pivots),
		FieldOptions:   BuildFieldOptions(pivotValues, r.AlertFields()),
	}, nil
}

// SortCombinations orders combinations by their OptionSeparator-joined form
func SortCombinations(combinations [][]string) {
	slices.SortStableFunc(combinations, func(a, b []string) int {
		return strings.Compare(strings.Join(a, OptionSeparator), strings.Join(b, OptionSeparator))
	})
}
