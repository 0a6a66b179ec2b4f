package alerting

import (
	"fmt"

	"github.com/alertmgr/backend/pkg/constants"
	"github.com/alertmgr/backend/pkg/errors"
	"github.com/alertmgr/backend/pkg/expression"
)

var conditions = map[constants.ComparisonType]string{
	constants.ComparisonGreaterThan:          "value > threshold",
	constants.ComparisonLessThan:             "value < threshold",
	constants.ComparisonEqualTo:              "value == threshold",
	constants.ComparisonGreaterThanOrEqualTo: "value >= threshold",
	constants.ComparisonLessThanOrEqualTo:    "value <= threshold",
	constants.ComparisonIncreasesBy:          "value - previous >= threshold",
	constants.ComparisonDecreasesBy:          "previous - value >= threshold",
	constants.ComparisonChangesBy:            "ABS(value - previous) >= threshold",
}

// Sample is one observed value of an alert field
type Sample struct {
	Value    float64  `json:"value"`
	Previous *float64 `json:"previous,omitempty"`
}

// Evaluator decides whether an alert condition holds for a sample
type Evaluator struct {
	engine *expression.Engine
}

// NewEvaluator creates an Evaluator backed by engine
func NewEvaluator(engine *expression.Engine) *Evaluator {
	return &Evaluator{engine: engine}
}

// Condition returns the expression evaluated for a comparison type
func Condition(ct constants.ComparisonType) (string, bool) {
	c, ok := conditions[ct]
	return c, ok
}

// Evaluate reports whether the alert would fire. Change comparisons need a previous value.
func (e *Evaluator) Evaluate(ct constants.ComparisonType, threshold float64, sample Sample) (bool, error) {
	condition, ok := Condition(ct)
	if !ok {
		return false, errors.NewValidationError("comparison_type", "unsupported comparison type "+string(ct))
	}

	env := map[string]any{
		"value":     sample.Value,
		"threshold": threshold,
		"previous":  0.0,
	}
	if constants.IsDateComparison(ct) {
		if sample.Previous == nil {
			return false, errors.NewValidationError("previous", "required for "+string(ct))
		}
		env["previous"] = *sample.Previous
	}

	fired, err := e.engine.EvaluateBool(condition, env)
	if err != nil {
		return false, errors.NewInternalError("evaluate condition", err)
	}
	return fired, nil
}

// Validate compiles every comparison condition against a sample environment
func (e *Evaluator) Validate() error {
	env := map[string]any{"value": 0.0, "threshold": 0.0, "previous": 0.0}
	for ct, condition := range conditions {
		if err := e.engine.Validate(condition, env); err != nil {
			return fmt.Errorf("condition for %s: %w", ct, err)
		}
	}
	return nil
}
