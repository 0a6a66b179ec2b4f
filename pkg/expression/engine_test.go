package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Evaluate(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name     string
		expr     string
		env      map[string]any
		expected any
		wantErr  bool
	}{
		{
			name:     "Comparison",
			expr:     "value > threshold",
			env:      map[string]any{"value": 12.0, "threshold": 10.0},
			expected: true,
		},
		{
			name:     "Absolute Change",
			expr:     "ABS(value - previous)",
			env:      map[string]any{"value": 5.0, "previous": 8.0},
			expected: 3.0,
		},
		{
			name:    "Unknown Variable",
			expr:    "missing > 1",
			env:     map[string]any{"value": 1.0},
			wantErr: true,
		},
		{
			name:    "Syntax Error",
			expr:    "value >",
			env:     map[string]any{"value": 1.0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(tt.expr, tt.env)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if f, ok := tt.expected.(float64); ok {
				assert.InDelta(t, f, got, 1e-9)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEngine_EvaluateBool(t *testing.T) {
	e := NewEngine()
	ok, err := e.EvaluateBool("value <= threshold", map[string]any{"value": 3.0, "threshold": 3.0})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = e.EvaluateBool("value + 1", map[string]any{"value": 3.0})
	assert.Error(t, err)
}

func TestEngine_ProgramCache(t *testing.T) {
	e := NewEngine()
	env := map[string]any{"value": 1.0, "threshold": 2.0}

	for i := 0; i < 3; i++ {
		_, err := e.Evaluate("value < threshold", env)
		require.NoError(t, err)
	}
	require.NoError(t, e.Validate("value > threshold", env))
	assert.Len(t, e.programCache, 2)
}

func TestEngine_Validate(t *testing.T) {
	e := NewEngine()
	assert.NoError(t, e.Validate("value == threshold", map[string]any{"value": 0.0, "threshold": 0.0}))
	assert.Error(t, e.Validate("value ==", nil))
}
