package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvable_Resolve(t *testing.T) {
	ctx := &Context{Source: "Test", Level: 7}

	tests := []struct {
		name     string
		value    Resolvable
		expected int
		ok       bool
	}{
		{
			name:     "numeric literal",
			value:    NewValue(5),
			expected: 5,
			ok:       true,
		},
		{
			name:     "negative literal",
			value:    NewValue(-2),
			expected: -2,
			ok:       true,
		},
		{
			name:     "plain numeric string",
			value:    NewFormula("12"),
			expected: 12,
			ok:       true,
		},
		{
			name:     "level reference",
			value:    NewFormula("level"),
			expected: 7,
			ok:       true,
		},
		{
			name:     "actor level reference",
			value:    NewFormula("@actor.level"),
			expected: 7,
			ok:       true,
		},
		{
			name:     "level times integer",
			value:    NewFormula("level * 2"),
			expected: 14,
			ok:       true,
		},
		{
			name:     "integer times level",
			value:    NewFormula("3*level"),
			expected: 21,
			ok:       true,
		},
		{
			name:     "level floor division",
			value:    NewFormula("level / 2"),
			expected: 3,
			ok:       true,
		},
		{
			name:  "division by zero",
			value: NewFormula("level / 0"),
			ok:    false,
		},
		{
			name:  "unsupported expression",
			value: NewFormula("level + 2"),
			ok:    false,
		},
		{
			name:  "garbage",
			value: NewFormula("2d6"),
			ok:    false,
		},
		{
			name:  "empty formula",
			value: NewFormula(""),
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := tt.value.Resolve(ctx)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestResolvable_ResolveIsCaseInsensitive(t *testing.T) {
	ctx := &Context{Source: "Test", Level: 4}

	result, ok := NewFormula("LEVEL * 2").Resolve(ctx)
	require.True(t, ok)
	assert.Equal(t, 8, result)
}

func TestResolvable_JSON(t *testing.T) {
	t.Run("decodes number", func(t *testing.T) {
		var r Resolvable
		require.NoError(t, json.Unmarshal([]byte(`5`), &r))

		result, ok := r.Resolve(&Context{Level: 1})
		require.True(t, ok)
		assert.Equal(t, 5, result)
	})

	t.Run("decodes formula string", func(t *testing.T) {
		var r Resolvable
		require.NoError(t, json.Unmarshal([]byte(`"level * 3"`), &r))

		result, ok := r.Resolve(&Context{Level: 2})
		require.True(t, ok)
		assert.Equal(t, 6, result)
	})

	t.Run("round-trips original shape", func(t *testing.T) {
		data, err := json.Marshal(NewFormula("level / 2"))
		require.NoError(t, err)
		assert.JSONEq(t, `"level / 2"`, string(data))

		data, err = json.Marshal(NewValue(3))
		require.NoError(t, err)
		assert.JSONEq(t, `3`, string(data))
	})
}
