package factor

import (
	"testing"

	"gopairs/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		model   Model
		wantErr error
	}{
		{
			name:  "example model",
			model: Example(),
		},
		{
			name:    "no factors",
			model:   Model{},
			wantErr: core.ErrInsufficientFactors,
		},
		{
			name:    "single factor",
			model:   New(Factor{Name: "os", Values: []string{"linux", "mac"}}),
			wantErr: core.ErrInsufficientFactors,
		},
		{
			name: "factor with one value",
			model: New(
				Factor{Name: "os", Values: []string{"linux", "mac"}},
				Factor{Name: "browser", Values: []string{"firefox"}},
			),
			wantErr: core.ErrInsufficientValues,
		},
		{
			name: "blank factor name",
			model: New(
				Factor{Name: "  ", Values: []string{"linux", "mac"}},
				Factor{Name: "browser", Values: []string{"firefox", "chrome"}},
			),
			wantErr: core.ErrEmptyName,
		},
		{
			name: "blank value",
			model: New(
				Factor{Name: "os", Values: []string{"linux", ""}},
				Factor{Name: "browser", Values: []string{"firefox", "chrome"}},
			),
			wantErr: core.ErrEmptyName,
		},
		{
			name: "duplicate values are allowed",
			model: New(
				Factor{Name: "os", Values: []string{"linux", "linux"}},
				Factor{Name: "browser", Values: []string{"firefox", "chrome"}},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.model)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, core.IsValidationError(err))
		})
	}
}

func TestValidateNamesOffendingFactor(t *testing.T) {
	m := New(
		Factor{Name: "os", Values: []string{"linux", "mac"}},
		Factor{Name: "browser", Values: []string{"firefox"}},
	)

	err := Validate(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"browser"`)
}

func TestCloneIsDeep(t *testing.T) {
	original := Example()
	snapshot := original.Clone()

	original.Factors[0].Name = "changed"
	original.Factors[0].Values[0] = "changed"

	assert.Equal(t, "主食", snapshot.Factors[0].Name)
	assert.Equal(t, "米", snapshot.Factors[0].Values[0])
}

func TestModelAccessors(t *testing.T) {
	m := Example()

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"主食", "副食", "デザート"}, m.Names())
	assert.Equal(t, []int{3, 3, 3}, m.Sizes())
	assert.Equal(t, 9, m.TotalValues())
	assert.Equal(t, m.Hash(), Example().Hash())
}
