package factor

import (
	"strings"

	"gopairs/domain/core"
)

const (
	// MinFactors is the smallest model that has a pair to cover.
	MinFactors = 2
	// MinValues is the smallest value list a factor may have.
	MinValues = 2
)

// Validate checks the invariants every downstream operation relies on.
// Errors wrap the core validation sentinels.
func Validate(m Model) error {
	if len(m.Factors) < MinFactors {
		return core.NewInsufficientFactorsError(len(m.Factors))
	}

	for i, f := range m.Factors {
		if strings.TrimSpace(f.Name) == "" {
			return core.NewEmptyNameError(i, -1)
		}
		if len(f.Values) < MinValues {
			return core.NewInsufficientValuesError(f.Name, len(f.Values))
		}
		for j, v := range f.Values {
			if strings.TrimSpace(v) == "" {
				return core.NewEmptyNameError(i, j)
			}
		}
	}

	return nil
}
