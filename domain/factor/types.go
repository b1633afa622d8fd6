package factor

import (
	"gopairs/domain/core"
)

// Factor is one independent test dimension. Its identity is its position in
// the Model, not its Name.
type Factor struct {
	Name   string   `json:"name" yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}

// Model is the ordered set of factors a suite is generated from.
type Model struct {
	Factors []Factor `json:"factors" yaml:"factors"`
}

// New builds a model from factors, copying them.
func New(factors ...Factor) Model {
	return Model{Factors: factors}.Clone()
}

// Clone returns a deep copy. The core only ever works on clones so that an
// editing surface may keep mutating its own copy.
func (m Model) Clone() Model {
	out := Model{Factors: make([]Factor, len(m.Factors))}
	for i, f := range m.Factors {
		out.Factors[i] = Factor{
			Name:   f.Name,
			Values: append([]string(nil), f.Values...),
		}
	}
	return out
}

// Len returns the number of factors.
func (m Model) Len() int {
	return len(m.Factors)
}

// Names returns the factor names in order.
func (m Model) Names() []string {
	names := make([]string, len(m.Factors))
	for i, f := range m.Factors {
		names[i] = f.Name
	}
	return names
}

// Sizes returns the value count of each factor in order.
func (m Model) Sizes() []int {
	sizes := make([]int, len(m.Factors))
	for i, f := range m.Factors {
		sizes[i] = len(f.Values)
	}
	return sizes
}

// ValueLists returns the value slices in factor order. The slices alias the model.
func (m Model) ValueLists() [][]string {
	lists := make([][]string, len(m.Factors))
	for i, f := range m.Factors {
		lists[i] = f.Values
	}
	return lists
}

// TotalValues is the sum of all value counts.
func (m Model) TotalValues() int {
	total := 0
	for _, f := range m.Factors {
		total += len(f.Values)
	}
	return total
}

// Hash fingerprints the model for deduplication and logging.
func (m Model) Hash() core.ModelHash {
	return core.ComputeModelHash(m.Names(), m.ValueLists())
}

// Example returns the sample model the editing surface starts from.
func Example() Model {
	return New(
		Factor{Name: "主食", Values: []string{"米", "パン", "ナン"}},
		Factor{Name: "副食", Values: []string{"肉", "魚", "たこ焼き"}},
		Factor{Name: "デザート", Values: []string{"プリン", "ゼリー", "ケーキ"}},
	)
}
