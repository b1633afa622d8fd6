package factor

import "gopairs/domain/core"

// The editing operations below mutate m in place. Callers that share a model
// across goroutines hold their own lock and hand out clones.

// AddFactor appends a factor.
func (m *Model) AddFactor(name string, values ...string) {
	m.Factors = append(m.Factors, Factor{Name: name, Values: append([]string(nil), values...)})
}

// RenameFactor replaces the name of factor i.
func (m *Model) RenameFactor(i int, name string) error {
	if err := m.checkFactor(i); err != nil {
		return err
	}
	m.Factors[i].Name = name
	return nil
}

// RemoveFactor deletes factor i. The last remaining factor cannot be removed.
func (m *Model) RemoveFactor(i int) error {
	if err := m.checkFactor(i); err != nil {
		return err
	}
	if len(m.Factors) <= 1 {
		return core.NewRemovalRefusedError("model", 1)
	}
	m.Factors = append(m.Factors[:i:i], m.Factors[i+1:]...)
	return nil
}

// AddValue appends a value to factor i.
func (m *Model) AddValue(i int, value string) error {
	if err := m.checkFactor(i); err != nil {
		return err
	}
	m.Factors[i].Values = append(m.Factors[i].Values, value)
	return nil
}

// RenameValue replaces value j of factor i.
func (m *Model) RenameValue(i, j int, value string) error {
	if err := m.checkValue(i, j); err != nil {
		return err
	}
	m.Factors[i].Values[j] = value
	return nil
}

// RemoveValue deletes value j of factor i while more than MinValues remain.
func (m *Model) RemoveValue(i, j int) error {
	if err := m.checkValue(i, j); err != nil {
		return err
	}
	values := m.Factors[i].Values
	if len(values) <= MinValues {
		return core.NewRemovalRefusedError("factor "+m.Factors[i].Name, MinValues)
	}
	m.Factors[i].Values = append(values[:j:j], values[j+1:]...)
	return nil
}

func (m *Model) checkFactor(i int) error {
	if i < 0 || i >= len(m.Factors) {
		return core.NewOutOfRangeError("factor", i)
	}
	return nil
}

func (m *Model) checkValue(i, j int) error {
	if err := m.checkFactor(i); err != nil {
		return err
	}
	if j < 0 || j >= len(m.Factors[i].Values) {
		return core.NewOutOfRangeError("value", j)
	}
	return nil
}
