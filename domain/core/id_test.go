package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseSuiteID tests suite ID parsing
func TestParseSuiteID(t *testing.T) {
	generated := NewSuiteID()

	tests := []struct {
		input    string
		expected SuiteID
		hasError bool
	}{
		{generated.String(), generated, false},
		{"", "", true},
		{"   ", "", true},
		{"not-a-uuid", "", true},
	}

	for _, test := range tests {
		result, err := ParseSuiteID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

func TestComputeModelHash(t *testing.T) {
	a := ComputeModelHash([]string{"f"}, [][]string{{"ab", "c"}})
	b := ComputeModelHash([]string{"f"}, [][]string{{"a", "bc"}})
	if a == b {
		t.Errorf("Expected different hashes for differently split values")
	}

	again := ComputeModelHash([]string{"f"}, [][]string{{"ab", "c"}})
	if a != again {
		t.Errorf("Expected stable hash, got %s and %s", a, again)
	}
	if len(Hash(a).Short()) != 12 {
		t.Errorf("Expected 12-char short hash, got %q", Hash(a).Short())
	}
}

func TestValidationErrorHelpers(t *testing.T) {
	if !IsValidationError(NewInsufficientValuesError("os", 1)) {
		t.Error("Expected insufficient values to be a validation error")
	}
	if !IsValidationError(NewEmptyNameError(0, 2)) {
		t.Error("Expected empty name to be a validation error")
	}
	writeErr := NewReportWriteError("save", errors.New("disk full"))
	if IsValidationError(writeErr) {
		t.Error("Expected write failure to stay separate from validation errors")
	}
	if !IsReportWriteError(writeErr) {
		t.Error("Expected write failure to match ErrReportWriteFailed")
	}
}
