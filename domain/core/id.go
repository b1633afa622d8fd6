package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SuiteID     ID
	WorkspaceID ID
)

func (id SuiteID) String() string     { return ID(id).String() }
func (id WorkspaceID) String() string { return ID(id).String() }

func NewSuiteID() SuiteID         { return SuiteID(NewID()) }
func NewWorkspaceID() WorkspaceID { return WorkspaceID(NewID()) }

// ParseSuiteID parses a string into SuiteID
func ParseSuiteID(s string) (SuiteID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("suite ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("suite ID %q is not a UUID: %w", s, err)
	}
	return SuiteID(s), nil
}

// ParseWorkspaceID parses a string into WorkspaceID
func ParseWorkspaceID(s string) (WorkspaceID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("workspace ID cannot be empty")
	}
	return WorkspaceID(s), nil
}
