package core

import (
	"context"
	"errors"
	"testing"
)

func TestNewReportWriteErrorKeepsCause(t *testing.T) {
	err := NewReportWriteError("write workbook", context.Canceled)

	if !IsReportWriteError(err) {
		t.Errorf("expected report write error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected cause to remain in chain, got %v", err)
	}
	if err.Error() != "report write failed: write workbook: context canceled" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestOutOfRangeIsNotFound(t *testing.T) {
	err := NewOutOfRangeError("factor", 4)

	if !IsNotFoundError(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if IsValidationError(err) {
		t.Errorf("out of range must not be a validation error")
	}
}
