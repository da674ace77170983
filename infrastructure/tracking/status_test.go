package tracking_test

import (
	"testing"

	"github.com/synthome/stitch/infrastructure/tracking"
)

func TestStatus_Progression(t *testing.T) {
	status := tracking.NewStatus("run-1", 4)

	if status.State() != tracking.StateRunning {
		t.Fatalf("new status state = %s, want running", status.State())
	}
	if status.Done() != 0 {
		t.Fatalf("new status done = %d, want 0", status.Done())
	}
	if status.CompletionPercent() != 0 {
		t.Fatalf("new status percent = %v, want 0", status.CompletionPercent())
	}

	status = status.RecordBuilt("HS2-abutting")
	status = status.RecordBuilt("HS2-distal")
	status = status.RecordFailed("EC100-320x")

	if status.Built() != 2 {
		t.Errorf("Built() = %d, want 2", status.Built())
	}
	if status.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", status.Failed())
	}
	if status.Done() != 3 {
		t.Errorf("Done() = %d, want 3", status.Done())
	}
	if status.Current() != "EC100-320x" {
		t.Errorf("Current() = %q, want EC100-320x", status.Current())
	}
	if status.CompletionPercent() != 75 {
		t.Errorf("CompletionPercent() = %v, want 75", status.CompletionPercent())
	}

	status = status.RecordBuilt("filler-only").Complete()
	if status.State() != tracking.StateCompleted {
		t.Errorf("State() = %s, want completed", status.State())
	}
	if !status.State().IsTerminal() {
		t.Error("completed state should be terminal")
	}
	if status.CompletionPercent() != 100 {
		t.Errorf("CompletionPercent() = %v, want 100", status.CompletionPercent())
	}
}

func TestStatus_Fail(t *testing.T) {
	status := tracking.NewStatus("run-1", 10).Fail("catalog write failed")

	if status.State() != tracking.StateFailed {
		t.Errorf("State() = %s, want failed", status.State())
	}
	if !status.State().IsTerminal() {
		t.Error("failed state should be terminal")
	}
	if status.Error() != "catalog write failed" {
		t.Errorf("Error() = %q, want reason", status.Error())
	}
}

func TestStatus_TransitionsReturnCopies(t *testing.T) {
	base := tracking.NewStatus("run-1", 10)
	modified := base.RecordBuilt("construct-1")

	if base.Built() != 0 {
		t.Errorf("base Built() = %d, want 0 after copy transition", base.Built())
	}
	if modified.Built() != 1 {
		t.Errorf("modified Built() = %d, want 1", modified.Built())
	}
	if base.State() != tracking.StateRunning {
		t.Errorf("base State() = %s, want running", base.State())
	}
}

func TestStatus_CompletionPercentZeroTotal(t *testing.T) {
	status := tracking.NewStatus("run-1", 0)

	if status.CompletionPercent() != 0 {
		t.Errorf("CompletionPercent() = %v, want 0 for empty batch", status.CompletionPercent())
	}
}

func TestState_IsTerminal(t *testing.T) {
	if tracking.StateRunning.IsTerminal() {
		t.Error("running should not be terminal")
	}
	if !tracking.StateCompleted.IsTerminal() {
		t.Error("completed should be terminal")
	}
	if !tracking.StateFailed.IsTerminal() {
		t.Error("failed should be terminal")
	}
}
