package models

import "testing"

func TestStatusSteps(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		step     int
		progress float64
	}{
		{StatusPending, 1, 0.2},
		{StatusConfirmed, 2, 0.4},
		{StatusProcessing, 3, 0.6},
		{StatusShipped, 4, 0.8},
		{StatusDelivered, 5, 1},
		{StatusCancelled, 0, 0},
	}
	for _, tt := range tests {
		if got := tt.status.Step(); got != tt.step {
			t.Fatalf("%s: expected step %d, got %d", tt.status, tt.step, got)
		}
		if got := tt.status.Progress(); got != tt.progress {
			t.Fatalf("%s: expected progress %v, got %v", tt.status, tt.progress, got)
		}
	}
}

func TestUnknownStatus(t *testing.T) {
	unknown := OrderStatus("RETURNED")
	if unknown.Valid() {
		t.Fatal("expected RETURNED to be invalid")
	}
	if unknown.Step() != 0 || unknown.Progress() != 0 {
		t.Fatal("expected unknown status to report zero progress")
	}
}
