package telemetry

import "testing"

func TestDepthTrackerFirstReach(t *testing.T) {
	dt := NewDepthTracker()

	rec := dt.Observe(1, 40, 48.0, 5)
	if rec == nil {
		t.Fatal("first split to depth 1 should produce a record")
	}
	if rec.Depth != 1 || rec.Tick != 40 || rec.Regions != 5 {
		t.Errorf("unexpected record: %+v", rec)
	}

	if dt.Observe(1, 55, 66.0, 9) != nil {
		t.Error("revisiting depth 1 should not produce a record")
	}

	rec = dt.Observe(2, 60, 72.0, 13)
	if rec == nil {
		t.Fatal("first split to depth 2 should produce a record")
	}
	if rec.Depth != 2 {
		t.Errorf("expected depth 2, got %d", rec.Depth)
	}
}

func TestDepthTrackerRootIsKnown(t *testing.T) {
	dt := NewDepthTracker()

	if dt.Observe(0, 0, 0, 1) != nil {
		t.Error("depth 0 exists from the start and should never record")
	}
	if dt.MaxDepth() != 0 {
		t.Errorf("expected max depth 0 initially, got %d", dt.MaxDepth())
	}
}

func TestDepthTrackerMaxDepth(t *testing.T) {
	dt := NewDepthTracker()

	dt.Observe(1, 10, 12.0, 5)
	dt.Observe(2, 20, 24.0, 9)
	dt.Observe(3, 30, 36.0, 13)

	if dt.MaxDepth() != 3 {
		t.Errorf("expected max depth 3, got %d", dt.MaxDepth())
	}

	records := dt.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.Depth != i+1 {
			t.Errorf("record %d has depth %d, want %d", i, rec.Depth, i+1)
		}
	}
}
