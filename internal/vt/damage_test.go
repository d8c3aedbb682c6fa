package vt

import "testing"

func TestDamageTrackerRows(t *testing.T) {
	d := NewDamageTracker(10, 4)
	// Fresh trackers report full damage once.
	st := d.Consume()
	if !st.Full {
		t.Fatalf("expected full damage after resize")
	}

	d.MarkRow(1)
	d.MarkRow(3)
	d.MarkRow(99) // ignored
	st = d.Consume()
	if st.Full {
		t.Fatalf("unexpected full damage")
	}
	if len(st.DirtyRows) != 2 || st.DirtyRows[0] != 1 || st.DirtyRows[1] != 3 {
		t.Fatalf("dirty rows = %v", st.DirtyRows)
	}

	// Consume resets.
	st = d.Consume()
	if st.Full || len(st.DirtyRows) != 0 {
		t.Fatalf("tracker not reset: %+v", st)
	}
}

func TestDamageTrackerScrollShiftsRows(t *testing.T) {
	d := NewDamageTracker(10, 4)
	d.Consume()

	d.MarkRow(2)
	d.MarkScroll(-1) // content moved up one row
	st := d.Consume()
	if st.ScrollDy != -1 {
		t.Fatalf("scrollDy = %d", st.ScrollDy)
	}
	// Row 2 shifted to row 1; the exposed bottom row is dirty too.
	if len(st.DirtyRows) != 2 || st.DirtyRows[0] != 1 || st.DirtyRows[1] != 3 {
		t.Fatalf("dirty rows = %v", st.DirtyRows)
	}
}

func TestDamageTrackerScrollOverflowGoesFull(t *testing.T) {
	d := NewDamageTracker(10, 4)
	d.Consume()
	d.MarkScroll(-4)
	st := d.Consume()
	if !st.Full || st.ScrollDy != 0 {
		t.Fatalf("expected full damage, got %+v", st)
	}
}

func TestEmulatorDamageIntegration(t *testing.T) {
	e := NewEmulator(10, 4)
	e.Damage().Consume()

	feed(t, e, "\x1b[2;1Hhello")
	st := e.Damage().Consume()
	if st.Full {
		t.Fatalf("unexpected full damage")
	}
	if len(st.DirtyRows) != 1 || st.DirtyRows[0] != 1 {
		t.Fatalf("dirty rows = %v", st.DirtyRows)
	}

	e.Resize(20, 4)
	st = e.Damage().Consume()
	if !st.Full {
		t.Fatalf("expected full damage after resize")
	}
}
