package quoting

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func testSequencer(t *testing.T, quantities ...string) *Sequencer {
	t.Helper()
	rfq := testRFQ(quantities...)
	items := SeedLineItems(rfq, uuid.New(), dec("10"))
	store, err := NewLineItemStore(rfq, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return NewSequencer(store)
}

func TestSequencerNavigation(t *testing.T) {
	t.Parallel()
	seq := testSequencer(t, "1", "2", "3")

	step, err := seq.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step.Position != 0 || step.TotalItems != 3 {
		t.Fatalf("expected position 0 of 3, got %d of %d", step.Position, step.TotalItems)
	}
	if step.HasPrev {
		t.Fatal("first step reports HasPrev")
	}
	if !step.HasNext {
		t.Fatal("first step of three reports no next")
	}

	if !seq.Next() {
		t.Fatal("Next from 0 of 3 did not move")
	}
	if !seq.Next() {
		t.Fatal("Next from 1 of 3 did not move")
	}

	step, err = seq.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step.Position != 2 || step.HasNext || !step.HasPrev {
		t.Fatalf("last step wrong: %+v", step)
	}

	// past-the-edge moves are no-ops, never errors
	if seq.Next() {
		t.Fatal("Next past the last item moved the cursor")
	}
	if seq.Position() != 2 {
		t.Fatalf("cursor drifted to %d", seq.Position())
	}

	if !seq.Previous() {
		t.Fatal("Previous from 2 did not move")
	}
	seq.Previous()
	if seq.Previous() {
		t.Fatal("Previous before the first item moved the cursor")
	}
	if seq.Position() != 0 {
		t.Fatalf("cursor drifted to %d", seq.Position())
	}
}

func TestSequencerSetPosition(t *testing.T) {
	t.Parallel()
	seq := testSequencer(t, "1", "2", "3")

	if err := seq.SetPosition(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq.Position() != 2 {
		t.Fatalf("position %d after SetPosition(2)", seq.Position())
	}

	for _, pos := range []int{-1, 3, 100} {
		if err := seq.SetPosition(pos); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("SetPosition(%d): expected ErrOutOfBounds, got %v", pos, err)
		}
	}
	if seq.Position() != 2 {
		t.Fatalf("failed SetPosition moved the cursor to %d", seq.Position())
	}
}

func TestSequencerSaveDoesNotMoveCursor(t *testing.T) {
	t.Parallel()
	seq := testSequencer(t, "4", "5")
	seq.Next()

	step, err := seq.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := step.Item
	item.UnitPrice = dec("3.00")

	saved, err := seq.Save(item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved.TotalBeforeDiscount.Equal(dec("15")) {
		t.Fatalf("save did not reprice, before discount %s", saved.TotalBeforeDiscount)
	}
	if seq.Position() != 1 {
		t.Fatalf("save moved the cursor to %d", seq.Position())
	}
}

func TestSequencerFinishIsUnconditional(t *testing.T) {
	t.Parallel()
	seq := testSequencer(t, "1", "2", "3")

	if seq.Finished() {
		t.Fatal("new sequencer reports finished")
	}
	// nothing priced: finishing is still allowed
	seq.Finish()
	if !seq.Finished() {
		t.Fatal("Finish did not mark the sequencer finished")
	}
}
