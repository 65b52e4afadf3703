package persister

import (
	"testing"

	"github.com/marcus/meeple/internal/models"
)

func TestFindCandidateByCollectionID(t *testing.T) {
	store := newTestStore(t)
	rowID := store.insertRow(t, 13, 5871, models.DirtyStamps{Rating: 77}, nil)

	c, err := findCandidate(store, 5871, 13)
	if err != nil {
		t.Fatalf("findCandidate: %v", err)
	}
	if !c.found {
		t.Fatal("candidate not found")
	}
	if c.internalID != rowID {
		t.Errorf("internal ID: got %d, want %d", c.internalID, rowID)
	}
	if c.dirty.Rating != 77 {
		t.Errorf("rating dirty stamp: got %d, want 77", c.dirty.Rating)
	}
}

func TestFindCandidateNotFound(t *testing.T) {
	store := newTestStore(t)

	c, err := findCandidate(store, 5871, 13)
	if err != nil {
		t.Fatalf("findCandidate: %v", err)
	}
	if c.found {
		t.Error("expected not-found candidate")
	}
	if c.dirty.Any() {
		t.Error("not-found candidate must report clean stamps")
	}
}

func TestFindCandidateWithoutCollectionID(t *testing.T) {
	store := newTestStore(t)
	store.insertRow(t, 13, 4000, models.DirtyStamps{}, nil) // has server ID, must not match
	rowID := store.insertRow(t, 13, 0, models.DirtyStamps{}, nil)

	c, err := findCandidate(store, models.InvalidID, 13)
	if err != nil {
		t.Fatalf("findCandidate: %v", err)
	}
	if !c.found || c.internalID != rowID {
		t.Errorf("expected ID-less row %d, got found=%v id=%d", rowID, c.found, c.internalID)
	}
}

func TestFindCandidateFallsBackToGameID(t *testing.T) {
	store := newTestStore(t)
	rowID := store.insertRow(t, 13, 0, models.DirtyStamps{Whole: 5}, nil)

	// server-assigned ID unknown locally: fall back to the ID-less row
	c, err := findCandidate(store, 5871, 13)
	if err != nil {
		t.Fatalf("findCandidate: %v", err)
	}
	if !c.found || c.internalID != rowID {
		t.Errorf("fallback missed row %d: found=%v id=%d", rowID, c.found, c.internalID)
	}
	if c.dirty.Whole != 5 {
		t.Errorf("whole dirty stamp: got %d, want 5", c.dirty.Whole)
	}
}

func TestFindCandidatePrefersExactMatch(t *testing.T) {
	store := newTestStore(t)
	store.insertRow(t, 13, 0, models.DirtyStamps{}, nil)
	exact := store.insertRow(t, 13, 5871, models.DirtyStamps{}, nil)

	c, err := findCandidate(store, 5871, 13)
	if err != nil {
		t.Fatalf("findCandidate: %v", err)
	}
	if c.internalID != exact {
		t.Errorf("expected exact match %d, got %d", exact, c.internalID)
	}
}
