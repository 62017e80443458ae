package sat

import "testing"

func TestNewClauseDropsDuplicateLiterals(t *testing.T) {
	s := newTestSolver(3)
	ref, ok := s.newClause(lits(1, 2, 1), false)
	if !ok {
		t.Fatalf("newClause() ok = false")
	}
	if s.arena.Len(ref) != 2 {
		t.Fatalf("Len(ref) = %d, want 2 (duplicate dropped)", s.arena.Len(ref))
	}
}

func TestNewClauseTautologyIsDropped(t *testing.T) {
	s := newTestSolver(3)
	ref, ok := s.newClause(lits(1, -1, 2), false)
	if !ok {
		t.Fatalf("newClause() ok = false, want true (tautology is trivially satisfied)")
	}
	if ref != ClauseRefNone {
		t.Fatalf("ref = %v, want ClauseRefNone for a tautology", ref)
	}
}

func TestNewClauseEmptyIsContradiction(t *testing.T) {
	s := newTestSolver(1)
	ref, ok := s.newClause(nil, false)
	if ok {
		t.Fatalf("newClause(empty) ok = true, want false")
	}
	if ref != ClauseRefNone {
		t.Fatalf("ref = %v, want ClauseRefNone", ref)
	}
}

func TestNewClauseUnitIsAbsorbedIntoTrail(t *testing.T) {
	s := newTestSolver(1)
	ref, ok := s.newClause(lits(1), false)
	if !ok {
		t.Fatalf("newClause(unit) ok = false")
	}
	if ref != ClauseRefNone {
		t.Fatalf("ref = %v, want ClauseRefNone (unit clauses are not stored)", ref)
	}
	if got := s.trail.Value(PositiveLiteral(1)); got != True {
		t.Fatalf("Value(1) = %v, want True", got)
	}
}

func TestNewClauseSimplifiesAgainstRootAssignment(t *testing.T) {
	s := newTestSolver(3)
	s.trail.Enqueue(PositiveLiteral(1), ClauseRefNone)

	// (1 v 2): already satisfied by x1=true.
	ref, ok := s.newClause(lits(1, 2), false)
	if !ok {
		t.Fatalf("newClause() ok = false")
	}
	if ref != ClauseRefNone {
		t.Fatalf("ref = %v, want ClauseRefNone (clause already satisfied at root)", ref)
	}

	// (!1 v 2): !1 is false at root, should be dropped, leaving unit (2).
	ref, ok = s.newClause(lits(-1, 2), false)
	if !ok {
		t.Fatalf("newClause() ok = false")
	}
	if ref != ClauseRefNone {
		t.Fatalf("ref = %v, want ClauseRefNone (reduces to a unit)", ref)
	}
	if got := s.trail.Value(PositiveLiteral(2)); got != True {
		t.Fatalf("Value(2) = %v, want True", got)
	}
}

func TestAttachClauseUsesBinaryIndexForSize2(t *testing.T) {
	s := newTestSolver(2)
	ref, _ := s.newClause(lits(1, 2), false)

	if s.binary.Entries(NegativeLiteral(1)) == nil {
		t.Fatalf("binary index has no entry for !1 after attaching a 2-clause")
	}
	found := false
	for _, e := range s.binary.Entries(NegativeLiteral(1)) {
		if e.clause == ref {
			found = true
		}
	}
	if !found {
		t.Fatalf("binary index entry for !1 does not reference the attached clause")
	}
}

func TestDetachClauseRemovesFromWatches(t *testing.T) {
	s := newTestSolver(3)
	ref, _ := s.newClause(lits(1, 2, 3), false)

	before := s.watches.Len(NegativeLiteral(1))
	s.detachClause(ref)
	after := s.watches.Len(NegativeLiteral(1))
	if after != before-1 {
		t.Fatalf("watches.Len(!1) = %d after detach, want %d", after, before-1)
	}
}
