package sat

import "testing"

func TestReduceDBKeepsLockedClauses(t *testing.T) {
	s := newTestSolver(6)
	opts := s.opts
	opts.GlueLBDThreshold = 0 // nothing is glue; only locked clauses must survive.
	s.opts = opts

	// Two learned clauses, both high LBD (not glue). One is the current
	// reason for a trail variable, the other is not.
	lockedRef, ok := s.newClause(lits(1, 2, 3), true)
	if !ok {
		t.Fatalf("newClause(locked) ok = false")
	}
	s.arena.SetLBD(lockedRef, 5)
	s.learnts = append(s.learnts, lockedRef)

	freeRef, ok := s.newClause(lits(4, 5, 6), true)
	if !ok {
		t.Fatalf("newClause(free) ok = false")
	}
	s.arena.SetLBD(freeRef, 5)
	s.learnts = append(s.learnts, freeRef)

	// Make lockedRef the reason for variable 1's assignment.
	s.trail.Enqueue(PositiveLiteral(1), lockedRef)

	s.reduceDB()

	foundLocked, foundFree := false, false
	for _, ref := range s.learnts {
		if ref == lockedRef {
			foundLocked = true
		}
		if ref == freeRef {
			foundFree = true
		}
	}
	if !foundLocked {
		t.Errorf("reduceDB() evicted a clause that is a live trail reason")
	}
	if s.arena.Deleted(lockedRef) {
		t.Errorf("reduceDB() tombstoned a clause that is a live trail reason")
	}
	_ = foundFree // the free clause's fate depends on sort order; not asserted.
}

func TestReduceDBKeepsGlueClauses(t *testing.T) {
	s := newTestSolver(6)
	opts := s.opts
	opts.GlueLBDThreshold = 2
	s.opts = opts

	glueRef, ok := s.newClause(lits(1, 2, 3), true)
	if !ok {
		t.Fatalf("newClause(glue) ok = false")
	}
	s.arena.SetLBD(glueRef, 2)
	s.learnts = append(s.learnts, glueRef)

	// Pad with enough non-glue, non-locked clauses that half of the
	// database is evicted; the glue clause sorts ahead of the padding.
	for i := 0; i < 8; i++ {
		ref, ok := s.newClause(lits(4, 5, 6), true)
		if !ok {
			t.Fatalf("newClause(padding) ok = false")
		}
		s.arena.SetLBD(ref, 9)
		s.learnts = append(s.learnts, ref)
	}

	s.reduceDB()

	for _, ref := range s.learnts {
		if ref == glueRef {
			if s.arena.Deleted(glueRef) {
				t.Fatalf("glue clause was tombstoned despite surviving in s.learnts")
			}
			return
		}
	}
	t.Fatalf("reduceDB() evicted a glue clause (LBD <= threshold)")
}

func TestReduceDBGrowsLimit(t *testing.T) {
	s := newTestSolver(3)
	before := s.reduceLimit
	s.reduceDB()
	if s.reduceLimit != before+before*s.opts.ReduceGrowth/100 {
		t.Fatalf("reduceLimit = %d, want %d", s.reduceLimit, before+before*s.opts.ReduceGrowth/100)
	}
}
