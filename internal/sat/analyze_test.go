package sat

import "testing"

// TestAnalyzeS4UIPExample matches scenario S4: a standard four-variable
// conflict whose analysis yields a two-literal learned clause, LBD 2, with
// the asserting literal on the conflict level's earliest-assigned variable
// (its decision x3), and backjumping immediately re-forces it.
//
// Trail (built directly rather than through propagate, to pin down exactly
// which clause is the reason for which literal):
//
//	level 1: decide x1=T; propagate x2=T via A=(x2 v !x1)
//	level 2: decide x3=T; propagate x4=T via B=(x4 v !x2 v !x3)
//	conflict C=(!x3 v !x4)
func TestAnalyzeS4UIPExample(t *testing.T) {
	s := newTestSolver(4)

	refA := s.arena.Alloc(lits(2, -1), false)
	refB := s.arena.Alloc(lits(4, -2, -3), false)
	refC := s.arena.Alloc(lits(-3, -4), false)

	s.trail.PushDecisionLevel()
	s.trail.Enqueue(PositiveLiteral(1), ClauseRefNone)
	s.trail.Enqueue(PositiveLiteral(2), refA)

	s.trail.PushDecisionLevel()
	s.trail.Enqueue(PositiveLiteral(3), ClauseRefNone)
	s.trail.Enqueue(PositiveLiteral(4), refB)

	learnt, backtrackLevel, lbd := s.analyze(refC)

	if len(learnt) != 2 {
		t.Fatalf("len(learnt) = %d, want 2; learnt = %v", len(learnt), learnt)
	}
	if learnt[0] != NegativeLiteral(3) {
		t.Fatalf("learnt[0] = %v, want !3 (the asserting literal)", learnt[0])
	}
	if lbd != 2 {
		t.Fatalf("lbd = %d, want 2", lbd)
	}
	if backtrackLevel != 1 {
		t.Fatalf("backtrackLevel = %d, want 1", backtrackLevel)
	}

	s.trail.CancelUntil(backtrackLevel, func(v int, wasTrue LBool) { s.order.Reinsert(v, wasTrue) })
	ref, ok := s.newClause(learnt, true)
	if !ok {
		t.Fatalf("newClause(learnt) ok = false")
	}
	if len(learnt) > 1 {
		s.trail.Enqueue(learnt[0], ref)
	}
	if got := s.trail.Value(NegativeLiteral(3)); got != True {
		t.Fatalf("Value(!3) after re-enqueue = %v, want True (asserting literal forced immediately)", got)
	}
}

// TestAnalyzeResolvesSameLevelChainToDecision builds a conflict whose
// literals all sit on decision level 1 and trace back to the decision x1,
// and checks that the 1-UIP walk resolves x2 and x3 away, leaving the
// single asserting literal !1.
func TestAnalyzeResolvesSameLevelChainToDecision(t *testing.T) {
	s := newTestSolver(3)

	// Reason for x2: (x2 v !x1). Reason for x3: (x3 v !x1 v !x2).
	// Conflict: (!x2 v !x3). The first unique implication point is the
	// decision x1 itself.
	refA := s.arena.Alloc(lits(2, -1), false)
	refB := s.arena.Alloc(lits(3, -1, -2), false)
	refC := s.arena.Alloc(lits(-2, -3), false)

	s.trail.PushDecisionLevel()
	s.trail.Enqueue(PositiveLiteral(1), ClauseRefNone)
	s.trail.Enqueue(PositiveLiteral(2), refA)
	s.trail.Enqueue(PositiveLiteral(3), refB)

	learnt, _, _ := s.analyze(refC)

	for _, l := range learnt {
		if l.VarID() == 2 || l.VarID() == 3 {
			t.Errorf("learnt = %v retains a seen variable that should only appear as the UIP", learnt)
		}
	}
	if len(learnt) != 1 || learnt[0] != NegativeLiteral(1) {
		t.Fatalf("learnt = %v, want [!1] (single decision, everything else resolved away)", learnt)
	}
}

func TestComputeLBDCountsDistinctLevels(t *testing.T) {
	s := newTestSolver(4)
	s.trail.PushDecisionLevel()
	s.trail.Enqueue(PositiveLiteral(1), ClauseRefNone)
	s.trail.PushDecisionLevel()
	s.trail.Enqueue(PositiveLiteral(2), ClauseRefNone)
	s.trail.Enqueue(PositiveLiteral(3), ClauseRefNone) // same level as 2

	got := s.computeLBD([]Literal{NegativeLiteral(1), NegativeLiteral(2), NegativeLiteral(3), PositiveLiteral(4)})
	// Levels: 1 -> 1, 2 -> 2, 3 -> 2, 4 -> unassigned (-1, excluded).
	if got != 2 {
		t.Fatalf("computeLBD() = %d, want 2", got)
	}
}

func TestComputeLBDBinaryClauseIsAlwaysTwo(t *testing.T) {
	s := newTestSolver(2)
	got := s.computeLBD([]Literal{PositiveLiteral(1), PositiveLiteral(2)})
	if got != 2 {
		t.Fatalf("computeLBD() for a binary clause = %d, want 2", got)
	}
}
