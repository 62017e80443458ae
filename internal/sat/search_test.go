package sat

import "testing"

// checkModel verifies that every clause is satisfied by s's current model,
// the soundness property the search loop must never violate on a Sat
// verdict.
func checkModel(t *testing.T, s *Solver, clauses [][]int) {
	t.Helper()
	for _, c := range clauses {
		satisfied := false
		for _, n := range c {
			v := n
			want := true
			if v < 0 {
				v, want = -v, false
			}
			if (s.ModelValue(v) == True) == want {
				satisfied = true
				break
			}
		}
		if !satisfied {
			t.Errorf("clause %v not satisfied by model", c)
		}
	}
}

func TestSearchEmptyFormulaIsSat(t *testing.T) {
	s := newTestSolver(0)
	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
}

func TestSearchSingleEmptyClauseIsUnsat(t *testing.T) {
	s := newTestSolver(1)
	ok, err := s.AddClause(nil)
	if err != nil {
		t.Fatalf("AddClause() error = %v", err)
	}
	if ok {
		t.Fatalf("AddClause(empty) ok = true, want false")
	}
	if got := s.Solve(); got != Unsat {
		t.Fatalf("Solve() = %v, want Unsat", got)
	}
}

func TestSearchSingleUnitClauseForcesLiteral(t *testing.T) {
	s := newTestSolver(1)
	addClauses(s, []int{1})
	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	if s.ModelValue(1) != True {
		t.Fatalf("ModelValue(1) = %v, want True", s.ModelValue(1))
	}
}

func TestSearchContradictoryUnitsAreUnsat(t *testing.T) {
	s := newTestSolver(1)
	addClauses(s, []int{1}, []int{-1})
	if got := s.Solve(); got != Unsat {
		t.Fatalf("Solve() = %v, want Unsat", got)
	}
}

func TestSearchLargeUnitClausePropagates(t *testing.T) {
	const n = 1000
	s := newTestSolver(n)
	lit := make([]int, n)
	for i := 0; i < n; i++ {
		lit[i] = i + 1
	}
	addClauses(s, lit)
	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
}

// TestSearchS1Pigeonhole2 matches scenario S1: two pigeons, two holes.
func TestSearchS1Pigeonhole2(t *testing.T) {
	s := newTestSolver(4)
	clauses := [][]int{
		{1, 2}, {3, 4}, {-1, -3}, {-2, -4},
	}
	addClauses(s, clauses...)

	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	checkModel(t, s, clauses)
}

// TestSearchS2ContradictionChain matches scenario S2: a forced chain of
// implications ending in a root-level conflict, discovered purely by
// propagation with zero decisions.
func TestSearchS2ContradictionChain(t *testing.T) {
	s := newTestSolver(5)
	addClauses(s,
		[]int{1},
		[]int{-1, 2},
		[]int{-2, 3},
		[]int{-3, 4},
		[]int{-4, 5},
		[]int{-5},
	)

	if got := s.Solve(); got != Unsat {
		t.Fatalf("Solve() = %v, want Unsat", got)
	}
	if s.TotalDecisions != 0 {
		t.Errorf("TotalDecisions = %d, want 0 (conflict found by propagation alone)", s.TotalDecisions)
	}
}

// TestSearchS3TwoWatchedExercise matches scenario S3.
func TestSearchS3TwoWatchedExercise(t *testing.T) {
	s := newTestSolver(4)
	clauses := [][]int{
		{1, 2, 3}, {-1, 2, 4}, {-2, -4}, {-3},
	}
	addClauses(s, clauses...)
	addClauses(s, []int{-1})

	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	checkModel(t, s, clauses)
}

// TestSearchS5ReductionSafety runs scenario S5's setting, a very low
// reduction limit, and checks that Solve still reaches a definite verdict
// and that a Sat model assigns every variable. It does not check whether a
// reduction pass ran.
func TestSearchS5ReductionSafety(t *testing.T) {
	opts := DefaultOptions
	opts.ReduceInitialLimit = 4
	opts.ReduceGrowth = 2
	opts.RandomPhaseProbability = 0
	s := NewWithOptions(opts)

	const n = 20
	for i := 0; i < n; i++ {
		s.NewVariable()
	}
	// An implication cycle 1 -> 2 -> ... -> n -> 1 over binary clauses, plus
	// one 3-clause: every variable ends up with the same value.
	for i := 1; i < n; i++ {
		s.AddClause(lits(-i, i+1))
	}
	s.AddClause(lits(-n, 1))
	s.AddClause(lits(1, 2, 3))

	got := s.Solve()
	if got != Sat && got != Unsat {
		t.Fatalf("Solve() = %v, want a definite verdict", got)
	}
	if got == Sat {
		for v := 1; v <= n; v++ {
			if s.ModelValue(v) == Unknown {
				t.Errorf("ModelValue(%d) = Unknown in a reported model", v)
			}
		}
	}
}

// TestSearchS6RestartInvariance matches scenario S6: on a satisfiable
// instance that cannot be solved without conflicts, the Luby policy with
// LubyBase=1 restarts at least once and Solve still returns Sat.
func TestSearchS6RestartInvariance(t *testing.T) {
	opts := DefaultOptions
	opts.RestartPolicy = RestartLuby
	opts.LubyBase = 1
	s := NewWithOptions(opts)

	const n = 15
	for i := 0; i < n; i++ {
		s.NewVariable()
	}
	// Pairs (1,2), (3,4), (5,6) are forced true and pairs (7,8), (9,10),
	// (11,12) forced false, each by three binary clauses that propagation
	// alone does not settle: deciding a pair variable the wrong way
	// conflicts, so no single decision polarity gets through without a
	// conflict. Variables 13 to 15 are free.
	for a := 1; a <= 5; a += 2 {
		s.AddClause(lits(a, a+1))
		s.AddClause(lits(a, -(a + 1)))
		s.AddClause(lits(-a, a+1))
	}
	for a := 7; a <= 11; a += 2 {
		s.AddClause(lits(-a, -(a + 1)))
		s.AddClause(lits(-a, a+1))
		s.AddClause(lits(a, -(a + 1)))
	}

	got := s.Solve()
	if got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	if s.TotalRestarts == 0 {
		t.Errorf("TotalRestarts = 0, want at least one restart with LubyBase=1")
	}
}

func TestSolveIdempotentAfterCompletion(t *testing.T) {
	s := newTestSolver(4)
	addClauses(s, []int{1, 2}, []int{3, 4}, []int{-1, -3}, []int{-1, -4}, []int{-2, -3}, []int{-2, -4})

	first := s.Solve()
	second := s.Solve()
	if first != second {
		t.Fatalf("Solve() second call = %v, want %v (idempotent)", second, first)
	}
}

func TestSolveAssumptionsUnwindsFully(t *testing.T) {
	s := newTestSolver(3)
	addClauses(s, []int{1, 2, 3})

	if got := s.SolveAssumptions(lits(1)); got != Sat {
		t.Fatalf("SolveAssumptions(1) = %v, want Sat", got)
	}
	if got := s.decisionLevel(); got != 0 {
		t.Fatalf("decisionLevel() after SolveAssumptions = %d, want 0", got)
	}

	if got := s.SolveAssumptions(lits(-1, -2, -3)); got != Unsat {
		t.Fatalf("SolveAssumptions(-1,-2,-3) = %v, want Unsat", got)
	}
	// The assumptions-only conflict must not have poisoned the solver for a
	// later call without those assumptions.
	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() after a falsified-assumption call = %v, want Sat", got)
	}
}

func TestResetReplaysOriginalClauses(t *testing.T) {
	s := newTestSolver(4)
	clauses := [][]int{
		{1, 2}, {3, 4}, {-1, -3}, {-1, -4}, {-2, -3}, {-2, -4},
	}
	addClauses(s, clauses...)

	first := s.Solve()
	s.Reset()
	second := s.Solve()

	if first != second {
		t.Fatalf("Solve() after Reset() = %v, want %v", second, first)
	}
	if got := s.NumConstraints(); got != len(clauses) {
		t.Fatalf("NumConstraints() after Reset() = %d, want %d", got, len(clauses))
	}
	if got := s.NumLearnts(); got != 0 {
		t.Fatalf("NumLearnts() after Reset() = %d, want 0", got)
	}
}
