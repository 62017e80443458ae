package sat

// lits converts a list of DIMACS-style integers (positive = that variable
// true, negative = that variable false) into Literals, the same convention
// internal/dimacs uses when loading a CNF file.
func lits(ints ...int) []Literal {
	out := make([]Literal, len(ints))
	for i, n := range ints {
		if n < 0 {
			out[i] = NegativeLiteral(-n)
		} else {
			out[i] = PositiveLiteral(n)
		}
	}
	return out
}

// newTestSolver returns a solver with numVars variables and deterministic
// options (no random phase selection), ready for AddClause calls.
func newTestSolver(numVars int) *Solver {
	opts := DefaultOptions
	opts.RandomPhaseProbability = 0
	opts.Seed = 1
	s := NewWithOptions(opts)
	for i := 0; i < numVars; i++ {
		s.NewVariable()
	}
	return s
}

// addClauses adds each clause (in the same int convention as lits) to s in
// order.
func addClauses(s *Solver, clauses ...[]int) {
	for _, c := range clauses {
		s.AddClause(lits(c...))
	}
}
