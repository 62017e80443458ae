package sat

import (
	"fmt"
	"math/rand"
)

// Solver is a CDCL SAT solver over a growable set of boolean variables.
// Variable 0 is internally reserved so that ClauseRefNone and "no variable"
// never collide with a live index; callers see a dense 1..NumVariables()
// range.
type Solver struct {
	opts Options

	// Clause database.
	arena       *Arena
	constraints []ClauseRef
	learnts     []ClauseRef
	clauseInc   float64
	reduceLimit int

	// Variable ordering.
	order *Order

	// Propagation indexes and trail.
	watches *WatchIndex
	binary  *BinaryIndex
	trail   *Trail

	// Restart policy.
	restart *restartPolicy

	// Whether the problem has reached a root-level conflict.
	unsat bool

	// Search statistics, exported directly for callers that want raw
	// counters rather than a Statistics snapshot.
	TotalConflicts       int64
	TotalRestarts        int64
	TotalDecisions       int64
	TotalPropagations    int64
	TotalLearnedClauses  int64
	TotalDeletedClauses  int64
	TotalMinimizedLits   int64
	TotalSubsumedClauses int64
	TotalTimeSeconds     float64
	maxLBDSeen           uint32

	rng *rand.Rand

	// Shared by operations that need to put variables (or levels) in a set
	// and empty that set efficiently.
	seenVar   ResetSet
	seenLevel ResetSet

	// Scratch buffers reused across calls to avoid per-call allocation.
	tmpWatchers      []Watch
	tmpLearnts       []Literal
	tmpExplain       []Literal
	tmpExplain2      []Literal
	analyzeStack     []Literal
	tmpReduceEntries []reduceEntry

	// Assumptions of the current SolveAssumptions call; decide() places
	// assumptions[i] on decision level i+1.
	assumptions []Literal
}

// New returns a solver configured with DefaultOptions. Equivalent to
// NewWithOptions(DefaultOptions).
func New() *Solver {
	return NewWithOptions(DefaultOptions)
}

// NewWithOptions returns an empty solver (no variables, no clauses)
// configured with opts.
func NewWithOptions(opts Options) *Solver {
	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}
	s := &Solver{
		opts:      opts,
		arena:     NewArena(),
		watches:   NewWatchIndex(),
		binary:    NewBinaryIndex(),
		trail:     NewTrail(),
		clauseInc: 1,
		rng:       rand.New(rand.NewSource(seed)),
	}
	s.order = NewOrder(opts.VarActivityDecay, opts.VarActivityRescaleThreshold, opts.PhaseSaving, opts.RandomPhaseProbability, s.rng)
	s.restart = newRestartPolicy(opts)
	s.reduceLimit = opts.ReduceInitialLimit

	// Variable 0 is reserved; grow the bookkeeping arrays to cover it so
	// that real variables start at index 1 and nothing needs an offset.
	s.growVariable()

	return s
}

// NumVariables returns the number of variables added so far (not counting
// the internally reserved variable 0).
func (s *Solver) NumVariables() int {
	return s.trail.NumVars() - 1
}

// NumAssigns returns the number of variables currently assigned.
func (s *Solver) NumAssigns() int {
	return s.trail.Len()
}

// NumConstraints returns the number of original (input) clauses currently
// live in the clause database.
func (s *Solver) NumConstraints() int {
	return len(s.constraints)
}

// NumLearnts returns the number of learned clauses currently live in the
// clause database.
func (s *Solver) NumLearnts() int {
	return len(s.learnts)
}

// VarValue returns the current truth value of variable v, or Unknown if it
// is not assigned.
func (s *Solver) VarValue(v int) LBool {
	return s.trail.VarValue(v)
}

// LitValue returns the current truth value of literal l.
func (s *Solver) LitValue(l Literal) LBool {
	return s.trail.Value(l)
}

// ModelValue returns the truth value variable v held in the most recent
// satisfying assignment found by Solve or SolveAssumptions. Only meaningful
// immediately after a Sat result, before any further search call mutates the
// trail. Variables assigned above the root level are unassigned again when
// the search call returns; for those the value is the polarity the trail
// saved while unwinding them.
func (s *Solver) ModelValue(v int) LBool {
	if val := s.trail.VarValue(v); val != Unknown {
		return val
	}
	return s.trail.Phase(v)
}

func (s *Solver) growVariable() {
	s.trail.Grow()
	s.order.Grow(Unknown)
	s.watches.Resize(2 * s.trail.NumVars())
	s.binary.Resize(2 * s.trail.NumVars())
	s.seenVar.Expand()
	s.seenLevel.Expand()
}

// NewVariable allocates a fresh variable and returns its ID. IDs are dense
// and start at 1.
func (s *Solver) NewVariable() int {
	s.growVariable()
	return s.NumVariables()
}

func (s *Solver) decisionLevel() int {
	return s.trail.DecisionLevel()
}

// AddClause adds an input (non-learned) clause over lits, which must only
// reference variables already returned by NewVariable. It may only be
// called at the root decision level.
//
// The returned bool reports whether the clause database remains satisfiable
// as far as this call can tell; once it returns false every subsequent
// Solve call returns Unsat without further search. A non-nil error is
// returned only for a malformed call (out-of-range variable or a clause add
// below the root level); a discovered root-level contradiction is reported
// via the bool, not an error, matching AddClause's teacher precedent.
func (s *Solver) AddClause(lits []Literal) (bool, error) {
	if s.decisionLevel() != 0 {
		return false, fmt.Errorf("sat: AddClause: %w: not at root decision level", ErrInvalidOperation)
	}
	for _, l := range lits {
		if v := l.VarID(); v <= 0 || v > s.NumVariables() {
			return false, fmt.Errorf("sat: AddClause: %w: variable %d out of range", ErrMalformedClause, v)
		}
	}

	if s.unsat {
		return false, nil
	}

	s.tmpLearnts = append(s.tmpLearnts[:0], lits...)
	ref, ok := s.newClause(s.tmpLearnts, false)
	if !ok {
		s.unsat = true
		return false, nil
	}
	if ref != ClauseRefNone {
		s.constraints = append(s.constraints, ref)
	}
	return true, nil
}

// Simplify removes original and learned clauses that are satisfied under
// the current root-level assignment, and permanently truncates the rest
// against root-level falsified literals. Must only be called at the root
// decision level.
func (s *Solver) Simplify() bool {
	if s.decisionLevel() != 0 {
		panic("sat: Simplify called at non-root decision level")
	}
	if s.unsat || s.propagate() != ClauseRefNone {
		s.unsat = true
		return false
	}

	s.constraints = s.simplifySlice(s.constraints)
	s.learnts = s.simplifySlice(s.learnts)
	return true
}

func (s *Solver) simplifySlice(refs []ClauseRef) []ClauseRef {
	j := 0
	for _, ref := range refs {
		if s.arena.Deleted(ref) {
			continue
		}
		wasLong := s.arena.Len(ref) > 2
		if s.simplifyClause(ref) {
			s.detachClause(ref)
			s.arena.Delete(ref)
			continue
		}
		if wasLong && s.arena.Len(ref) == 2 {
			// Shrunk to two literals: move it from the watch index to the
			// binary index. At a root fixpoint neither watched literal is
			// false, so the two survivors are the watched pair.
			lits := s.arena.Literals(ref)
			s.watches.RemoveClause(ref, lits[0].Opposite(), lits[1].Opposite())
			s.binary.Add(ref, lits[0], lits[1])
		}
		refs[j] = ref
		j++
	}
	return refs[:j]
}

// bumpClauseActivity increases ref's activity by the running clause
// increment, rescaling the whole learned-clause database if the bump would
// push ref past the configured threshold.
func (s *Solver) bumpClauseActivity(ref ClauseRef) {
	newScore := s.arena.Activity(ref) + s.clauseInc
	s.arena.SetActivity(ref, newScore)
	if newScore > s.opts.ClauseActivityRescaleThreshold {
		factor := 1e-100
		s.clauseInc *= factor
		for _, l := range s.learnts {
			s.arena.SetActivity(l, s.arena.Activity(l)*factor)
		}
	}
}

// decayClauseActivity grows the clause-activity bump increment, implementing
// multiplicative decay of past bumps relative to future ones.
func (s *Solver) decayClauseActivity() {
	s.clauseInc /= s.opts.ClauseActivityDecay
}

// Reset discards all search state (decisions, learned clauses, the clause
// arena, search statistics) while keeping every variable added so far, then
// replays the original clauses added via AddClause together with the
// root-level assignments (unit clauses and their consequences), leaving the
// solver ready for a fresh Solve call as if just constructed from the same
// NewVariable/AddClause sequence.
func (s *Solver) Reset() {
	original := make([][]Literal, len(s.constraints))
	for i, ref := range s.constraints {
		original[i] = append([]Literal(nil), s.arena.Literals(ref)...)
	}
	wasUnsat := s.unsat
	var rootUnits []Literal
	for i := 0; i < s.trail.Len(); i++ {
		if l := s.trail.At(i); s.trail.Level(l.VarID()) == 0 {
			rootUnits = append(rootUnits, l)
		}
	}

	s.trail.Reset()
	s.watches.Reset()
	s.binary.Reset()
	s.arena.Reset()
	s.constraints = nil
	s.learnts = nil
	s.clauseInc = 1
	s.unsat = false

	s.TotalConflicts = 0
	s.TotalRestarts = 0
	s.TotalDecisions = 0
	s.TotalPropagations = 0
	s.TotalLearnedClauses = 0
	s.TotalDeletedClauses = 0
	s.TotalMinimizedLits = 0
	s.TotalSubsumedClauses = 0
	s.TotalTimeSeconds = 0
	s.maxLBDSeen = 0

	s.restart = newRestartPolicy(s.opts)
	s.reduceLimit = s.opts.ReduceInitialLimit
	s.order = NewOrder(s.opts.VarActivityDecay, s.opts.VarActivityRescaleThreshold, s.opts.PhaseSaving, s.opts.RandomPhaseProbability, s.rng)
	for v := 0; v <= s.NumVariables(); v++ {
		s.order.Grow(Unknown)
	}

	for _, lits := range original {
		ref, ok := s.newClause(lits, false)
		if !ok {
			s.unsat = true
			continue
		}
		if ref != ClauseRefNone {
			s.constraints = append(s.constraints, ref)
		}
	}
	for _, l := range rootUnits {
		s.trail.Enqueue(l, ClauseRefNone)
	}
	if wasUnsat {
		s.unsat = true
	}
}

// Statistics returns a snapshot of the solver's current search counters.
func (s *Solver) Statistics() Statistics {
	return Statistics{
		Conflicts:         s.TotalConflicts,
		Decisions:         s.TotalDecisions,
		Propagations:      s.TotalPropagations,
		Restarts:          s.TotalRestarts,
		LearnedClauses:    s.TotalLearnedClauses,
		DeletedClauses:    s.TotalDeletedClauses,
		GlueClauses:       s.countGlueClauses(),
		MinimizedLiterals: s.TotalMinimizedLits,
		SubsumedClauses:   s.TotalSubsumedClauses,
		MaxLBD:            s.maxLBDSeen,
		TimeSeconds:       s.TotalTimeSeconds,
	}
}

func (s *Solver) countGlueClauses() int64 {
	var n int64
	threshold := uint32(s.opts.GlueLBDThreshold)
	for _, ref := range s.learnts {
		if s.arena.LBD(ref) <= threshold {
			n++
		}
	}
	return n
}
