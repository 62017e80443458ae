package sat

import (
	"fmt"
	"time"
)

// Solve runs the search loop to completion (or until a resource limit
// fires) with no assumptions. Equivalent to SolveAssumptions(nil).
func (s *Solver) Solve() Status {
	return s.SolveAssumptions(nil)
}

// SolveAssumptions runs the search loop with assumptions temporarily forced
// true for the duration of this call: each assumption is decided on its own
// decision level ahead of any heap decision (and decided again whenever a
// backjump or restart undoes it), and everything is fully unwound (along
// with every other decision) before this call returns, regardless of
// outcome. Only one assumptions vector is supported per call; there is no
// incremental push/pop API beyond this.
func (s *Solver) SolveAssumptions(assumptions []Literal) Status {
	if s.unsat {
		return Unsat
	}

	start := time.Now()
	s.assumptions = append(s.assumptions[:0], assumptions...)

	status := s.search(start)

	s.trail.CancelUntil(0, func(v int, wasTrue LBool) { s.order.Reinsert(v, wasTrue) })
	s.assumptions = s.assumptions[:0]
	s.TotalTimeSeconds += time.Since(start).Seconds()
	return status
}

// search runs the propagate/analyze/backjump/decide/restart/reduce loop,
// driven entirely off conflict outcomes and the configured resource limits.
func (s *Solver) search(start time.Time) Status {
	conflictsSinceTrace := int64(0)

	for {
		if s.exceededLimits(start) {
			return StatusUnknown
		}

		if conflict := s.propagate(); conflict != ClauseRefNone {
			s.TotalConflicts++
			conflictsSinceTrace++
			if conflictsSinceTrace >= 10000 {
				s.trace(start)
				conflictsSinceTrace = 0
			}

			if s.decisionLevel() == 0 {
				s.unsat = true
				return Unsat
			}

			learnt, backtrackLevel, lbd := s.analyze(conflict)
			if lbd > s.maxLBDSeen {
				s.maxLBDSeen = lbd
			}
			s.restart.onConflict(lbd, s.trail.Len())

			s.trail.CancelUntil(backtrackLevel, func(v int, wasTrue LBool) { s.order.Reinsert(v, wasTrue) })

			ref, ok := s.newClause(learnt, true)
			if !ok {
				s.unsat = true
				return Unsat
			}
			if len(learnt) > 1 {
				// newClause only attaches multi-literal clauses; the
				// asserting literal still needs to be enqueued explicitly.
				// Unit learnt clauses are enqueued by newClause itself.
				s.trail.Enqueue(learnt[0], ref)
			}
			if ref != ClauseRefNone {
				s.arena.SetLBD(ref, lbd)
				s.learnts = append(s.learnts, ref)
				s.TotalLearnedClauses++
			}
			s.TotalMinimizedLits += int64(len(s.tmpLearnts) - len(learnt))

			s.decayClauseActivity()
			s.order.Decay()
			continue
		}

		// No conflict: the trail is a stable fixpoint of propagation.

		if s.decisionLevel() == 0 {
			s.Simplify()
		}

		if len(s.learnts) >= s.reduceLimit {
			s.reduceDB()
		}

		if s.restart.shouldRestart(s.trail.Len()) {
			s.TotalRestarts++
			s.restart.onRestart()
			s.trail.CancelUntil(0, func(v int, wasTrue LBool) { s.order.Reinsert(v, wasTrue) })
			continue
		}

		lit, ok := s.decide()
		if !ok {
			return Sat
		}
		if lit == LitUndef {
			// A queued assumption is already false under the current
			// assignment: unsatisfiable under these assumptions only, not
			// a root-level conflict.
			s.trail.CancelUntil(0, func(v int, wasTrue LBool) { s.order.Reinsert(v, wasTrue) })
			return Unsat
		}

		s.TotalDecisions++
		s.trail.PushDecisionLevel()
		s.trail.Enqueue(lit, ClauseRefNone)
	}
}

// decide picks the next literal to assign. Assumptions come first, in
// order, one per decision level: level i+1 belongs to assumptions[i], so an
// assumption undone by a backjump or restart is decided again before the
// variable heap drives the decision.
// Returns ok=false when every variable is already assigned (search is
// complete) and lit=LitUndef when the next assumption conflicts with the
// current assignment.
func (s *Solver) decide() (lit Literal, ok bool) {
	for s.decisionLevel() < len(s.assumptions) {
		next := s.assumptions[s.decisionLevel()]
		switch s.trail.Value(next) {
		case True:
			// Already forced: open an empty level so that the level
			// numbering still matches the assumption index.
			s.trail.PushDecisionLevel()
		case False:
			return LitUndef, true
		default:
			return next, true
		}
	}

	// Variable 0 is the internally reserved placeholder (see growVariable);
	// it rides in the heap to keep indices aligned with the trail but must
	// never itself be offered as a decision.
	v, ok := s.order.Select(func(v int) bool { return v == 0 || s.trail.VarValue(v) != Unknown })
	if !ok {
		return LitUndef, false
	}
	return s.order.Polarity(v), true
}

// exceededLimits reports whether any configured resource limit (conflict
// count, decision count, wall-clock time, or explicit cancellation) has
// been reached.
func (s *Solver) exceededLimits(start time.Time) bool {
	if s.opts.Cancel != nil && s.opts.Cancel.Load() {
		return true
	}
	if s.opts.MaxConflicts >= 0 && s.TotalConflicts >= s.opts.MaxConflicts {
		return true
	}
	if s.opts.MaxDecisions >= 0 && s.TotalDecisions >= s.opts.MaxDecisions {
		return true
	}
	if s.opts.MaxTime >= 0 && time.Since(start) >= s.opts.MaxTime {
		return true
	}
	return false
}

func (s *Solver) trace(start time.Time) {
	fmt.Fprintf(s.opts.Trace,
		"c %14.3fs %14d %14d %14d %14d\n",
		time.Since(start).Seconds(),
		s.TotalConflicts,
		s.TotalDecisions,
		s.TotalRestarts,
		len(s.learnts))
}
