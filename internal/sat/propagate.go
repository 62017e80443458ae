package sat

// propagate advances the trail's propagation head, enqueuing every forced
// literal it can derive via unit propagation (BCP) over the two-watched-
// literal scheme, with a dedicated fast path for binary clauses. It returns
// ClauseRefNone if the frontier is reached with no conflict, or the handle
// of a clause that became empty under the current assignment.
//
// Enqueuing a forced literal never ends the scan of a watch list: a single
// assignment can render several clauses unit at once, and every one of them
// must be enqueued before moving on to the next trail position, or forced
// literals get missed. Only a conflict ends a scan early.
func (s *Solver) propagate() ClauseRef {
	for !s.trail.Frontier() {
		s.TotalPropagations++
		p := s.trail.NextToPropagate()

		for _, e := range s.binary.Entries(p) {
			v := s.trail.Value(e.other)
			if v == True {
				continue
			}
			if v == False {
				return e.clause
			}
			// A reason clause holds its forced literal first (see explainAssign).
			if lits := s.arena.Literals(e.clause); lits[0] != e.other {
				lits[0], lits[1] = lits[1], lits[0]
			}
			s.trail.Enqueue(e.other, e.clause)
		}

		if conflict := s.propagateWatches(p); conflict != ClauseRefNone {
			return conflict
		}
	}
	return ClauseRefNone
}

// propagateWatches scans the (snapshotted) watch list of p, the literal
// just enqueued true, re-homing each clause onto a fresh watched literal
// where possible and enqueuing (or reporting conflict on) clauses that have
// become unit.
func (s *Solver) propagateWatches(p Literal) ClauseRef {
	snapshot := s.watches.Take(p, s.tmpWatchers)
	opp := p.Opposite()

	for i := 0; i < len(snapshot); i++ {
		w := snapshot[i]

		// Step 1: a true blocker proves the clause already satisfied without
		// touching its body.
		if s.trail.Value(w.Blocker) == True {
			s.watches.Requeue(p, w)
			continue
		}

		// Step 2: tombstoned clauses are swap-removed by simply not
		// requeuing them.
		if s.arena.Deleted(w.Clause) {
			continue
		}

		lits := s.arena.Literals(w.Clause)

		// Step 3: make sure the triggering literal sits at position 1, so
		// position 0 is always the candidate for forced assignment.
		if lits[0] == opp {
			lits[0], lits[1] = lits[1], lits[0]
		}
		other := lits[0]

		// Step 4: the other watched literal is already true.
		if s.trail.Value(other) == True {
			s.watches.Requeue(p, Watch{Clause: w.Clause, Blocker: other})
			continue
		}

		// Step 5: look for a replacement watch among the remaining literals.
		replaced := false
		for k := 2; k < len(lits); k++ {
			if s.trail.Value(lits[k]) != False {
				lits[1], lits[k] = lits[k], lits[1]
				s.watches.Add(lits[1].Opposite(), w.Clause, other)
				replaced = true
				break
			}
		}
		if replaced {
			continue
		}

		// Step 6: no replacement exists. The clause still watches p (its
		// literal at position 1 is unchanged), so re-home it there
		// regardless of what happens next.
		s.watches.Requeue(p, Watch{Clause: w.Clause, Blocker: other})

		if s.trail.Value(other) == False {
			s.watches.RequeueRemainder(p, snapshot[i+1:])
			s.tmpWatchers = snapshot
			return w.Clause
		}

		s.trail.Enqueue(other, w.Clause)
	}

	s.tmpWatchers = snapshot
	return ClauseRefNone
}
