package sat

// newClause builds a new clause from tmpLits and attaches it to the
// propagation indexes. learned distinguishes input clauses (which get
// deduplicated, tautology-checked, and simplified against the current
// root-level assignment) from learned clauses (already minimized and
// ordered by analyze, and never re-simplified here).
//
// Returns (ref, ok). ok is false only if the clause is a permanent
// contradiction (the empty clause, or a unit conflicting with the current
// assignment). ref is ClauseRefNone whenever the clause did not need arena
// storage at all: it was absorbed into the trail (unit), or it was found
// to be trivially true and dropped.
func (s *Solver) newClause(tmpLits []Literal, learned bool) (ref ClauseRef, ok bool) {
	size := len(tmpLits)

	if !learned {
		seen := map[Literal]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, dup := seen[tmpLits[i].Opposite()]; dup {
				return ClauseRefNone, true // tautology: always satisfied
			}
			if _, dup := seen[tmpLits[i]]; dup {
				size--
				tmpLits[i], tmpLits[size] = tmpLits[size], tmpLits[i]
				continue
			}
			seen[tmpLits[i]] = struct{}{}

			switch s.trail.Value(tmpLits[i]) {
			case True:
				return ClauseRefNone, true // already satisfied
			case False:
				size--
				tmpLits[i], tmpLits[size] = tmpLits[size], tmpLits[i]
			}
		}
		tmpLits = tmpLits[:size]
	}

	switch size {
	case 0:
		return ClauseRefNone, false
	case 1:
		return ClauseRefNone, s.trail.Enqueue(tmpLits[0], ClauseRefNone)
	default:
		if learned {
			// Place a literal of maximum decision level (other than the
			// asserting literal already at position 0) at position 1, so
			// the clause is immediately ready for watching.
			maxLevel, at := -1, 1
			for i := 1; i < size; i++ {
				if lvl := s.trail.Level(tmpLits[i].VarID()); lvl > maxLevel {
					maxLevel, at = lvl, i
				}
			}
			tmpLits[1], tmpLits[at] = tmpLits[at], tmpLits[1]
		}

		ref := s.arena.Alloc(tmpLits, learned)
		s.attachClause(ref)
		return ref, true
	}
}

// attachClause registers ref with the propagation indexes appropriate to
// its size: the dedicated binary fast path for two-literal clauses, the
// general two-watched-literal scheme otherwise.
func (s *Solver) attachClause(ref ClauseRef) {
	lits := s.arena.Literals(ref)
	if len(lits) == 2 {
		s.binary.Add(ref, lits[0], lits[1])
		return
	}
	s.watches.Add(lits[0].Opposite(), ref, lits[1])
	s.watches.Add(lits[1].Opposite(), ref, lits[0])
}

// detachClause removes ref from whichever propagation index it lives in.
// Used during reduction; propagation itself drops tombstones lazily.
func (s *Solver) detachClause(ref ClauseRef) {
	lits := s.arena.Literals(ref)
	if len(lits) == 2 {
		s.binary.RemoveClause(ref, lits[0], lits[1])
		return
	}
	s.watches.RemoveClause(ref, lits[0].Opposite(), lits[1].Opposite())
}

// clauseLocked reports whether ref is currently the reason for its first
// watched variable's assignment, meaning it must survive reduction: the
// trail's soundness invariant depends on reason clauses never being
// deleted out from under an assignment that still relies on them.
func (s *Solver) clauseLocked(ref ClauseRef) bool {
	lits := s.arena.Literals(ref)
	v := lits[0].VarID()
	return s.trail.Level(v) >= 0 && s.trail.Reason(v) == ref
}

// simplifyClause drops literals that are false at the root level and
// reports whether the clause has become satisfied (in which case the
// caller should delete it instead of keeping the shrunk version). Must
// only be called at decision level 0.
func (s *Solver) simplifyClause(ref ClauseRef) (satisfied bool) {
	lits := s.arena.Literals(ref)
	k := 0
	for _, l := range lits {
		switch s.trail.Value(l) {
		case True:
			return true
		case False:
			// drop
		default:
			lits[k] = l
			k++
		}
	}
	s.arena.Truncate(ref, k)
	return false
}

// explainFailure returns the negation of every literal of ref, used when
// ref is the conflicting clause itself (all of its literals are false).
func (s *Solver) explainFailure(ref ClauseRef, out []Literal) []Literal {
	out = out[:0]
	for _, l := range s.arena.Literals(ref) {
		out = append(out, l.Opposite())
	}
	if s.arena.Learned(ref) {
		s.bumpClauseActivity(ref)
	}
	return out
}

// explainAssign returns the negation of every literal of ref except the
// first, used when ref forced its first literal true.
func (s *Solver) explainAssign(ref ClauseRef, out []Literal) []Literal {
	lits := s.arena.Literals(ref)
	out = out[:0]
	for _, l := range lits[1:] {
		out = append(out, l.Opposite())
	}
	if s.arena.Learned(ref) {
		s.bumpClauseActivity(ref)
	}
	return out
}
