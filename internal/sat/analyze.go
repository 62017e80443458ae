package sat

// analyze performs 1-UIP conflict analysis over the conflicting clause
// conflict and the current trail, producing a learned clause, the level to
// backjump to, and the learned clause's LBD.
//
// The asserting literal (the negation of the First Unique Implication
// Point) always ends up at position 0. Every other literal in the output is
// copied unmodified from the reason clause it was resolved out of: only the
// 1-UIP itself is ever negated to become the asserting literal. A disclosed
// bug in one historical port of this algorithm negated reason literals too;
// doing so is unsound and must not be replicated.
func (s *Solver) analyze(conflict ClauseRef) (learnt []Literal, backtrackLevel int, lbd uint32) {
	s.seenVar.Clear()
	s.tmpLearnts = append(s.tmpLearnts[:0], LitUndef) // position 0 reserved for the asserting literal.

	nImplicationPoints := 0
	nextTrailPos := s.trail.Len() - 1
	l := LitUndef
	confl := conflict
	currentLevel := s.trail.DecisionLevel()

	for {
		for _, q := range s.explain(confl, l) {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			lvl := s.trail.Level(v)
			if lvl <= 0 {
				continue // root-level facts never need to appear in the learned clause.
			}

			s.seenVar.Add(v)
			s.order.Bump(v)

			if lvl == currentLevel {
				nImplicationPoints++
				continue
			}
			s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
		}

		for {
			l = s.trail.At(nextTrailPos)
			nextTrailPos--
			if s.seenVar.Contains(l.VarID()) {
				break
			}
		}
		confl = s.trail.Reason(l.VarID())

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
	}

	s.tmpLearnts[0] = l.Opposite()

	learnt = s.minimizeLearnt(s.tmpLearnts)
	lbd = s.computeLBD(learnt)

	backtrackLevel = 0
	for _, lit := range learnt[1:] {
		if lvl := s.trail.Level(lit.VarID()); lvl > backtrackLevel {
			backtrackLevel = lvl
		}
	}

	return learnt, backtrackLevel, lbd
}

// explain returns the set of literals that justify l becoming true (or, for
// l == LitUndef, the set that justifies confl's failure): in both cases,
// the negation of the relevant literals of confl, i.e. the assumptions that
// are currently true and forced the result.
func (s *Solver) explain(confl ClauseRef, l Literal) []Literal {
	if l == LitUndef {
		return s.explainFailure(confl, s.tmpExplain)
	}
	return s.explainAssign(confl, s.tmpExplain)
}

// minimizeLearnt applies MiniSat-style recursive self-subsumption
// minimization: a non-asserting literal is dropped if every literal of its
// reason clause is itself already in the learned clause's seen set, is
// redundant by the same recursive test, or sits at decision level 0.
//
// An abstract-levels bitmask (one bit per decision level modulo 64) lets
// litRedundant reject most candidates without recursing: if a reason
// literal's level bit is not present anywhere in the learned clause, that
// reason cannot possibly resolve away, so the whole literal is kept.
func (s *Solver) minimizeLearnt(lits []Literal) []Literal {
	if len(lits) <= 1 {
		return lits
	}

	var abstractLevels uint64
	for _, l := range lits[1:] {
		abstractLevels |= levelBit(s.trail.Level(l.VarID()))
	}

	out := lits[:1]
	for _, l := range lits[1:] {
		if s.trail.Reason(l.VarID()) == ClauseRefNone || !s.litRedundant(l, abstractLevels) {
			out = append(out, l)
		}
	}
	return out
}

func levelBit(level int) uint64 {
	return 1 << (uint(level) & 63)
}

// litRedundant reports whether lit can be dropped from the learned clause
// because every literal of the reason chain rooted at lit is already
// accounted for (seen, at level 0, or itself redundant).
func (s *Solver) litRedundant(lit Literal, abstractLevels uint64) bool {
	s.analyzeStack = append(s.analyzeStack[:0], lit)
	// Variables marked by this call; a failed attempt unmarks them so that
	// seenVar keeps holding only the learned clause and proven-redundant
	// variables.
	var marked []int
	fail := func() bool {
		for _, m := range marked {
			s.seenVar.addedAt[m] = 0
		}
		return false
	}

	for len(s.analyzeStack) > 0 {
		top := s.analyzeStack[len(s.analyzeStack)-1]
		s.analyzeStack = s.analyzeStack[:len(s.analyzeStack)-1]

		reason := s.trail.Reason(top.VarID())
		if reason == ClauseRefNone {
			return fail()
		}

		for _, p := range s.explainAssign(reason, s.tmpExplain2) {
			v := p.VarID()
			if s.seenVar.Contains(v) || s.trail.Level(v) == 0 {
				continue
			}
			if s.trail.Reason(v) == ClauseRefNone || levelBit(s.trail.Level(v))&abstractLevels == 0 {
				return fail()
			}
			s.seenVar.Add(v)
			marked = append(marked, v)
			s.analyzeStack = append(s.analyzeStack, p)
		}
	}
	return true
}

// computeLBD returns the number of distinct decision levels among lits,
// excluding level 0. Binary clauses get LBD 2 by definition.
func (s *Solver) computeLBD(lits []Literal) uint32 {
	if len(lits) == 2 {
		return 2
	}

	s.seenLevel.Clear()
	var count uint32
	for _, l := range lits {
		lvl := s.trail.Level(l.VarID())
		if lvl <= 0 {
			continue
		}
		if !s.seenLevel.Contains(lvl) {
			s.seenLevel.Add(lvl)
			count++
		}
	}
	return count
}
