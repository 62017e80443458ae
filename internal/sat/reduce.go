package sat

import "sort"

// reduceEntry is a snapshot of a learned clause's quality metrics taken at
// the start of a reduction pass, before any tombstoning invalidates the
// arena's view of it.
type reduceEntry struct {
	ref      ClauseRef
	lbd      uint32
	activity float64
}

// reduceDB evicts the weaker half of the learned-clause database, keeping
// glue clauses (LBD at or below the configured threshold) and any clause
// currently serving as a reason on the trail unconditionally, regardless of
// which half of the sort they land in.
func (s *Solver) reduceDB() {
	s.tmpReduceEntries = s.tmpReduceEntries[:0]
	for _, ref := range s.learnts {
		if s.arena.Deleted(ref) {
			continue
		}
		s.tmpReduceEntries = append(s.tmpReduceEntries, reduceEntry{
			ref:      ref,
			lbd:      s.arena.LBD(ref),
			activity: s.arena.Activity(ref),
		})
	}

	sort.Slice(s.tmpReduceEntries, func(i, j int) bool {
		a, b := s.tmpReduceEntries[i], s.tmpReduceEntries[j]
		if a.lbd != b.lbd {
			return a.lbd < b.lbd
		}
		return a.activity > b.activity
	})

	glueThreshold := uint32(s.opts.GlueLBDThreshold)
	limit := len(s.tmpReduceEntries) / 2

	live := s.learnts[:0]
	for i, e := range s.tmpReduceEntries {
		if i < len(s.tmpReduceEntries)-limit {
			live = append(live, e.ref)
			continue
		}
		if e.lbd <= glueThreshold || s.clauseLocked(e.ref) {
			live = append(live, e.ref)
			continue
		}
		s.detachClause(e.ref)
		s.arena.Delete(e.ref)
		s.TotalDeletedClauses++
	}
	s.learnts = live

	s.reduceLimit += s.reduceLimit * s.opts.ReduceGrowth / 100
}
