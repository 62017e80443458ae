package sat

// Watch is a single entry in a literal's watch list: a clause that has the
// watched literal among its first two positions, together with a blocker
// literal drawn from elsewhere in the clause. If the blocker is already true
// under the current assignment, the clause is known satisfied and its body
// never needs to be loaded.
type Watch struct {
	Clause  ClauseRef
	Blocker Literal
}

// WatchIndex holds, for each literal, the watches currently registered on
// it. A live clause of three or more literals appears in exactly two watch
// lists, one for each of its first two literals (negated); two-literal
// clauses live in BinaryIndex instead.
type WatchIndex struct {
	lists [][]Watch
}

// NewWatchIndex returns an empty watch index.
func NewWatchIndex() *WatchIndex {
	return &WatchIndex{}
}

// Resize grows the index in place to cover numLits literals, preserving any
// existing lists.
func (w *WatchIndex) Resize(numLits int) {
	for len(w.lists) < numLits {
		w.lists = append(w.lists, nil)
	}
}

// Add registers clause on lit's watch list with the given blocker. blocker
// must be a literal of clause other than lit.
func (w *WatchIndex) Add(lit Literal, clause ClauseRef, blocker Literal) {
	w.lists[lit] = append(w.lists[lit], Watch{Clause: clause, Blocker: blocker})
}

// Len returns the number of entries currently on lit's watch list.
func (w *WatchIndex) Len(lit Literal) int {
	return len(w.lists[lit])
}

// Take moves lit's current watch list into scratch (reusing its backing
// array) and resets lit's list to empty, returning the moved entries.
// Propagation uses this to snapshot the list it is about to scan, since
// entries may be re-added to the very same list while it is processed.
func (w *WatchIndex) Take(lit Literal, scratch []Watch) []Watch {
	scratch = append(scratch[:0], w.lists[lit]...)
	w.lists[lit] = w.lists[lit][:0]
	return scratch
}

// Requeue appends a single entry back onto lit's watch list.
func (w *WatchIndex) Requeue(lit Literal, entry Watch) {
	w.lists[lit] = append(w.lists[lit], entry)
}

// RequeueRemainder appends every entry in rest onto lit's watch list, used
// when a conflict is found partway through a scan and the untouched tail of
// the snapshot must be put back untouched.
func (w *WatchIndex) RequeueRemainder(lit Literal, rest []Watch) {
	w.lists[lit] = append(w.lists[lit], rest...)
}

// RemoveClause drops ref from the two watch lists it currently occupies,
// identified by the negation of its first two literals. Linear in the size
// of those two lists; used only during reduction.
func (w *WatchIndex) RemoveClause(ref ClauseRef, watch0, watch1 Literal) {
	w.removeFrom(watch0, ref)
	w.removeFrom(watch1, ref)
}

func (w *WatchIndex) removeFrom(lit Literal, ref ClauseRef) {
	list := w.lists[lit]
	j := 0
	for i := range list {
		if list[i].Clause != ref {
			list[j] = list[i]
			j++
		}
	}
	w.lists[lit] = list[:j]
}

// Reset clears every watch list without shrinking the outer slice.
func (w *WatchIndex) Reset() {
	for i := range w.lists {
		w.lists[i] = w.lists[i][:0]
	}
}
