package sat

// binWatch is a single entry in the binary-clause adjacency list: clause is
// a two-literal clause, and other is its literal besides the one that keys
// this list.
type binWatch struct {
	other  Literal
	clause ClauseRef
}

// BinaryIndex is a dedicated fast path for two-literal clauses, kept
// outside the generic watch scan. A binary clause never needs its watched
// literals swapped (there is nothing to swap them for), so keying directly
// on the triggering literal and reading off the other literal avoids
// touching the arena at all in the common case.
type BinaryIndex struct {
	lists [][]binWatch
}

// NewBinaryIndex returns an empty binary-clause index.
func NewBinaryIndex() *BinaryIndex {
	return &BinaryIndex{}
}

// Resize grows the index in place to cover numLits literals.
func (b *BinaryIndex) Resize(numLits int) {
	for len(b.lists) < numLits {
		b.lists = append(b.lists, nil)
	}
}

// Add registers a binary clause {p, q}. The clause fires on p (triggering
// q) and on q (triggering p), using the same "keyed by the literal whose
// assignment triggers the check" convention as WatchIndex.
func (b *BinaryIndex) Add(ref ClauseRef, p, q Literal) {
	b.lists[p.Opposite()] = append(b.lists[p.Opposite()], binWatch{other: q, clause: ref})
	b.lists[q.Opposite()] = append(b.lists[q.Opposite()], binWatch{other: p, clause: ref})
}

// RemoveClause drops ref from the adjacency lists of both of its literals.
func (b *BinaryIndex) RemoveClause(ref ClauseRef, p, q Literal) {
	b.removeFrom(p.Opposite(), ref)
	b.removeFrom(q.Opposite(), ref)
}

func (b *BinaryIndex) removeFrom(lit Literal, ref ClauseRef) {
	list := b.lists[lit]
	j := 0
	for i := range list {
		if list[i].clause != ref {
			list[j] = list[i]
			j++
		}
	}
	b.lists[lit] = list[:j]
}

// Entries returns the adjacency list triggered when lit is enqueued true.
func (b *BinaryIndex) Entries(lit Literal) []binWatch {
	return b.lists[lit]
}

// Reset clears every adjacency list without shrinking the outer slice.
func (b *BinaryIndex) Reset() {
	for i := range b.lists {
		b.lists[i] = b.lists[i][:0]
	}
}
