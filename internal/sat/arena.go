package sat

// ClauseRef is an opaque handle into the clause arena, never a raw pointer.
// The zero value, ClauseRefNone, never refers to a live clause.
type ClauseRef int32

// ClauseRefNone is the reserved "no clause" handle.
const ClauseRefNone ClauseRef = 0

type clauseFlags uint8

const (
	flagLearned   clauseFlags = 1 << 0
	flagDeleted   clauseFlags = 1 << 1
	flagProtected clauseFlags = 1 << 2
)

// clauseHeader is the fixed-size metadata kept per clause; the literals
// themselves live in the arena's shared literal buffer so that clauses
// allocated close in time stay adjacent in memory.
type clauseHeader struct {
	start, length int32
	flags         clauseFlags
	lbd           uint32
	activity      float64
}

// Arena is an append-only, bump-allocated store of clauses. A clause is
// never re-allocated: it is either live or tombstoned. Deletion flips a
// flag, not a free, since watch lists and the trail may hold handles across
// a deletion.
type Arena struct {
	headers []clauseHeader
	lits    []Literal
}

// NewArena returns an empty arena. Handle 0 is reserved as "invalid" so the
// header slice starts with one unused sentinel entry.
func NewArena() *Arena {
	return &Arena{headers: make([]clauseHeader, 1)}
}

// Alloc copies lits into the arena and returns a handle stable for the
// arena's lifetime. learned marks the clause as eligible for reduction.
func (a *Arena) Alloc(lits []Literal, learned bool) ClauseRef {
	start := len(a.lits)
	a.lits = append(a.lits, lits...)

	var flags clauseFlags
	if learned {
		flags = flagLearned
	}
	a.headers = append(a.headers, clauseHeader{
		start:  int32(start),
		length: int32(len(lits)),
		flags:  flags,
	})
	return ClauseRef(len(a.headers) - 1)
}

// Literals returns the live literal slice for ref. The slice aliases the
// arena's backing array: callers may swap entries in place (propagation
// relies on this to maintain the two watched slots) but must not retain the
// slice across a later Alloc call, which may grow and relocate the backing
// array.
func (a *Arena) Literals(ref ClauseRef) []Literal {
	h := &a.headers[ref]
	return a.lits[h.start : h.start+h.length]
}

// Len returns the current live length of ref's literal run.
func (a *Arena) Len(ref ClauseRef) int {
	return int(a.headers[ref].length)
}

// Truncate permanently shrinks the live length of ref's literal run to n.
// Used by root-level simplification to drop literals falsified at level 0;
// n must be <= the clause's current length.
func (a *Arena) Truncate(ref ClauseRef, n int) {
	a.headers[ref].length = int32(n)
}

// Learned reports whether ref was created during conflict analysis rather
// than supplied as an original (input) clause.
func (a *Arena) Learned(ref ClauseRef) bool {
	return a.headers[ref].flags&flagLearned != 0
}

// Deleted reports whether ref has been tombstoned.
func (a *Arena) Deleted(ref ClauseRef) bool {
	return a.headers[ref].flags&flagDeleted != 0
}

// Protected reports whether ref is exempt from the next reduction pass.
func (a *Arena) Protected(ref ClauseRef) bool {
	return a.headers[ref].flags&flagProtected != 0
}

// SetProtected sets or clears ref's protection flag.
func (a *Arena) SetProtected(ref ClauseRef, v bool) {
	if v {
		a.headers[ref].flags |= flagProtected
	} else {
		a.headers[ref].flags &^= flagProtected
	}
}

// LBD returns ref's literal block distance, computed when the clause was
// learned. Zero for original clauses.
func (a *Arena) LBD(ref ClauseRef) uint32 {
	return a.headers[ref].lbd
}

// SetLBD updates ref's literal block distance.
func (a *Arena) SetLBD(ref ClauseRef, lbd uint32) {
	a.headers[ref].lbd = lbd
}

// Activity returns ref's clause activity, meaningful only for learned
// clauses.
func (a *Arena) Activity(ref ClauseRef) float64 {
	return a.headers[ref].activity
}

// SetActivity updates ref's clause activity.
func (a *Arena) SetActivity(ref ClauseRef, v float64) {
	a.headers[ref].activity = v
}

// Delete marks ref as a tombstone. Idempotent. The arena bytes are left in
// place; watch lists skip tombstoned clauses lazily during propagation.
func (a *Arena) Delete(ref ClauseRef) {
	a.headers[ref].flags |= flagDeleted
}

// Stats reports the number of live (non-tombstoned) clauses and the total
// number ever allocated.
func (a *Arena) Stats() (used, total int) {
	for i := 1; i < len(a.headers); i++ {
		if a.headers[i].flags&flagDeleted == 0 {
			used++
		}
	}
	return used, len(a.headers) - 1
}

// Reset discards every clause without shrinking the underlying buffers, so
// that a subsequent solve reuses already-grown capacity.
func (a *Arena) Reset() {
	a.headers = a.headers[:1]
	a.lits = a.lits[:0]
}
