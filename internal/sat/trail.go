package sat

// Trail records, for every variable, whether and how it became assigned, and
// keeps the order in which assignments happened. It is the sole source of
// truth for "what do we currently believe" and for the order in which that
// belief was built up, which is what makes the 1-UIP walk in analyze.go
// well-defined (reasons only ever cite literals assigned earlier).
type Trail struct {
	// Per-literal truth value (two entries per variable: 2v, 2v+1).
	assigns []LBool

	// Per-variable metadata.
	level  []int32     // decision level the variable was assigned at, -1 if unassigned.
	reason []ClauseRef // ClauseRefNone means "decision" (or "unassigned").
	phase  []LBool     // last-seen polarity, for phase saving.

	// Assignment order and decision-level boundaries.
	lits []Literal // literals in the order they were assigned.
	lim  []int32   // trail length recorded at each decision.
	head int       // index of the next trail position to propagate from.
}

// NewTrail returns an empty trail.
func NewTrail() *Trail {
	return &Trail{}
}

// Grow adds bookkeeping slots for one new variable.
func (t *Trail) Grow() {
	t.assigns = append(t.assigns, Unknown, Unknown)
	t.level = append(t.level, -1)
	t.reason = append(t.reason, ClauseRefNone)
	t.phase = append(t.phase, Unknown)
}

// NumVars returns the number of variables the trail is tracking.
func (t *Trail) NumVars() int {
	return len(t.level)
}

// Value returns the current truth value of a literal.
func (t *Trail) Value(l Literal) LBool {
	return t.assigns[l]
}

// VarValue returns the current truth value of a variable (as if queried via
// its positive literal).
func (t *Trail) VarValue(v int) LBool {
	return t.assigns[PositiveLiteral(v)]
}

// DecisionLevel returns the current decision level; 0 is the root.
func (t *Trail) DecisionLevel() int {
	return len(t.lim)
}

// Level returns the decision level at which variable v was assigned, or -1
// if it is currently unassigned.
func (t *Trail) Level(v int) int {
	return int(t.level[v])
}

// Reason returns the reason clause for variable v's assignment, or
// ClauseRefNone if v was assigned by a decision (or is unassigned).
func (t *Trail) Reason(v int) ClauseRef {
	return t.reason[v]
}

// IsDecision reports whether the (assumed assigned) variable v was assigned
// directly by the decision heuristic rather than forced by propagation.
func (t *Trail) IsDecision(v int) bool {
	return t.reason[v] == ClauseRefNone
}

// Phase returns the saved polarity of variable v.
func (t *Trail) Phase(v int) LBool {
	return t.phase[v]
}

// Len returns the number of literals currently on the trail.
func (t *Trail) Len() int {
	return len(t.lits)
}

// At returns the literal assigned at trail position i.
func (t *Trail) At(i int) Literal {
	return t.lits[i]
}

// Head returns the propagation head: the index of the next trail position
// BCP has not yet propagated from.
func (t *Trail) Head() int {
	return t.head
}

// Frontier reports whether the propagation head has caught up with the
// trail (no pending literals to propagate from).
func (t *Trail) Frontier() bool {
	return t.head >= len(t.lits)
}

// NextToPropagate returns the next literal to propagate from and advances
// the head. Must only be called when Frontier() is false.
func (t *Trail) NextToPropagate() Literal {
	l := t.lits[t.head]
	t.head++
	return l
}

// Enqueue assigns l true with the given reason, appending it to the trail.
// Returns false if l is already false under the current assignment
// (conflicting), true otherwise (including when l was already true).
func (t *Trail) Enqueue(l Literal, reason ClauseRef) bool {
	switch t.assigns[l] {
	case False:
		return false
	case True:
		return true
	default:
		v := l.VarID()
		t.assigns[l] = True
		t.assigns[l.Opposite()] = False
		t.level[v] = int32(t.DecisionLevel())
		t.reason[v] = reason
		t.lits = append(t.lits, l)
		return true
	}
}

// PushDecisionLevel opens a new decision level at the current trail length.
func (t *Trail) PushDecisionLevel() {
	t.lim = append(t.lim, int32(len(t.lits)))
}

// LevelStart returns the trail length recorded when decision level
// (1-indexed relative to the lim slice) was opened.
func (t *Trail) LevelStart(level int) int {
	return int(t.lim[level-1])
}

// CancelUntil truncates the trail back to the given decision level,
// unassigning every popped variable, restoring its saved polarity, and
// clamping the propagation head. onUndo, if non-nil, is invoked once per
// undone variable (with the value it held) so callers such as the decision
// heap can reinsert it.
func (t *Trail) CancelUntil(level int, onUndo func(v int, wasTrue LBool)) {
	for t.DecisionLevel() > level {
		start := t.lim[len(t.lim)-1]
		for i := len(t.lits) - 1; i >= int(start); i-- {
			lit := t.lits[i]
			v := lit.VarID()
			wasTrue := t.assigns[PositiveLiteral(v)]
			t.phase[v] = wasTrue
			t.assigns[lit] = Unknown
			t.assigns[lit.Opposite()] = Unknown
			t.reason[v] = ClauseRefNone
			t.level[v] = -1
			if onUndo != nil {
				onUndo(v, wasTrue)
			}
		}
		t.lits = t.lits[:start]
		t.lim = t.lim[:len(t.lim)-1]
	}
	if t.head > len(t.lits) {
		t.head = len(t.lits)
	}
}

// Reset empties the trail entirely (back to decision level 0, no
// assignments) without shrinking the underlying variable-indexed arrays'
// length semantics beyond clearing their values.
func (t *Trail) Reset() {
	for v := range t.level {
		t.level[v] = -1
		t.reason[v] = ClauseRefNone
		t.phase[v] = Unknown
	}
	for i := range t.assigns {
		t.assigns[i] = Unknown
	}
	t.lits = t.lits[:0]
	t.lim = t.lim[:0]
	t.head = 0
}
