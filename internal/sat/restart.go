package sat

// RestartPolicyKind selects which restart strategy a Solver uses. Restart
// policies vary at runtime but only ever take one of these three shapes, so
// they are modeled as a small closed sum (a tagged variant) rather than
// through an interface: the hot loop calls into restartPolicy directly with
// no dynamic dispatch.
type RestartPolicyKind int

const (
	// RestartLuby restarts after intervals following the Luby sequence
	// scaled by a base constant. Default: expected overhead is provably
	// constant-competitive.
	RestartLuby RestartPolicyKind = iota
	// RestartGlucoseEMA restarts when a fast-moving average of learned
	// clause LBD exceeds a slow-moving average. The factor between the two
	// is fixed at 1 and no option changes it.
	RestartGlucoseEMA
	// RestartDisabled never restarts.
	RestartDisabled
)

// restartPolicy is the tagged-variant restart state carried by a Solver.
type restartPolicy struct {
	kind RestartPolicyKind

	// Luby state.
	lubyBase  int64
	lubyIndex int64

	// Glucose-EMA state.
	fast, slow       EMA
	glucoseFactor    float64
	trailAvg         EMA
	postponeEnabled  bool
	warmupConflicts  int64
	observedLearnts  int64

	conflictsThisRun int64
}

func newRestartPolicy(opts Options) *restartPolicy {
	r := &restartPolicy{
		kind:            opts.RestartPolicy,
		lubyBase:        int64(opts.LubyBase),
		fast:            NewEMA(opts.GlucoseFastAlpha),
		slow:            NewEMA(opts.GlucoseSlowAlpha),
		glucoseFactor:   1.0, // fast must merely exceed slow; not configurable.
		trailAvg:        NewEMA(0.95),
		postponeEnabled: opts.GlucosePostponeTrailSize > 0,
		warmupConflicts: 50,
	}
	if r.lubyBase <= 0 {
		r.lubyBase = 1
	}
	return r
}

// lubyFactor returns the i-th term of the Luby sequence (1,1,2,1,1,2,4,...)
// using the standard closed-form doubling/halving recursion, so the policy
// only needs to keep a single running index rather than memoizing the
// sequence.
func lubyFactor(i int64) int64 {
	size, seq := int64(1), int64(0)
	for size < i+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != i {
		size = (size - 1) / 2
		seq--
		i = i % size
	}
	return int64(1) << uint(seq)
}

// onConflict folds a newly learned clause's LBD and the trail length at the
// moment of conflict into the policy's running statistics.
func (r *restartPolicy) onConflict(lbd uint32, trailLen int) {
	r.conflictsThisRun++
	if r.kind != RestartGlucoseEMA {
		return
	}
	r.observedLearnts++
	r.fast.Add(float64(lbd))
	r.slow.Add(float64(lbd))
	r.trailAvg.Add(float64(trailLen))
}

// shouldRestart reports whether the policy wants a restart right now, given
// the current trail length (consulted only by the Glucose postponement
// check).
func (r *restartPolicy) shouldRestart(trailLen int) bool {
	switch r.kind {
	case RestartLuby:
		return r.conflictsThisRun >= r.lubyBase*lubyFactor(r.lubyIndex)
	case RestartGlucoseEMA:
		if r.observedLearnts < r.warmupConflicts {
			return false
		}
		if r.fast.Val() <= r.slow.Val()*r.glucoseFactor {
			return false
		}
		if r.postponeEnabled && float64(trailLen) > r.trailAvg.Val() {
			return false // the search is making progress; let it continue.
		}
		return true
	default:
		return false
	}
}

// onRestart resets the per-run conflict counter and, for Luby, advances to
// the next term of the sequence.
func (r *restartPolicy) onRestart() {
	r.conflictsThisRun = 0
	if r.kind == RestartLuby {
		r.lubyIndex++
	}
}
