package sat

import (
	"io"
	"sync/atomic"
	"time"
)

// Options configures a Solver. The zero Options is not valid; start from
// DefaultOptions and override individual fields.
type Options struct {
	// RestartPolicy selects the restart strategy. Default RestartLuby.
	RestartPolicy RestartPolicyKind
	// LubyBase scales the Luby restart sequence. Default 128.
	LubyBase int
	// GlucoseFastAlpha / GlucoseSlowAlpha are the EMA decay coefficients
	// (closer to 1 = slower moving) for the Glucose restart policy's
	// fast and slow LBD trackers, respectively.
	GlucoseFastAlpha float64
	GlucoseSlowAlpha float64
	// GlucosePostponeTrailSize enables restart postponement when nonzero:
	// a restart is skipped whenever the current trail is longer than the
	// Glucose policy's recent trail-length average, since the search is
	// making progress.
	GlucosePostponeTrailSize int

	// VarActivityDecay is the VSIDS decay in (0, 1). Default ~0.95.
	VarActivityDecay float64
	// VarActivityRescaleThreshold bounds variable activity magnitude.
	// Default 1e100.
	VarActivityRescaleThreshold float64

	// ClauseActivityDecay is the learned-clause activity decay in (0, 1).
	ClauseActivityDecay float64
	// ClauseActivityRescaleThreshold bounds clause activity magnitude.
	ClauseActivityRescaleThreshold float64

	// RandomPhaseProbability is the chance, in [0, 1], that decide() picks
	// a random polarity instead of the saved one. Default ~0.02.
	RandomPhaseProbability float64
	// PhaseSaving enables remembering each variable's last-assigned
	// polarity for reuse on its next decision. Default on.
	PhaseSaving bool

	// ReduceInitialLimit is the learned-clause count that first triggers
	// reduction; ReduceGrowth is the percentage by which that limit grows
	// after each reduction pass.
	ReduceInitialLimit int
	ReduceGrowth       int

	// GlueLBDThreshold is the LBD at or below which a learned clause is
	// considered glue and never evicted. Default 2.
	GlueLBDThreshold int

	// Resource caps. Negative means unlimited.
	MaxConflicts int64
	MaxDecisions int64
	MaxTime      time.Duration

	// Cancel, if non-nil, is polled at conflict/decision boundaries and at
	// the top of each restart; setting it stops the search with Unknown.
	Cancel *atomic.Bool

	// Seed drives the random phase sampler, for deterministic replay.
	Seed int64

	// Trace receives periodic human-readable search-progress lines.
	// Defaults to io.Discard so library use is silent unless a caller
	// opts in.
	Trace io.Writer
}

// DefaultOptions holds reasonable defaults for every tunable this core
// exposes.
var DefaultOptions = Options{
	RestartPolicy:                  RestartLuby,
	LubyBase:                       128,
	GlucoseFastAlpha:               0.98,
	GlucoseSlowAlpha:               0.9998,
	GlucosePostponeTrailSize:       0,
	VarActivityDecay:               0.95,
	VarActivityRescaleThreshold:    1e100,
	ClauseActivityDecay:            0.999,
	ClauseActivityRescaleThreshold: 1e100,
	RandomPhaseProbability:         0.02,
	PhaseSaving:                    true,
	ReduceInitialLimit:             2000,
	ReduceGrowth:                   10,
	GlueLBDThreshold:               2,
	MaxConflicts:                   -1,
	MaxDecisions:                   -1,
	MaxTime:                        -1,
	Seed:                           1,
	Trace:                          io.Discard,
}

// Statistics is a point-in-time snapshot of a Solver's search counters.
type Statistics struct {
	Conflicts         int64
	Decisions         int64
	Propagations      int64
	Restarts          int64
	LearnedClauses    int64
	DeletedClauses    int64
	GlueClauses       int64
	MinimizedLiterals int64
	SubsumedClauses   int64
	MaxLBD            uint32

	// TimeSeconds is the cumulative wall-clock time spent inside Solve
	// and SolveAssumptions across the solver's lifetime (reset by Reset).
	TimeSeconds float64
}
