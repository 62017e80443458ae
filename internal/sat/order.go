package sat

import (
	"math/rand"

	"github.com/rhartert/yagh"
)

// Order is the activity-ordered variable heap driving VSIDS decisions: a
// max-heap keyed by per-variable activity, with phase saving and a small
// chance of random polarity. Variables that become assigned are lazily
// dropped (Pop skips them); on backtrack they are reinserted by the caller
// via Reinsert.
type Order struct {
	heap *yagh.IntMap[float64]

	activity         []float64
	inc              float64
	decay            float64
	rescaleThreshold float64
	phase            []LBool
	phaseSaving      bool
	randomPhaseProb  float64
	rng              *rand.Rand
}

// NewOrder returns an empty variable order. decay must be in (0, 1);
// rescaleThreshold bounds the magnitude activities are allowed to reach
// before all of them (and the bump increment) are rescaled down together.
func NewOrder(decay float64, rescaleThreshold float64, phaseSaving bool, randomPhaseProb float64, rng *rand.Rand) *Order {
	return &Order{
		heap:             yagh.New[float64](0),
		inc:              1,
		decay:            decay,
		rescaleThreshold: rescaleThreshold,
		phaseSaving:      phaseSaving,
		randomPhaseProb:  randomPhaseProb,
		rng:              rng,
	}
}

// Grow adds one new variable with zero activity and the given initial
// phase, and inserts it into the heap.
func (o *Order) Grow(initPhase LBool) {
	v := len(o.activity)
	o.activity = append(o.activity, 0)
	o.phase = append(o.phase, initPhase)
	o.heap.GrowBy(1)
	o.heap.Put(v, 0)
}

// Bump increases v's activity by the running increment, rescaling every
// variable's activity (and the increment itself) if the bump pushes v past
// the rescale threshold. This is the VSIDS contract: the increment itself
// grows every conflict (via Decay), so recent conflicts dominate without
// any explicit aging pass over variables that were not involved.
func (o *Order) Bump(v int) {
	newScore := o.activity[v] + o.inc
	o.activity[v] = newScore
	if o.heap.Contains(v) {
		o.heap.Put(v, -newScore)
	}
	if newScore > o.rescaleThreshold {
		o.rescale()
	}
}

// Decay grows the bump increment by 1/decay, implementing multiplicative
// decay of past activity bumps relative to future ones.
func (o *Order) Decay() {
	o.inc /= o.decay
	if o.inc > o.rescaleThreshold {
		o.rescale()
	}
}

func (o *Order) rescale() {
	factor := 1e-100
	o.inc *= factor
	for v, a := range o.activity {
		na := a * factor
		o.activity[v] = na
		if o.heap.Contains(v) {
			o.heap.Put(v, -na)
		}
	}
}

// Reinsert restores variable v to the pool of candidates after it is
// unassigned by a backtrack. val is the value v held just before being
// unassigned; with phase saving enabled it becomes v's next default phase.
func (o *Order) Reinsert(v int, val LBool) {
	if o.phaseSaving {
		o.phase[v] = val
	}
	o.heap.Put(v, -o.activity[v])
}

// Select pops and returns the highest-activity variable for which assigned
// reports false, skipping (and discarding) any entries for variables that
// turned out to already be assigned. Returns ok=false only if every
// variable is assigned.
func (o *Order) Select(assigned func(v int) bool) (v int, ok bool) {
	for {
		next, has := o.heap.Pop()
		if !has {
			return 0, false
		}
		if assigned(next.Elem) {
			continue
		}
		return next.Elem, true
	}
}

// Polarity returns the literal decide() should assign true for variable v:
// its saved phase, a random polarity with the configured probability, or
// the positive literal by default.
func (o *Order) Polarity(v int) Literal {
	if o.randomPhaseProb > 0 && o.rng != nil && o.rng.Float64() < o.randomPhaseProb {
		return Lit(v, o.rng.Intn(2) == 1)
	}
	switch o.phase[v] {
	case False:
		return NegativeLiteral(v)
	default:
		return PositiveLiteral(v)
	}
}

// Activity returns v's current raw activity score, mainly for inspection
// and tests.
func (o *Order) Activity(v int) float64 {
	return o.activity[v]
}
