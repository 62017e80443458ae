package sat

// EMA is an exponential moving average. It backs the Glucose restart
// policy's fast/slow LBD trackers and its trail-length postponement signal.
type EMA struct {
	decay float64
	value float64
	init  bool
}

// NewEMA returns a zero-valued EMA with the given decay in (0, 1). Larger
// decay weighs history more heavily; smaller decay reacts faster to recent
// samples.
func NewEMA(decay float64) EMA {
	return EMA{decay: decay}
}

// Add folds x into the average.
func (e *EMA) Add(x float64) {
	if !e.init {
		e.init = true
		e.value = x
		return
	}
	e.value = e.decay*e.value + x*(1-e.decay)
}

// Val returns the current average.
func (e *EMA) Val() float64 {
	return e.value
}
