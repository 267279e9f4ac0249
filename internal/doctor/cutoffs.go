package doctor

// Comparator reports whether metric has reached cutoff.
type Comparator func(metric, cutoff float64) bool

// AtLeast is the comparator for metrics where higher is worse and the cutoff
// itself counts as reached.
func AtLeast(metric, cutoff float64) bool { return metric >= cutoff }

// Above is the comparator for metrics where higher is worse and the cutoff
// itself does not count.
func Above(metric, cutoff float64) bool { return metric > cutoff }

// Below is the comparator for metrics where lower is worse.
func Below(metric, cutoff float64) bool { return metric < cutoff }

// Cutoffs maps a continuous metric onto a status.
type Cutoffs struct {
	Warn     float64
	Critical float64
	Compare  Comparator
}

// Classify evaluates the critical cutoff first, then the warn cutoff, and
// otherwise returns StatusOK. A nil comparator behaves as AtLeast.
func (c Cutoffs) Classify(metric float64) Status {
	cmp := c.Compare
	if cmp == nil {
		cmp = AtLeast
	}
	switch {
	case cmp(metric, c.Critical):
		return StatusCritical
	case cmp(metric, c.Warn):
		return StatusWarn
	default:
		return StatusOK
	}
}
