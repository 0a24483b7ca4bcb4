package pipeline

// Aggregator folds per-page fractional progress into a single overall
// percentage, weighting each page equally. The reported percent is an
// integer 0–100 and is monotonically non-decreasing within one invocation:
// engine callbacks arrive in increasing order per page, and crossing a page
// boundary never lowers the displayed value.
type Aggregator struct {
	total     int
	completed int
	percent   int
}

// NewAggregator starts tracking an invocation of totalPages pages. A
// non-positive total is treated as one page.
func NewAggregator(totalPages int) *Aggregator {
	if totalPages < 1 {
		totalPages = 1
	}
	return &Aggregator{total: totalPages}
}

// Update folds the current page's fractional progress (0.0–1.0) into the
// overall percent and returns it.
func (a *Aggregator) Update(fraction float64) int {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	pct := int(100 * (float64(a.completed) + fraction) / float64(a.total))
	if pct > a.percent {
		a.percent = pct
	}
	return a.percent
}

// PageDone marks the current page fully recognized and snaps the percent to
// the exact page boundary, avoiding rounding drift between ticks.
func (a *Aggregator) PageDone() int {
	if a.completed < a.total {
		a.completed++
	}
	pct := 100 * a.completed / a.total
	if pct > a.percent {
		a.percent = pct
	}
	return a.percent
}

// Percent returns the last computed overall percent.
func (a *Aggregator) Percent() int { return a.percent }
