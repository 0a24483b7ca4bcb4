package pipeline

import "testing"

func TestAggregatorSinglePage(t *testing.T) {
	a := NewAggregator(1)
	// Single-image input: overall percent tracks the engine's native
	// fraction directly.
	for _, tc := range []struct {
		fraction float64
		want     int
	}{
		{0, 0},
		{0.1, 10},
		{0.55, 55},
		{0.999, 99},
		{1, 100},
	} {
		if got := a.Update(tc.fraction); got != tc.want {
			t.Fatalf("Update(%v) = %d, want %d", tc.fraction, got, tc.want)
		}
	}
	if got := a.PageDone(); got != 100 {
		t.Fatalf("PageDone() = %d, want 100", got)
	}
}

func TestAggregatorMultiPageBoundaries(t *testing.T) {
	a := NewAggregator(3)
	if got := a.Update(1); got != 33 {
		t.Fatalf("page 1 complete = %d, want 33", got)
	}
	if got := a.PageDone(); got != 33 {
		t.Fatalf("PageDone() = %d, want 33", got)
	}
	if got := a.Update(0.5); got != 50 {
		t.Fatalf("page 2 halfway = %d, want 50", got)
	}
	if got := a.PageDone(); got != 66 {
		t.Fatalf("PageDone() = %d, want 66", got)
	}
	if got := a.PageDone(); got != 100 {
		t.Fatalf("PageDone() = %d, want 100", got)
	}
}

func TestAggregatorMonotonic(t *testing.T) {
	a := NewAggregator(4)
	last := 0
	feed := []float64{0, 0.2, 0.9, 1, 0, 0.1, 0.5, 1, 0, 1, 0, 0.3, 1}
	pageEnds := map[int]bool{3: true, 7: true, 9: true, 12: true}
	for i, f := range feed {
		got := a.Update(f)
		if got < last {
			t.Fatalf("percent decreased at tick %d: %d -> %d", i, last, got)
		}
		last = got
		if pageEnds[i] {
			got = a.PageDone()
			if got < last {
				t.Fatalf("percent decreased at boundary %d: %d -> %d", i, last, got)
			}
			last = got
		}
	}
	if last != 100 {
		t.Fatalf("final percent = %d, want 100", last)
	}
}

func TestAggregatorClampsFractions(t *testing.T) {
	a := NewAggregator(2)
	if got := a.Update(-0.5); got != 0 {
		t.Fatalf("Update(-0.5) = %d, want 0", got)
	}
	if got := a.Update(1.5); got != 50 {
		t.Fatalf("Update(1.5) = %d, want 50", got)
	}
}

func TestAggregatorReachesHundredOnlyAtEnd(t *testing.T) {
	a := NewAggregator(2)
	if got := a.Update(1); got >= 100 {
		t.Fatalf("percent hit %d before the last page completed", got)
	}
	a.PageDone()
	if got := a.Update(0.99); got >= 100 {
		t.Fatalf("percent hit %d before the last page completed", got)
	}
	if got := a.PageDone(); got != 100 {
		t.Fatalf("final PageDone() = %d, want 100", got)
	}
}

func TestAggregatorZeroTotal(t *testing.T) {
	a := NewAggregator(0)
	if got := a.Update(1); got != 100 {
		t.Fatalf("Update(1) with clamped total = %d, want 100", got)
	}
}
