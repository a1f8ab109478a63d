package scores

import (
	"math"
	"testing"

	"readiness-backend/internal/framework"
)

func uniformSet(score int) RatingSet {
	r := make(RatingSet, framework.ItemCount)
	for n := 1; n <= framework.ItemCount; n++ {
		r[n] = score
	}
	return r
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestUniformSetScoresEverythingAtThatValue(t *testing.T) {
	r := uniformSet(4)
	if !r.Complete() {
		t.Fatal("uniform set should be complete")
	}
	if got := OverallScore(r); !almostEqual(got, 4.0) {
		t.Fatalf("overall = %v, want 4.0", got)
	}
	for name, score := range IndicatorScores(r) {
		if !almostEqual(score, 4.0) {
			t.Errorf("indicator %s = %v, want 4.0", name, score)
		}
	}
	for tag, score := range FocusScores(r) {
		if !almostEqual(score, 4.0) {
			t.Errorf("focus %s = %v, want 4.0", tag, score)
		}
	}
}

func TestOverallScoreIsUnweightedMean(t *testing.T) {
	r := make(RatingSet, framework.ItemCount)
	var sum int
	for n := 1; n <= framework.ItemCount; n++ {
		score := (n % framework.MaxRating) + 1
		r[n] = score
		sum += score
	}
	want := float64(sum) / float64(framework.ItemCount)
	if got := OverallScore(r); !almostEqual(got, want) {
		t.Fatalf("overall = %v, want %v", got, want)
	}
	if got := OverallScore(r); got < framework.MinRating || got > framework.MaxRating {
		t.Fatalf("overall %v outside [1,6]", got)
	}
}

func TestOverallScoreEmptySetIsZero(t *testing.T) {
	if got := OverallScore(RatingSet{}); got != 0 {
		t.Fatalf("overall of empty set = %v, want 0", got)
	}
}

func TestZeroSubstitutionKeepsFullDenominator(t *testing.T) {
	// Self-Readiness spans items 1-6; rate only three of them.
	r := RatingSet{1: 6, 2: 6, 3: 6}
	got := IndicatorScores(r)["Self-Readiness"]
	if !almostEqual(got, 3.0) {
		t.Fatalf("Self-Readiness = %v, want 3.0 (18 over the full 6 items)", got)
	}
}

func TestOverallItemsExcludedFromIndicatorMeans(t *testing.T) {
	r := uniformSet(3)
	r[31] = 6
	r[32] = 6
	for name, score := range IndicatorScores(r) {
		if !almostEqual(score, 3.0) {
			t.Errorf("indicator %s = %v, want 3.0 unaffected by overall items", name, score)
		}
	}
	// Confidence focus includes both overall items, so it moves.
	confidence := FocusScores(r)[framework.FocusConfidence]
	if almostEqual(confidence, 3.0) {
		t.Error("confidence focus should reflect the overall items")
	}
}

func TestScoresInvariantUnderInsertionOrder(t *testing.T) {
	forward := make(RatingSet, framework.ItemCount)
	backward := make(RatingSet, framework.ItemCount)
	for n := 1; n <= framework.ItemCount; n++ {
		forward[n] = (n % framework.MaxRating) + 1
	}
	for n := framework.ItemCount; n >= 1; n-- {
		backward[n] = (n % framework.MaxRating) + 1
	}

	fi, bi := IndicatorScores(forward), IndicatorScores(backward)
	for name := range fi {
		if !almostEqual(fi[name], bi[name]) {
			t.Errorf("indicator %s differs across insertion orders", name)
		}
	}
	ff, bf := FocusScores(forward), FocusScores(backward)
	for tag := range ff {
		if !almostEqual(ff[tag], bf[tag]) {
			t.Errorf("focus %s differs across insertion orders", tag)
		}
	}
	if !almostEqual(OverallScore(forward), OverallScore(backward)) {
		t.Error("overall differs across insertion orders")
	}
}

func TestCompleteRejectsPartialAndOutOfRange(t *testing.T) {
	r := uniformSet(4)
	delete(r, 17)
	if r.Complete() {
		t.Error("set missing item 17 reported complete")
	}

	r = uniformSet(4)
	r[5] = 7
	if r.Complete() {
		t.Error("set with out-of-range score reported complete")
	}

	r = uniformSet(4)
	r[5] = 0
	if r.Complete() {
		t.Error("set with zero score reported complete")
	}
}

func TestCompareDeltas(t *testing.T) {
	pre := uniformSet(3)
	post := uniformSet(4)
	c := Compare(pre, post)

	if !almostEqual(c.OverallDelta, 1.0) {
		t.Fatalf("overall delta = %v, want 1.0", c.OverallDelta)
	}
	for name, d := range c.IndicatorDeltas {
		if !almostEqual(d, 1.0) {
			t.Errorf("indicator %s delta = %v, want 1.0", name, d)
		}
	}
	for n, d := range c.ItemDeltas {
		if d != 1 {
			t.Errorf("item %d delta = %d, want 1", n, d)
		}
	}
	if got := FormatDelta(c.OverallDelta); got != "+1.0" {
		t.Fatalf("FormatDelta = %q, want +1.0", got)
	}
}

func TestFormatDelta(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.0, "+1.0"},
		{0.25, "+0.2"},
		{0.0, "0.0"},
		{-0.3, "-0.3"},
	}
	for _, tc := range cases {
		if got := FormatDelta(tc.in); got != tc.want {
			t.Errorf("FormatDelta(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := FormatItemDelta(2); got != "+2" {
		t.Errorf("FormatItemDelta(2) = %q, want +2", got)
	}
	if got := FormatItemDelta(-1); got != "-1" {
		t.Errorf("FormatItemDelta(-1) = %q, want -1", got)
	}
}
