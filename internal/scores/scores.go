// Package scores turns raw item ratings into indicator, focus and overall
// means. Every function here is a pure function of its input: no state, no
// side effects, no dependence on map iteration order.
//
// Missing items use zero-substitution: an absent item contributes 0 to the
// numerator while the denominator stays at the group's full item count. This
// silently lowers the mean for incomplete data instead of erroring; callers
// gate on RatingSet.Complete before treating a profile as meaningful.
package scores

import (
	"fmt"

	"readiness-backend/internal/framework"
)

// RatingSet maps item number (1-32) to its integer score in [1,6]. One
// rating set is produced per completed assessment stage and is immutable
// after submission.
type RatingSet map[int]int

// Complete reports whether all 32 items are present with in-range scores.
// Only complete sets may be treated as a finished assessment.
func (r RatingSet) Complete() bool {
	if len(r) != framework.ItemCount {
		return false
	}
	for n := 1; n <= framework.ItemCount; n++ {
		score, ok := r[n]
		if !ok || score < framework.MinRating || score > framework.MaxRating {
			return false
		}
	}
	return true
}

// Floats widens integer ratings to the float form shared with cohort
// per-item averages.
func (r RatingSet) Floats() map[int]float64 {
	out := make(map[int]float64, len(r))
	for n, score := range r {
		out[n] = float64(score)
	}
	return out
}

// Profile is the derived read-only view of one rating set: mean per
// indicator, mean per focus tag and the overall mean. Recomputed on demand,
// never persisted.
type Profile struct {
	Indicators map[string]float64
	Focuses    map[framework.FocusTag]float64
	Overall    float64
}

// NewProfile computes the full profile for one rating set.
func NewProfile(r RatingSet) Profile {
	return ProfileFromAverages(r.Floats())
}

// ProfileFromAverages computes a profile from per-item float values, the
// form cohort-level item averages arrive in. Zero-substitution applies to
// absent items exactly as for raw ratings.
func ProfileFromAverages(values map[int]float64) Profile {
	return Profile{
		Indicators: indicatorMeans(values),
		Focuses:    focusMeans(values),
		Overall:    overallMean(values),
	}
}

// IndicatorScores returns the mean score per indicator. The two overall
// items are not part of any indicator's mean.
func IndicatorScores(r RatingSet) map[string]float64 {
	return indicatorMeans(r.Floats())
}

// OverallScore returns the mean over exactly items 1-32, or 0 for an empty
// set.
func OverallScore(r RatingSet) float64 {
	return overallMean(r.Floats())
}

// FocusScores returns the mean score per focus tag across all 32 items,
// including the overall items where the tag applies.
func FocusScores(r RatingSet) map[framework.FocusTag]float64 {
	return focusMeans(r.Floats())
}

func indicatorMeans(values map[int]float64) map[string]float64 {
	out := make(map[string]float64, len(framework.Indicators))
	for _, ind := range framework.Indicators {
		out[ind.Name] = meanOver(values, framework.ItemsForIndicator(ind.Name))
	}
	return out
}

func focusMeans(values map[int]float64) map[framework.FocusTag]float64 {
	out := make(map[framework.FocusTag]float64, len(framework.FocusTags))
	for _, ft := range framework.FocusTags {
		out[ft.Tag] = meanOver(values, framework.ItemsByFocus(ft.Tag))
	}
	return out
}

func overallMean(values map[int]float64) float64 {
	if len(values) == 0 {
		return 0
	}
	items := make([]int, 0, framework.ItemCount)
	for n := 1; n <= framework.ItemCount; n++ {
		items = append(items, n)
	}
	return meanOver(values, items)
}

// meanOver sums the present values for the given items and divides by the
// full item count (zero-substitution for absent items).
func meanOver(values map[int]float64, items []int) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, n := range items {
		sum += values[n]
	}
	return sum / float64(len(items))
}

// Comparison pairs a pre and post profile with their deltas (post - pre).
type Comparison struct {
	Pre, Post       Profile
	IndicatorDeltas map[string]float64
	FocusDeltas     map[framework.FocusTag]float64
	ItemDeltas      map[int]int
	OverallDelta    float64
}

// Compare builds the pre/post comparison for one participant.
func Compare(pre, post RatingSet) Comparison {
	c := Comparison{
		Pre:             NewProfile(pre),
		Post:            NewProfile(post),
		IndicatorDeltas: make(map[string]float64, len(framework.Indicators)),
		FocusDeltas:     make(map[framework.FocusTag]float64, len(framework.FocusTags)),
		ItemDeltas:      make(map[int]int, framework.ItemCount),
	}
	for name, postScore := range c.Post.Indicators {
		c.IndicatorDeltas[name] = postScore - c.Pre.Indicators[name]
	}
	for tag, postScore := range c.Post.Focuses {
		c.FocusDeltas[tag] = postScore - c.Pre.Focuses[tag]
	}
	for n := 1; n <= framework.ItemCount; n++ {
		c.ItemDeltas[n] = post[n] - pre[n]
	}
	c.OverallDelta = c.Post.Overall - c.Pre.Overall
	return c
}

// FormatDelta renders a delta with an explicit sign for positive values,
// e.g. "+1.0", "-0.3", "0.0".
func FormatDelta(d float64) string {
	if d > 0 {
		return fmt.Sprintf("+%.1f", d)
	}
	return fmt.Sprintf("%.1f", d)
}

// FormatItemDelta renders an integer item delta with an explicit sign for
// positive values.
func FormatItemDelta(d int) string {
	if d > 0 {
		return fmt.Sprintf("+%d", d)
	}
	return fmt.Sprintf("%d", d)
}
