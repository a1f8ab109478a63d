package insights

import (
	"fmt"

	"readiness-backend/internal/scores"
)

// Fallback builds a deterministic insight bundle from score data alone. It
// cites the indicator with the largest positive delta and the indicator with
// the lowest post score, uses the actual overall numbers, and leaves both
// theme lists empty (no qualitative clustering without the service).
func Fallback(data ScoreData) Bundle {
	if len(data.Indicators) == 0 {
		return Bundle{
			ExecutiveNarrative: fmt.Sprintf(
				"The programme moved the cohort's overall readiness from %.1f to %.1f (%s on the 6-point scale).",
				data.PreOverall, data.PostOverall, scores.FormatDelta(data.PostOverall-data.PreOverall)),
			ROINarrative: fmt.Sprintf(
				"Average overall readiness before the programme was %.1f; after completing it this stood at %.1f.",
				data.PreOverall, data.PostOverall),
			Recommendations: []string{
				"Review the cohort's indicator results with facilitators to agree follow-up priorities",
				"Schedule a 90-day pulse check to measure sustained application and catch regression early",
			},
		}
	}

	strongest := data.Indicators[0]
	weakest := data.Indicators[0]
	for _, stat := range data.Indicators[1:] {
		if stat.Delta > strongest.Delta {
			strongest = stat
		}
		if stat.Post < weakest.Post {
			weakest = stat
		}
	}

	overallDelta := data.PostOverall - data.PreOverall
	roiVerb := "rose to"
	switch {
	case overallDelta < 0:
		roiVerb = "fell to"
	case overallDelta == 0:
		roiVerb = "held at"
	}

	return Bundle{
		ExecutiveNarrative: fmt.Sprintf(
			"Across %d participants, overall readiness moved from %.1f to %.1f (%s on the 6-point scale). "+
				"The strongest growth was in %s (%s), while %s finished with the lowest post-programme score at %.1f.",
			data.ParticipantCount, data.PreOverall, data.PostOverall, scores.FormatDelta(overallDelta),
			strongest.Name, scores.FormatDelta(strongest.Delta), weakest.Name, weakest.Post),
		ROINarrative: fmt.Sprintf(
			"Before the programme the cohort's overall readiness averaged %.1f; after completing it this %s %.1f. "+
				"How much of that carries into day-to-day practice now depends on sustained support for %s.",
			data.PreOverall, roiVerb, data.PostOverall, weakest.Name),
		Recommendations: []string{
			fmt.Sprintf("Prioritise follow-up on %s, the weakest post-programme indicator at %.1f", weakest.Name, weakest.Post),
			"Ask line managers to reinforce application of the programme frameworks in regular check-ins",
			fmt.Sprintf("Share the %s results internally to sustain momentum from the programme", strongest.Name),
			"Schedule a 90-day pulse check to measure sustained application and catch regression early",
		},
	}
}
