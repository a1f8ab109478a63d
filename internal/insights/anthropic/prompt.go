package anthropic

import (
	"fmt"
	"strings"

	"readiness-backend/internal/insights"
	"readiness-backend/internal/scores"
)

// buildPrompt embeds the quantitative and qualitative aggregates as
// formatted text and pins the exact JSON shape the service must return.
func buildPrompt(data insights.ScoreData, responses insights.OpenResponses) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are analysing the impact of a leadership readiness programme on a cohort of %d participants.\n", data.ParticipantCount)
	fmt.Fprintf(&b, "Participants rated 32 statements on a 1-6 scale before and after the programme.\n\n")

	fmt.Fprintf(&b, "Overall readiness: pre %.1f, post %.1f (%s).\n\n", data.PreOverall, data.PostOverall, scores.FormatDelta(data.PostOverall-data.PreOverall))

	b.WriteString("Indicator scores (pre / post / change):\n")
	for _, stat := range data.Indicators {
		fmt.Fprintf(&b, "- %s: %.1f / %.1f / %s\n", stat.Name, stat.Pre, stat.Post, scores.FormatDelta(stat.Delta))
	}

	b.WriteString("\nFocus area scores (pre / post / change):\n")
	for _, stat := range data.Focuses {
		fmt.Fprintf(&b, "- %s: %.1f / %.1f / %s\n", stat.Focus, stat.Pre, stat.Post, scores.FormatDelta(stat.Delta))
	}

	b.WriteString("\nItems with the largest gains:\n")
	for _, item := range data.TopGains {
		fmt.Fprintf(&b, "- Q%d %q: %.1f to %.1f (%s)\n", item.Number, item.Statement, item.Pre, item.Post, scores.FormatDelta(item.Delta))
	}

	b.WriteString("\nItems with the lowest post-programme scores:\n")
	for _, item := range data.LowestPost {
		fmt.Fprintf(&b, "- Q%d %q: post %.1f\n", item.Number, item.Statement, item.Post)
	}

	writeResponses(&b, "Most valuable takeaways", responses.Takeaways)
	writeResponses(&b, "What participants will do differently", responses.Commitments)
	writeResponses(&b, "Pre-programme concerns", responses.PreConcerns)
	writeResponses(&b, "Post-programme reflections on those concerns", responses.PostReflections)

	b.WriteString(`
Write the analysis for a cohort impact report.

Guidelines:
- Cite the actual numbers above; do not invent figures
- For themes, look for recurring ideas, tools or commitments; a response can
  contribute to multiple themes; pick a short representative quote for each
- Be specific - "feedback models" is better than "communication skills"

Return ONLY valid JSON in this exact format, no other text:
{"executive_narrative": "...", "roi_narrative": "...", "recommendations": ["..."], "takeaway_themes": [{"theme": "...", "count": N, "example": "..."}], "commitment_themes": [{"theme": "...", "count": N, "example": "..."}]}
`)

	return b.String()
}

func writeResponses(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", heading)
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		fmt.Fprintf(b, "- %q\n", trimmed)
	}
}
