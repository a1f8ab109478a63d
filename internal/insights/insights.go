// Package insights produces the qualitative narrative consumed by cohort
// Impact reports: either from a live theme-synthesis service or from a
// deterministic, score-driven fallback when that service is unavailable.
package insights

import (
	"context"
	"encoding/json"
	"fmt"

	"readiness-backend/internal/framework"
	"readiness-backend/internal/shared/telemetry"
)

// ThemeInsight is one cluster of qualitative responses. Count is advisory:
// themes may overlap, so counts need not sum to the number of responses.
type ThemeInsight struct {
	Theme   string `json:"theme"`
	Count   int    `json:"count"`
	Example string `json:"example"`
}

// Bundle is the synthesis output consumed by the Impact report. It is always
// populated: the fallback path fills the narrative fields from score data
// alone and leaves the theme lists empty.
type Bundle struct {
	ExecutiveNarrative string         `json:"executive_narrative"`
	ROINarrative       string         `json:"roi_narrative"`
	Recommendations    []string       `json:"recommendations"`
	TakeawayThemes     []ThemeInsight `json:"takeaway_themes"`
	CommitmentThemes   []ThemeInsight `json:"commitment_themes"`
}

// IndicatorStat carries pre/post/delta for one indicator.
type IndicatorStat struct {
	Name  string
	Pre   float64
	Post  float64
	Delta float64
}

// FocusStat carries pre/post/delta for one focus tag.
type FocusStat struct {
	Focus framework.FocusTag
	Pre   float64
	Post  float64
	Delta float64
}

// ItemStat carries pre/post/delta for one survey item.
type ItemStat struct {
	Number    int
	Statement string
	Pre       float64
	Post      float64
	Delta     float64
}

// ScoreData is the quantitative aggregate handed to synthesis.
type ScoreData struct {
	ParticipantCount int
	PreOverall       float64
	PostOverall      float64
	Indicators       []IndicatorStat
	Focuses          []FocusStat
	TopGains         []ItemStat // the 5 items with the largest positive delta
	LowestPost       []ItemStat // the 5 items with the lowest post score
}

// OpenResponses is the qualitative aggregate handed to synthesis.
type OpenResponses struct {
	Takeaways       []string
	Commitments     []string
	PreConcerns     []string
	PostReflections []string
}

// Synthesizer is the capability behind the live synthesis service.
type Synthesizer interface {
	Synthesize(ctx context.Context, scores ScoreData, responses OpenResponses) (Bundle, error)
}

// Client selects between a live synthesizer and the deterministic fallback.
// Synthesize never fails: every live error is absorbed into the fallback.
type Client struct {
	live Synthesizer
}

// NewClient wraps the given live synthesizer; pass nil when no service
// credential is configured to run fallback-only.
func NewClient(live Synthesizer) *Client {
	return &Client{live: live}
}

// Synthesize returns the insight bundle for an Impact report.
func (c *Client) Synthesize(ctx context.Context, scores ScoreData, responses OpenResponses) Bundle {
	if c.live != nil {
		bundle, err := c.live.Synthesize(ctx, scores, responses)
		if err == nil {
			return bundle
		}
		telemetry.Warn("insights.fallback", map[string]any{
			"error":        err.Error(),
			"participants": scores.ParticipantCount,
		})
	}
	return Fallback(scores)
}

// ParseBundle extracts and decodes a Bundle from raw service output. The
// service is asked for bare JSON but often wraps it in prose; the first
// balanced object is used. Any failure here means service unavailability,
// never a fatal error for the caller.
func ParseBundle(raw string) (Bundle, error) {
	object, ok := ExtractJSONObject(raw)
	if !ok {
		return Bundle{}, fmt.Errorf("no JSON object in synthesis response")
	}
	var bundle Bundle
	if err := json.Unmarshal([]byte(object), &bundle); err != nil {
		return Bundle{}, fmt.Errorf("decode synthesis response: %w", err)
	}
	if bundle.ExecutiveNarrative == "" || bundle.ROINarrative == "" || len(bundle.Recommendations) == 0 {
		return Bundle{}, fmt.Errorf("synthesis response missing required fields")
	}
	return bundle, nil
}
