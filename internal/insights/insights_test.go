package insights

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubSynthesizer struct {
	bundle Bundle
	err    error
	calls  int
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, scores ScoreData, responses OpenResponses) (Bundle, error) {
	s.calls++
	return s.bundle, s.err
}

func sampleScoreData() ScoreData {
	return ScoreData{
		ParticipantCount: 8,
		PreOverall:       3.2,
		PostOverall:      4.5,
		Indicators: []IndicatorStat{
			{Name: "Self-Readiness", Pre: 3.0, Post: 4.9, Delta: 1.9},
			{Name: "Practical Readiness", Pre: 3.5, Post: 4.2, Delta: 0.7},
			{Name: "Professional Readiness", Pre: 3.1, Post: 4.0, Delta: 0.9},
		},
	}
}

func TestClientUsesLiveBundle(t *testing.T) {
	live := &stubSynthesizer{bundle: Bundle{
		ExecutiveNarrative: "live narrative",
		ROINarrative:       "live roi",
		Recommendations:    []string{"do the thing"},
	}}
	client := NewClient(live)

	got := client.Synthesize(context.Background(), sampleScoreData(), OpenResponses{})
	if got.ExecutiveNarrative != "live narrative" {
		t.Errorf("ExecutiveNarrative = %q, want live narrative", got.ExecutiveNarrative)
	}
	if live.calls != 1 {
		t.Errorf("live calls = %d, want 1", live.calls)
	}
}

func TestClientFallsBackOnLiveError(t *testing.T) {
	live := &stubSynthesizer{err: errors.New("service unavailable")}
	client := NewClient(live)

	got := client.Synthesize(context.Background(), sampleScoreData(), OpenResponses{})
	if got.ExecutiveNarrative == "" {
		t.Fatal("fallback bundle missing executive narrative")
	}
	if len(got.Recommendations) == 0 {
		t.Fatal("fallback bundle missing recommendations")
	}
}

func TestClientNilLiveUsesFallback(t *testing.T) {
	client := NewClient(nil)
	got := client.Synthesize(context.Background(), sampleScoreData(), OpenResponses{})
	if got.ExecutiveNarrative == "" || got.ROINarrative == "" {
		t.Fatalf("fallback bundle incomplete: %+v", got)
	}
}

func TestFallbackCitesStrongestAndWeakest(t *testing.T) {
	got := Fallback(sampleScoreData())

	// Self-Readiness has the largest delta, Professional Readiness the lowest post.
	if !strings.Contains(got.ExecutiveNarrative, "Self-Readiness") {
		t.Errorf("executive narrative does not cite strongest indicator: %q", got.ExecutiveNarrative)
	}
	if !strings.Contains(got.ExecutiveNarrative, "Professional Readiness") {
		t.Errorf("executive narrative does not cite weakest indicator: %q", got.ExecutiveNarrative)
	}
	if !strings.Contains(got.ExecutiveNarrative, "3.2") || !strings.Contains(got.ExecutiveNarrative, "4.5") {
		t.Errorf("executive narrative does not cite overall scores: %q", got.ExecutiveNarrative)
	}
	if !strings.Contains(got.ExecutiveNarrative, "+1.3") {
		t.Errorf("executive narrative does not cite overall delta: %q", got.ExecutiveNarrative)
	}
	if len(got.Recommendations) != 4 {
		t.Errorf("recommendations = %d, want 4", len(got.Recommendations))
	}
	if len(got.TakeawayThemes) != 0 || len(got.CommitmentThemes) != 0 {
		t.Error("fallback should leave theme lists empty")
	}
}

func TestFallbackROIVerbMatchesDelta(t *testing.T) {
	tests := []struct {
		name      string
		pre, post float64
		want      string
	}{
		{name: "gain", pre: 3.2, post: 4.5, want: "rose to 4.5"},
		{name: "flat", pre: 4.0, post: 4.0, want: "held at 4.0"},
		{name: "decline", pre: 4.5, post: 4.1, want: "fell to 4.1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			data := sampleScoreData()
			data.PreOverall = tt.pre
			data.PostOverall = tt.post
			got := Fallback(data)
			if !strings.Contains(got.ROINarrative, tt.want) {
				t.Errorf("ROI narrative %q does not contain %q", got.ROINarrative, tt.want)
			}
		})
	}
}

func TestFallbackDeterministic(t *testing.T) {
	data := sampleScoreData()
	first := Fallback(data)
	second := Fallback(data)
	if first.ExecutiveNarrative != second.ExecutiveNarrative || first.ROINarrative != second.ROINarrative {
		t.Error("fallback narratives differ between calls on identical input")
	}
}

func TestFallbackEmptyIndicators(t *testing.T) {
	got := Fallback(ScoreData{PreOverall: 3.0, PostOverall: 4.0})
	if got.ExecutiveNarrative == "" || got.ROINarrative == "" || len(got.Recommendations) == 0 {
		t.Fatalf("empty-indicator fallback incomplete: %+v", got)
	}
}

func TestParseBundle(t *testing.T) {
	raw := `Sure, here it is: {"executive_narrative": "a", "roi_narrative": "b", "recommendations": ["c"], "takeaway_themes": [], "commitment_themes": []} Hope that helps.`
	got, err := ParseBundle(raw)
	if err != nil {
		t.Fatalf("ParseBundle: %v", err)
	}
	if got.ExecutiveNarrative != "a" || got.ROINarrative != "b" {
		t.Errorf("bundle = %+v", got)
	}
}

func TestParseBundleRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no object", raw: "nothing structured here"},
		{name: "invalid json", raw: `{"executive_narrative": }`},
		{name: "missing narrative", raw: `{"roi_narrative": "b", "recommendations": ["c"]}`},
		{name: "empty recommendations", raw: `{"executive_narrative": "a", "roi_narrative": "b", "recommendations": []}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBundle(tt.raw); err == nil {
				t.Fatalf("ParseBundle(%q) succeeded, want error", tt.raw)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "bare object", in: `{"a": 1}`, want: `{"a": 1}`, ok: true},
		{name: "prose around", in: `before {"a": 1} after`, want: `{"a": 1}`, ok: true},
		{name: "nested", in: `{"a": {"b": 2}}`, want: `{"a": {"b": 2}}`, ok: true},
		{name: "brace in string", in: `{"a": "closing } inside"}`, want: `{"a": "closing } inside"}`, ok: true},
		{name: "escaped quote", in: `{"a": "say \"}\" now"}`, want: `{"a": "say \"}\" now"}`, ok: true},
		{name: "no object", in: "plain text", ok: false},
		{name: "unbalanced", in: `{"a": 1`, ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
