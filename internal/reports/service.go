// Package reports assembles the three readiness report types from stored
// assessment data: Baseline (PRE only), Progress (PRE vs POST) and Impact
// (cohort summary). Each report is rendered as a DOCX in one pass; a
// report either completes fully or fails with no partial output.
package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"readiness-backend/internal/charts"
	"readiness-backend/internal/insights"
	"readiness-backend/internal/shared/telemetry"
)

// Kind selects the report type.
type Kind string

const (
	KindBaseline Kind = "baseline"
	KindProgress Kind = "progress"
	KindImpact   Kind = "impact"
)

// Request identifies the subject of a report. ParticipantID is required for
// baseline and progress reports, CohortID for impact reports.
type Request struct {
	Kind          Kind
	ParticipantID string
	CohortID      string
}

// Report is the finished artifact.
type Report struct {
	Kind     Kind
	FileName string
	DOCX     []byte
}

// ChartRenderer is the chart capability the assembler draws with.
type ChartRenderer interface {
	Radar(values []float64, axes []charts.Axis) ([]byte, error)
	ComparisonRadar(pre, post []float64, axes []charts.Axis) ([]byte, error)
	Bar(score float64, colour string) ([]byte, error)
	ComparisonBar(pre, post float64, colour string) ([]byte, error)
}

// Synthesizer produces the qualitative bundle for impact reports. It never
// fails; unavailability resolves to a deterministic fallback.
type Synthesizer interface {
	Synthesize(ctx context.Context, scores insights.ScoreData, responses insights.OpenResponses) insights.Bundle
}

// Service generates reports from a Store.
type Service struct {
	store  Store
	charts ChartRenderer
	synth  Synthesizer
}

// NewService constructs the report service.
func NewService(store Store, renderer ChartRenderer, synth Synthesizer) *Service {
	return &Service{store: store, charts: renderer, synth: synth}
}

// Generate produces one report. Preconditions are checked before any
// aggregation or rendering starts.
func (s *Service) Generate(ctx context.Context, req Request) (Report, error) {
	start := time.Now()

	var (
		report Report
		err    error
	)
	switch req.Kind {
	case KindBaseline:
		report, err = s.generateBaseline(ctx, req.ParticipantID)
	case KindProgress:
		report, err = s.generateProgress(ctx, req.ParticipantID)
	case KindImpact:
		report, err = s.generateImpact(ctx, req.CohortID)
	default:
		return Report{}, fmt.Errorf("unknown report kind %q", req.Kind)
	}
	if err != nil {
		return Report{}, err
	}

	telemetry.Info("report.generated", map[string]any{
		"kind":        string(report.Kind),
		"file":        report.FileName,
		"bytes":       len(report.DOCX),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return report, nil
}

// fileName builds "readiness_<kind>_<subject>.docx" with the subject
// lowercased and non-alphanumerics collapsed to underscores.
func fileName(kind Kind, subject string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(subject) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "_")
	if slug == "" {
		slug = "report"
	}
	return fmt.Sprintf("readiness_%s_%s.docx", kind, slug)
}
