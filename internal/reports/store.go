package reports

import (
	"context"
	"time"

	"readiness-backend/internal/framework"
	"readiness-backend/internal/scores"
)

// Participant is the identity data shown on individual reports.
type Participant struct {
	ID   string
	Name string
	Role string
}

// Cohort is the programme grouping shown on reports.
type Cohort struct {
	ID        string
	Name      string
	Programme string
	StartDate string
	EndDate   string
}

// Assessment is one completed survey stage: the full rating set plus the
// question-indexed free-text answers.
type Assessment struct {
	Stage         framework.Stage
	CompletedAt   time.Time
	Ratings       scores.RatingSet
	OpenResponses map[int]string
}

// ParticipantData is everything needed for an individual report. Pre or
// Post is nil when that stage has not been completed.
type ParticipantData struct {
	Participant Participant
	Cohort      Cohort
	Pre         *Assessment
	Post        *Assessment
}

// CohortParticipant is one member of a cohort with whatever stages they
// have completed.
type CohortParticipant struct {
	Participant Participant
	Pre         *Assessment
	Post        *Assessment
}

// Complete reports whether both stages are present.
func (p CohortParticipant) Complete() bool {
	return p.Pre != nil && p.Post != nil
}

// CohortData is everything needed for a cohort report.
type CohortData struct {
	Cohort       Cohort
	Participants []CohortParticipant
}

// PreCompleted counts participants with a completed PRE stage.
func (d CohortData) PreCompleted() int {
	n := 0
	for _, p := range d.Participants {
		if p.Pre != nil {
			n++
		}
	}
	return n
}

// PostCompleted counts participants with a completed POST stage.
func (d CohortData) PostCompleted() int {
	n := 0
	for _, p := range d.Participants {
		if p.Post != nil {
			n++
		}
	}
	return n
}

// CompleteParticipants returns the members with both stages complete, in
// store order.
func (d CohortData) CompleteParticipants() []CohortParticipant {
	var out []CohortParticipant
	for _, p := range d.Participants {
		if p.Complete() {
			out = append(out, p)
		}
	}
	return out
}

// Store is the read-only data source behind report generation.
type Store interface {
	// ParticipantData returns a participant with their cohort and completed
	// stages, or ErrNotFound.
	ParticipantData(ctx context.Context, participantID string) (ParticipantData, error)

	// CohortData returns a cohort with all its members, or ErrNotFound.
	CohortData(ctx context.Context, cohortID string) (CohortData, error)

	// CohortItemAverages returns the per-item mean rating across the
	// cohort's completed assessments for one stage. Items nobody has rated
	// are absent from the map.
	CohortItemAverages(ctx context.Context, cohortID string, stage framework.Stage) (map[int]float64, error)
}
