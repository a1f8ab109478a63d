package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"readiness-backend/internal/framework"
	"readiness-backend/internal/reports"
	"readiness-backend/internal/scores"
)

// PG implements reports.Store against Postgres.
type PG struct {
	DB *sql.DB
}

// NewPG constructs the store.
func NewPG(db *sql.DB) *PG {
	return &PG{DB: db}
}

const participantQuery = `
SELECT p.id, p.name, COALESCE(p.role, ''),
       c.id, c.name, COALESCE(c.programme, ''),
       COALESCE(c.start_date, ''), COALESCE(c.end_date, '')
FROM participants p
JOIN cohorts c ON c.id = p.cohort_id
WHERE p.id = $1`

// ParticipantData returns one participant with their cohort and completed
// stages.
func (s *PG) ParticipantData(ctx context.Context, participantID string) (reports.ParticipantData, error) {
	var data reports.ParticipantData
	err := s.DB.QueryRowContext(ctx, participantQuery, participantID).Scan(
		&data.Participant.ID, &data.Participant.Name, &data.Participant.Role,
		&data.Cohort.ID, &data.Cohort.Name, &data.Cohort.Programme,
		&data.Cohort.StartDate, &data.Cohort.EndDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return reports.ParticipantData{}, reports.ErrNotFound
	}
	if err != nil {
		return reports.ParticipantData{}, fmt.Errorf("load participant %s: %w", participantID, err)
	}

	if data.Pre, err = s.loadAssessment(ctx, participantID, framework.StagePre); err != nil {
		return reports.ParticipantData{}, err
	}
	if data.Post, err = s.loadAssessment(ctx, participantID, framework.StagePost); err != nil {
		return reports.ParticipantData{}, err
	}
	return data, nil
}

const cohortQuery = `
SELECT id, name, COALESCE(programme, ''), COALESCE(start_date, ''), COALESCE(end_date, '')
FROM cohorts
WHERE id = $1`

const cohortMembersQuery = `
SELECT id, name, COALESCE(role, '')
FROM participants
WHERE cohort_id = $1
ORDER BY name, id`

// CohortData returns a cohort with all its members and their completed
// stages.
func (s *PG) CohortData(ctx context.Context, cohortID string) (reports.CohortData, error) {
	var data reports.CohortData
	err := s.DB.QueryRowContext(ctx, cohortQuery, cohortID).Scan(
		&data.Cohort.ID, &data.Cohort.Name, &data.Cohort.Programme,
		&data.Cohort.StartDate, &data.Cohort.EndDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return reports.CohortData{}, reports.ErrNotFound
	}
	if err != nil {
		return reports.CohortData{}, fmt.Errorf("load cohort %s: %w", cohortID, err)
	}

	rows, err := s.DB.QueryContext(ctx, cohortMembersQuery, cohortID)
	if err != nil {
		return reports.CohortData{}, fmt.Errorf("load cohort %s members: %w", cohortID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var member reports.CohortParticipant
		if err := rows.Scan(&member.Participant.ID, &member.Participant.Name, &member.Participant.Role); err != nil {
			return reports.CohortData{}, err
		}
		data.Participants = append(data.Participants, member)
	}
	if err := rows.Err(); err != nil {
		return reports.CohortData{}, err
	}

	for i := range data.Participants {
		id := data.Participants[i].Participant.ID
		if data.Participants[i].Pre, err = s.loadAssessment(ctx, id, framework.StagePre); err != nil {
			return reports.CohortData{}, err
		}
		if data.Participants[i].Post, err = s.loadAssessment(ctx, id, framework.StagePost); err != nil {
			return reports.CohortData{}, err
		}
	}
	return data, nil
}

const averagesQuery = `
SELECT r.item_number, AVG(r.score)
FROM ratings r
JOIN assessments a ON a.id = r.assessment_id
JOIN participants p ON p.id = a.participant_id
WHERE p.cohort_id = $1 AND a.assessment_type = $2 AND a.completed_at IS NOT NULL
GROUP BY r.item_number`

// CohortItemAverages returns the mean rating per item across the cohort's
// completed assessments for one stage.
func (s *PG) CohortItemAverages(ctx context.Context, cohortID string, stage framework.Stage) (map[int]float64, error) {
	rows, err := s.DB.QueryContext(ctx, averagesQuery, cohortID, string(stage))
	if err != nil {
		return nil, fmt.Errorf("load cohort %s %s averages: %w", cohortID, stage, err)
	}
	defer rows.Close()

	out := make(map[int]float64)
	for rows.Next() {
		var item int
		var avg float64
		if err := rows.Scan(&item, &avg); err != nil {
			return nil, err
		}
		out[item] = avg
	}
	return out, rows.Err()
}

const latestAssessmentQuery = `
SELECT id, completed_at
FROM assessments
WHERE participant_id = $1 AND assessment_type = $2 AND completed_at IS NOT NULL
ORDER BY completed_at DESC
LIMIT 1`

const ratingsQuery = `
SELECT item_number, score
FROM ratings
WHERE assessment_id = $1`

const responsesQuery = `
SELECT question_number, COALESCE(response_text, '')
FROM open_responses
WHERE assessment_id = $1`

// loadAssessment returns the participant's latest completed assessment for
// one stage, or nil when none exists.
func (s *PG) loadAssessment(ctx context.Context, participantID string, stage framework.Stage) (*reports.Assessment, error) {
	var (
		assessmentID string
		completedAt  time.Time
	)
	err := s.DB.QueryRowContext(ctx, latestAssessmentQuery, participantID, string(stage)).Scan(&assessmentID, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s assessment for %s: %w", stage, participantID, err)
	}

	assessment := &reports.Assessment{
		Stage:         stage,
		CompletedAt:   completedAt,
		Ratings:       make(scores.RatingSet),
		OpenResponses: make(map[int]string),
	}

	rows, err := s.DB.QueryContext(ctx, ratingsQuery, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("load ratings for %s: %w", assessmentID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var item, score int
		if err := rows.Scan(&item, &score); err != nil {
			return nil, err
		}
		assessment.Ratings[item] = score
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	respRows, err := s.DB.QueryContext(ctx, responsesQuery, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("load responses for %s: %w", assessmentID, err)
	}
	defer respRows.Close()
	for respRows.Next() {
		var question int
		var text string
		if err := respRows.Scan(&question, &text); err != nil {
			return nil, err
		}
		assessment.OpenResponses[question] = text
	}
	return assessment, respRows.Err()
}

var _ reports.Store = (*PG)(nil)
