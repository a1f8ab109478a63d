package store

import (
	"context"
	"sync"

	"readiness-backend/internal/framework"
	"readiness-backend/internal/reports"
)

// Memory is an in-memory reports.Store. It backs local development when no
// database is configured, and the demo command.
type Memory struct {
	mu      sync.RWMutex
	cohorts map[string]reports.CohortData
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{cohorts: make(map[string]reports.CohortData)}
}

// AddCohort registers a cohort and its participants.
func (m *Memory) AddCohort(data reports.CohortData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cohorts[data.Cohort.ID] = data
}

// ParticipantData returns one participant with their cohort and completed
// stages.
func (m *Memory) ParticipantData(_ context.Context, participantID string) (reports.ParticipantData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, cohort := range m.cohorts {
		for _, member := range cohort.Participants {
			if member.Participant.ID == participantID {
				return reports.ParticipantData{
					Participant: member.Participant,
					Cohort:      cohort.Cohort,
					Pre:         member.Pre,
					Post:        member.Post,
				}, nil
			}
		}
	}
	return reports.ParticipantData{}, reports.ErrNotFound
}

// CohortData returns a cohort with all its members.
func (m *Memory) CohortData(_ context.Context, cohortID string) (reports.CohortData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.cohorts[cohortID]
	if !ok {
		return reports.CohortData{}, reports.ErrNotFound
	}
	return data, nil
}

// CohortItemAverages computes the mean rating per item across the cohort's
// completed assessments for one stage.
func (m *Memory) CohortItemAverages(_ context.Context, cohortID string, stage framework.Stage) (map[int]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.cohorts[cohortID]
	if !ok {
		return nil, reports.ErrNotFound
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, member := range data.Participants {
		assessment := member.Pre
		if stage == framework.StagePost {
			assessment = member.Post
		}
		if assessment == nil {
			continue
		}
		for item, score := range assessment.Ratings {
			sums[item] += float64(score)
			counts[item]++
		}
	}

	out := make(map[int]float64, len(sums))
	for item, sum := range sums {
		out[item] = sum / float64(counts[item])
	}
	return out, nil
}

var _ reports.Store = (*Memory)(nil)
