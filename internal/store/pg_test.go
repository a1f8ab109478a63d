package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"readiness-backend/internal/framework"
	"readiness-backend/internal/reports"
)

func newMock(t *testing.T) (*PG, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPG(db), mock
}

func expectAssessment(mock sqlmock.Sqlmock, stage framework.Stage, found bool) {
	query := mock.ExpectQuery("SELECT id, completed_at").
		WithArgs("p1", string(stage))
	if !found {
		query.WillReturnError(sql.ErrNoRows)
		return
	}
	completedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	query.WillReturnRows(sqlmock.NewRows([]string{"id", "completed_at"}).
		AddRow("a-"+string(stage), completedAt))

	ratings := sqlmock.NewRows([]string{"item_number", "score"})
	for n := 1; n <= framework.ItemCount; n++ {
		ratings.AddRow(n, 4)
	}
	mock.ExpectQuery("SELECT item_number, score").
		WithArgs("a-" + string(stage)).
		WillReturnRows(ratings)

	mock.ExpectQuery("SELECT question_number").
		WithArgs("a-" + string(stage)).
		WillReturnRows(sqlmock.NewRows([]string{"question_number", "response_text"}).
			AddRow(1, "a response"))
}

func TestParticipantDataNotFound(t *testing.T) {
	pg, mock := newMock(t)
	mock.ExpectQuery("SELECT p.id, p.name").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := pg.ParticipantData(context.Background(), "nope")
	if !errors.Is(err, reports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestParticipantDataLoadsStages(t *testing.T) {
	pg, mock := newMock(t)
	mock.ExpectQuery("SELECT p.id, p.name").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "role", "cohort_id", "cohort_name", "programme", "start_date", "end_date",
		}).AddRow("p1", "Sam Taylor", "Team Lead", "c1", "Cohort A", "Launch Readiness", "2026-01-12", "2026-03-06"))
	expectAssessment(mock, framework.StagePre, true)
	expectAssessment(mock, framework.StagePost, false)

	data, err := pg.ParticipantData(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ParticipantData: %v", err)
	}
	if data.Participant.Name != "Sam Taylor" || data.Cohort.Name != "Cohort A" {
		t.Errorf("identity = %+v / %+v", data.Participant, data.Cohort)
	}
	if data.Pre == nil {
		t.Fatal("Pre is nil")
	}
	if !data.Pre.Ratings.Complete() {
		t.Error("Pre ratings should be complete")
	}
	if data.Pre.OpenResponses[1] != "a response" {
		t.Errorf("open responses = %+v", data.Pre.OpenResponses)
	}
	if data.Post != nil {
		t.Error("Post should be nil without a completed assessment")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestCohortDataNotFound(t *testing.T) {
	pg, mock := newMock(t)
	mock.ExpectQuery("SELECT id, name").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := pg.CohortData(context.Background(), "nope")
	if !errors.Is(err, reports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCohortItemAverages(t *testing.T) {
	pg, mock := newMock(t)
	mock.ExpectQuery("SELECT r.item_number, AVG").
		WithArgs("c1", "POST").
		WillReturnRows(sqlmock.NewRows([]string{"item_number", "avg"}).
			AddRow(1, 4.5).
			AddRow(2, 3.25))

	avgs, err := pg.CohortItemAverages(context.Background(), "c1", framework.StagePost)
	if err != nil {
		t.Fatalf("CohortItemAverages: %v", err)
	}
	if len(avgs) != 2 || avgs[1] != 4.5 || avgs[2] != 3.25 {
		t.Errorf("avgs = %+v", avgs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
