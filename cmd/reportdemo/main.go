package main

import (
	"archive/zip"
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"readiness-backend/internal/charts"
	"readiness-backend/internal/framework"
	"readiness-backend/internal/insights"
	"readiness-backend/internal/reports"
	"readiness-backend/internal/scores"
	"readiness-backend/internal/store"
)

func main() {
	outDir := flag.String("out", "./out", "output directory for generated reports")
	flag.Parse()

	mem := store.NewMemory()
	mem.AddCohort(sampleCohort())

	renderer, err := charts.NewRenderer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chart renderer: %v\n", err)
		os.Exit(1)
	}
	svc := reports.NewService(mem, renderer, insights.NewClient(nil))

	requests := []reports.Request{
		{Kind: reports.KindBaseline, ParticipantID: "p1"},
		{Kind: reports.KindProgress, ParticipantID: "p1"},
		{Kind: reports.KindImpact, CohortID: "c1"},
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir failed: %v\n", err)
		os.Exit(1)
	}

	for _, req := range requests {
		report, err := svc.Generate(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate %s failed: %v\n", req.Kind, err)
			os.Exit(1)
		}
		path := filepath.Join(*outDir, report.FileName)
		if err := os.WriteFile(path, report.DOCX, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
			os.Exit(1)
		}
		if err := validateDocx(report.DOCX); err != nil {
			fmt.Fprintf(os.Stderr, "validation failed for %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("OK: wrote %s\n", path)
	}
}

func validateDocx(docx []byte) error {
	reader, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		return err
	}
	for _, name := range []string{"[Content_Types].xml", "word/document.xml", "word/styles.xml"} {
		found := false
		for _, f := range reader.File {
			if f.Name == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("missing package part %s", name)
		}
	}
	return nil
}

func sampleCohort() reports.CohortData {
	preStart := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	postStart := time.Date(2026, 3, 6, 17, 0, 0, 0, time.UTC)

	members := []struct {
		id, name, role string
		preBase        int
		postBase       int
	}{
		{"p1", "Sam Taylor", "Team Lead", 3, 5},
		{"p2", "Alex Reid", "Product Manager", 4, 5},
		{"p3", "Jamie Osei", "Engineer", 2, 4},
		{"p4", "Riley Chen", "Designer", 3, 4},
	}

	cohort := reports.CohortData{
		Cohort: reports.Cohort{
			ID:        "c1",
			Name:      "Spring 2026 Cohort",
			Programme: "Launch Readiness",
			StartDate: "2026-01-12",
			EndDate:   "2026-03-06",
		},
	}

	for i, m := range members {
		member := reports.CohortParticipant{
			Participant: reports.Participant{ID: m.id, Name: m.name, Role: m.role},
			Pre: &reports.Assessment{
				Stage:       framework.StagePre,
				CompletedAt: preStart.Add(time.Duration(i) * time.Hour),
				Ratings:     variedRatings(m.preBase),
				OpenResponses: map[int]string{
					3: "Worried about balancing the programme with day to day delivery pressure.",
				},
			},
			Post: &reports.Assessment{
				Stage:       framework.StagePost,
				CompletedAt: postStart.Add(time.Duration(i) * time.Hour),
				Ratings:     variedRatings(m.postBase),
				OpenResponses: map[int]string{
					1: "The weekly feedback models gave me language for hard conversations.",
					2: "I will run a monthly retrospective with my team.",
					3: "The time commitment was easier to manage than I feared.",
				},
			},
		}
		cohort.Participants = append(cohort.Participants, member)
	}
	return cohort
}

// variedRatings spreads scores around a base so charts and deltas look
// realistic rather than flat.
func variedRatings(base int) scores.RatingSet {
	set := make(scores.RatingSet, framework.ItemCount)
	for n := 1; n <= framework.ItemCount; n++ {
		score := base + n%3 - 1
		if score < 1 {
			score = 1
		}
		if score > 6 {
			score = 6
		}
		set[n] = score
	}
	return set
}
