package reports

import (
	"context"
	"fmt"

	"readiness-backend/internal/framework"
	"readiness-backend/internal/reportdoc"
	"readiness-backend/internal/scores"
)

func (s *Service) generateProgress(ctx context.Context, participantID string) (Report, error) {
	data, err := s.store.ParticipantData(ctx, participantID)
	if err != nil {
		return Report{}, err
	}
	if data.Pre == nil || !data.Pre.Ratings.Complete() || data.Post == nil || !data.Post.Ratings.Complete() {
		return Report{}, fmt.Errorf("participant %s needs completed pre- and post-programme assessments: %w", participantID, ErrMissingData)
	}

	pre, post := data.Pre, data.Post
	comparison := scores.Compare(pre.Ratings, post.Ratings)

	cohortAvgs, err := s.store.CohortItemAverages(ctx, data.Cohort.ID, framework.StagePost)
	if err != nil {
		return Report{}, err
	}
	cohortProfile := scores.ProfileFromAverages(cohortAvgs)

	var doc reportdoc.Document
	doc.Add(titleBlocks("Readiness Progress")...)

	role := data.Participant.Role
	if role == "" {
		role = "Not specified"
	}
	doc.Add(infoTable([][2]string{
		{"Participant:", data.Participant.Name},
		{"Role:", role},
		{"Pre-Assessment:", formatDate(pre.CompletedAt)},
		{"Post-Assessment:", formatDate(post.CompletedAt)},
	}))

	doc.Add(
		reportdoc.Spacer{},
		sectionHeading("Your Progress", 14),
		reportdoc.Text(fmt.Sprintf(
			"Congratulations, %s! Your assessment shows your growth across the four Readiness "+
				"Indicators. Your overall readiness moved from %s to %s (%s).",
			firstName(data.Participant.Name),
			formatScore(comparison.Pre.Overall), formatScore(comparison.Post.Overall),
			scores.FormatDelta(comparison.OverallDelta))),
	)

	radar, err := s.charts.ComparisonRadar(
		indicatorValues(comparison.Pre.Indicators),
		indicatorValues(comparison.Post.Indicators),
		indicatorAxes(),
	)
	if err != nil {
		return Report{}, fmt.Errorf("render comparison radar chart: %w", err)
	}
	doc.Add(
		sectionHeading("Your Growth Profile", 12),
		reportdoc.Image{PNG: radar, WidthInches: radarWidthInches, Align: reportdoc.AlignCenter},
		reportdoc.Spacer{},
	)

	summaryRows := make([][]reportdoc.Cell, 0, len(framework.Indicators)+1)
	for _, ind := range framework.Indicators {
		summaryRows = append(summaryRows, centredCells(ind.Name,
			formatScore(comparison.Pre.Indicators[ind.Name]),
			formatScore(comparison.Post.Indicators[ind.Name]),
			scores.FormatDelta(comparison.IndicatorDeltas[ind.Name]),
			formatScore(cohortProfile.Indicators[ind.Name]),
		))
	}
	summaryRows = append(summaryRows, overallCells([]string{
		"OVERALL",
		formatScore(comparison.Pre.Overall),
		formatScore(comparison.Post.Overall),
		scores.FormatDelta(comparison.OverallDelta),
		formatScore(cohortProfile.Overall),
	}))
	doc.Add(
		reportdoc.Table{
			Headers:     []string{"Indicator", "Pre", "Post", "Change", "Cohort"},
			HeaderShade: colourPurple,
			ColWidths:   []int{4238, 1350, 1350, 1350, 1350},
			Rows:        summaryRows,
			Zebra:       true,
		},
		noteParagraph("Cohort = Average of all participants  |  Bar shows Pre (dashed) vs Post (solid)", reportdoc.AlignLeft),
	)

	doc.Add(reportdoc.PageBreak{})

	for _, ind := range framework.Indicators {
		preAvg := comparison.Pre.Indicators[ind.Name]
		postAvg := comparison.Post.Indicators[ind.Name]
		delta := comparison.IndicatorDeltas[ind.Name]

		deltaRun := reportdoc.Run{Text: fmt.Sprintf("(%s)", scores.FormatDelta(delta)), Bold: true, Size: 9}
		if delta > 0 {
			deltaRun.Colour = colourSuccessGreen
		}
		doc.Add(
			headingIn(ind.Name, 12, docHex(ind.Colour)),
			reportdoc.Paragraph{Runs: []reportdoc.Run{
				{Text: ind.Description, Italic: true, Size: 9, Colour: colourMidGrey},
				{Text: fmt.Sprintf("  |  Pre: %s to Post: %s ", formatScore(preAvg), formatScore(postAvg)), Size: 9},
				deltaRun,
			}},
		)

		table, err := s.progressItemsTable(framework.ItemsForIndicator(ind.Name), pre.Ratings, post.Ratings, ind.Colour)
		if err != nil {
			return Report{}, err
		}
		doc.Add(table)
	}

	doc.Add(sectionHeading("Overall Readiness", 12))
	overallTable, err := s.progressItemsTable(framework.OverallItems, pre.Ratings, post.Ratings, "#"+colourPurple)
	if err != nil {
		return Report{}, err
	}
	doc.Add(overallTable)

	doc.Add(reportdoc.PageBreak{}, sectionHeading("Your Reflections", 14))
	doc.Add(reflectionBlocks(framework.OpenQuestionsPost, post.OpenResponses, func(qNum int) []reportdoc.Block {
		// Q3 asks participants to revisit their pre-programme concern, so
		// the report echoes what they originally wrote.
		if qNum != 3 {
			return nil
		}
		original := pre.OpenResponses[3]
		if original == "" {
			return nil
		}
		return []reportdoc.Block{reportdoc.Paragraph{Runs: []reportdoc.Run{
			{Text: "Your original concern: ", Size: 9, Colour: colourMidGrey},
			{Text: fmt.Sprintf("%q", original), Italic: true, Size: 9},
		}}}
	})...)
	doc.Add(noteParagraph("For questions about your development plan, speak with your facilitator or line manager.", reportdoc.AlignLeft))

	doc.Add(appendixBlocks()...)

	docx, err := reportdoc.Marshal(doc)
	if err != nil {
		return Report{}, fmt.Errorf("marshal progress report: %w", err)
	}
	return Report{
		Kind:     KindProgress,
		FileName: fileName(KindProgress, data.Participant.Name),
		DOCX:     docx,
	}, nil
}

// progressItemsTable renders one indicator's item rows with pre/post scores,
// a comparison bar and the signed change.
func (s *Service) progressItemsTable(items []int, pre, post scores.RatingSet, colour string) (reportdoc.Table, error) {
	rows := make([][]reportdoc.Cell, 0, len(items))
	for _, n := range items {
		item, ok := framework.ItemByNumber(n)
		if !ok {
			return reportdoc.Table{}, fmt.Errorf("unknown item number %d", n)
		}
		preScore, postScore := pre[n], post[n]
		bar, err := s.charts.ComparisonBar(float64(preScore), float64(postScore), colour)
		if err != nil {
			return reportdoc.Table{}, fmt.Errorf("render comparison bar for item %d: %w", n, err)
		}
		rows = append(rows, []reportdoc.Cell{
			{Text: fmt.Sprintf("%d", n), Align: reportdoc.AlignCenter},
			{Text: item.Statement},
			{Text: string(item.Focus), Align: reportdoc.AlignCenter},
			{Text: fmt.Sprintf("%d", preScore), Align: reportdoc.AlignCenter},
			{Text: fmt.Sprintf("%d", postScore), Align: reportdoc.AlignCenter},
			{Image: &reportdoc.Image{PNG: bar, WidthInches: barWidthInches}, Align: reportdoc.AlignCenter},
			{Text: scores.FormatItemDelta(postScore - preScore), Align: reportdoc.AlignCenter},
		})
	}
	return reportdoc.Table{
		Headers:     []string{"#", "Statement", "Focus", "Pre", "Post", "", "Change"},
		HeaderShade: docHex(colour),
		ColWidths:   []int{600, 4138, 1100, 700, 700, 1400, 1000},
		Rows:        rows,
		Zebra:       true,
	}, nil
}
