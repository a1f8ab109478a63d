package reports

import (
	"context"
	"fmt"

	"readiness-backend/internal/framework"
	"readiness-backend/internal/reportdoc"
	"readiness-backend/internal/scores"
)

func programmeName(cohort Cohort) string {
	if cohort.Programme != "" {
		return cohort.Programme
	}
	return "Launch Readiness"
}

func (s *Service) generateBaseline(ctx context.Context, participantID string) (Report, error) {
	data, err := s.store.ParticipantData(ctx, participantID)
	if err != nil {
		return Report{}, err
	}
	if data.Pre == nil || !data.Pre.Ratings.Complete() {
		return Report{}, fmt.Errorf("participant %s has no completed pre-programme assessment: %w", participantID, ErrMissingData)
	}

	pre := data.Pre
	profile := scores.NewProfile(pre.Ratings)

	var doc reportdoc.Document
	doc.Add(titleBlocks("Readiness Baseline")...)

	role := data.Participant.Role
	if role == "" {
		role = "Not specified"
	}
	doc.Add(infoTable([][2]string{
		{"Participant:", data.Participant.Name},
		{"Role:", role},
		{"Cohort:", data.Cohort.Name},
		{"Assessment Date:", formatDate(pre.CompletedAt)},
	}))

	doc.Add(
		reportdoc.Spacer{},
		sectionHeading("Your Starting Point", 14),
		reportdoc.Text(fmt.Sprintf(
			"Welcome to the %s programme, %s. This report captures your self-assessment "+
				"before the programme begins. There are no right or wrong answers; this is "+
				"simply a snapshot of where you see yourself today.",
			programmeName(data.Cohort), firstName(data.Participant.Name))),
	)

	radar, err := s.charts.Radar(indicatorValues(profile.Indicators), indicatorAxes())
	if err != nil {
		return Report{}, fmt.Errorf("render radar chart: %w", err)
	}
	doc.Add(
		sectionHeading("Your Readiness Profile", 12),
		reportdoc.Image{PNG: radar, WidthInches: radarWidthInches, Align: reportdoc.AlignCenter},
		noteParagraph("Scale: 1-6 (1=Strongly Disagree, 6=Strongly Agree)", reportdoc.AlignRight),
		reportdoc.Spacer{},
	)

	summaryRows := make([][]reportdoc.Cell, 0, len(framework.Indicators)+1)
	for _, ind := range framework.Indicators {
		summaryRows = append(summaryRows, centredCells(ind.Name, formatScore(profile.Indicators[ind.Name])))
	}
	summaryRows = append(summaryRows, overallCells([]string{"OVERALL", formatScore(profile.Overall)}))
	doc.Add(reportdoc.Table{
		Headers:     []string{"Indicator", "Score"},
		HeaderShade: colourPurple,
		ColWidths:   []int{6438, 3200},
		Rows:        summaryRows,
		Zebra:       true,
	})

	doc.Add(reportdoc.PageBreak{})

	for _, ind := range framework.Indicators {
		doc.Add(
			headingIn(ind.Name, 12, docHex(ind.Colour)),
			reportdoc.Paragraph{Runs: []reportdoc.Run{
				{Text: ind.Description, Italic: true, Size: 9, Colour: colourMidGrey},
				{Text: "  |  Dimension Average: ", Size: 9},
				{Text: formatScore(profile.Indicators[ind.Name]), Bold: true, Size: 9},
			}},
		)
		table, err := s.baselineItemsTable(framework.ItemsForIndicator(ind.Name), pre.Ratings, ind.Colour)
		if err != nil {
			return Report{}, err
		}
		doc.Add(table)
	}

	doc.Add(sectionHeading("Overall Readiness", 12))
	overallTable, err := s.baselineItemsTable(framework.OverallItems, pre.Ratings, "#"+colourPurple)
	if err != nil {
		return Report{}, err
	}
	doc.Add(overallTable)

	doc.Add(reportdoc.PageBreak{}, sectionHeading("Your Reflections", 14))
	doc.Add(reflectionBlocks(framework.OpenQuestionsPre, pre.OpenResponses, nil)...)
	doc.Add(noteParagraph("Keep this report - you'll revisit it after the programme to see how far you've come.", reportdoc.AlignLeft))

	doc.Add(appendixBlocks()...)

	docx, err := reportdoc.Marshal(doc)
	if err != nil {
		return Report{}, fmt.Errorf("marshal baseline report: %w", err)
	}
	return Report{
		Kind:     KindBaseline,
		FileName: fileName(KindBaseline, data.Participant.Name),
		DOCX:     docx,
	}, nil
}

// baselineItemsTable renders one indicator's item rows with a single-score
// bar per item.
func (s *Service) baselineItemsTable(items []int, ratings scores.RatingSet, colour string) (reportdoc.Table, error) {
	rows := make([][]reportdoc.Cell, 0, len(items))
	for _, n := range items {
		item, ok := framework.ItemByNumber(n)
		if !ok {
			return reportdoc.Table{}, fmt.Errorf("unknown item number %d", n)
		}
		score := ratings[n]
		bar, err := s.charts.Bar(float64(score), colour)
		if err != nil {
			return reportdoc.Table{}, fmt.Errorf("render bar for item %d: %w", n, err)
		}
		rows = append(rows, []reportdoc.Cell{
			{Text: fmt.Sprintf("%d", n), Align: reportdoc.AlignCenter},
			{Text: item.Statement},
			{Text: string(item.Focus), Align: reportdoc.AlignCenter},
			{Image: &reportdoc.Image{PNG: bar, WidthInches: barWidthInches}, Align: reportdoc.AlignCenter},
			{Text: fmt.Sprintf("%d", score), Align: reportdoc.AlignCenter},
		})
	}
	return reportdoc.Table{
		Headers:     []string{"#", "Statement", "Focus", "", "Score"},
		HeaderShade: docHex(colour),
		ColWidths:   []int{600, 5438, 1300, 1400, 900},
		Rows:        rows,
		Zebra:       true,
	}, nil
}
