package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"readiness-backend/internal/framework"
	"readiness-backend/internal/insights"
	"readiness-backend/internal/reportdoc"
	"readiness-backend/internal/scores"
)

const minCompleteParticipants = 2

func (s *Service) generateImpact(ctx context.Context, cohortID string) (Report, error) {
	data, err := s.store.CohortData(ctx, cohortID)
	if err != nil {
		return Report{}, err
	}
	complete := data.CompleteParticipants()
	if len(complete) < minCompleteParticipants {
		return Report{}, fmt.Errorf("cohort %s has %d participants with complete data, need at least %d: %w",
			cohortID, len(complete), minCompleteParticipants, ErrInsufficientData)
	}

	preAvgs, err := s.store.CohortItemAverages(ctx, cohortID, framework.StagePre)
	if err != nil {
		return Report{}, err
	}
	postAvgs, err := s.store.CohortItemAverages(ctx, cohortID, framework.StagePost)
	if err != nil {
		return Report{}, err
	}
	preProfile := scores.ProfileFromAverages(preAvgs)
	postProfile := scores.ProfileFromAverages(postAvgs)

	scoreData := buildScoreData(len(complete), preProfile, postProfile, preAvgs, postAvgs)
	responses := gatherOpenResponses(complete)
	bundle := s.synth.Synthesize(ctx, scoreData, responses)

	metrics := computeImpactMetrics(data, complete, preProfile, postProfile)

	var doc reportdoc.Document
	doc.Add(titleBlocks("Readiness Impact")...)

	period := "TBC"
	if data.Cohort.StartDate != "" || data.Cohort.EndDate != "" {
		period = fmt.Sprintf("%s to %s", orTBC(data.Cohort.StartDate), orTBC(data.Cohort.EndDate))
	}
	doc.Add(infoTable([][2]string{
		{"Programme:", programmeName(data.Cohort)},
		{"Cohort:", data.Cohort.Name},
		{"Participants:", fmt.Sprintf("%d enrolled | %d pre | %d post",
			len(data.Participants), data.PreCompleted(), data.PostCompleted())},
		{"Period:", period},
	}))

	doc.Add(
		reportdoc.Spacer{},
		sectionHeading("Executive Summary", 14),
		reportdoc.Text(bundle.ExecutiveNarrative),
		reportdoc.Spacer{},
		reportdoc.MetricTiles{Tiles: []reportdoc.MetricTile{
			{Value: scores.FormatDelta(metrics.averageIncrease), Label: "Average Increase", Colour: colourPurple},
			{Value: fmt.Sprintf("%d%%", metrics.completionRate), Label: "Completion Rate", Colour: "00B4E6"},
			{Value: fmt.Sprintf("%d%%", metrics.improvedPct), Label: "Showed Improvement", Colour: colourMagenta},
			{Value: fmt.Sprintf("%d%%", metrics.agreeOrAbovePct), Label: "Now 'Agree' or Above", Colour: "00DC8C"},
		}},
	)

	doc.Add(reportdoc.PageBreak{}, sectionHeading("Indicator Results", 14))
	radar, err := s.charts.ComparisonRadar(
		indicatorValues(preProfile.Indicators),
		indicatorValues(postProfile.Indicators),
		indicatorAxes(),
	)
	if err != nil {
		return Report{}, fmt.Errorf("render comparison radar chart: %w", err)
	}
	doc.Add(
		reportdoc.Image{PNG: radar, WidthInches: radarWidthInches, Align: reportdoc.AlignCenter},
		reportdoc.Spacer{},
	)

	indicatorRows := make([][]reportdoc.Cell, 0, len(framework.Indicators))
	for _, ind := range framework.Indicators {
		pre, post := preProfile.Indicators[ind.Name], postProfile.Indicators[ind.Name]
		indicatorRows = append(indicatorRows, centredCells(ind.Name,
			formatScore(pre), formatScore(post), scores.FormatDelta(post-pre)))
	}
	doc.Add(reportdoc.Table{
		Headers:     []string{"Indicator", "Pre", "Post", "Change"},
		HeaderShade: colourPurple,
		ColWidths:   []int{4738, 1600, 1600, 1700},
		Rows:        indicatorRows,
		Zebra:       true,
	})

	doc.Add(
		sectionHeading("Impact by Focus Area", 14),
		reportdoc.Text("Each statement measures one of four focus areas. This shows where the programme had greatest impact."),
		reportdoc.Spacer{},
	)
	focusRows := make([][]reportdoc.Cell, 0, len(framework.FocusTags))
	for _, ft := range framework.FocusTags {
		pre, post := preProfile.Focuses[ft.Tag], postProfile.Focuses[ft.Tag]
		focusRows = append(focusRows, []reportdoc.Cell{
			{Text: string(ft.Tag)},
			{Text: ft.Description},
			{Text: formatScore(pre), Align: reportdoc.AlignCenter},
			{Text: formatScore(post), Align: reportdoc.AlignCenter},
			{Text: scores.FormatDelta(post - pre), Align: reportdoc.AlignCenter},
		})
	}
	doc.Add(reportdoc.Table{
		Headers:     []string{"Focus Area", "What It Measures", "Pre", "Post", "Change"},
		HeaderShade: colourPurple,
		ColWidths:   []int{1800, 4438, 1100, 1100, 1200},
		Rows:        focusRows,
		Zebra:       true,
	})

	doc.Add(sectionHeading("Qualitative Themes", 14))
	doc.Add(headingIn("Most Valuable Takeaways", 11, colourPurple))
	doc.Add(themeBlocks(bundle.TakeawayThemes, len(complete))...)
	doc.Add(headingIn("Commitments to Action", 11, colourPurple))
	doc.Add(themeBlocks(bundle.CommitmentThemes, len(complete))...)

	doc.Add(
		sectionHeading("ROI Summary", 14),
		reportdoc.Paragraph{Runs: []reportdoc.Run{{Text: bundle.ROINarrative, Italic: true}}},
		headingIn("Recommendations", 11, colourPurple),
		reportdoc.List{Items: bundle.Recommendations, Numbered: true},
		reportdoc.Spacer{},
		noteParagraph("For questions or to discuss follow-up interventions, contact the programme facilitators.", reportdoc.AlignLeft),
	)

	doc.Add(appendixBlocks()...)

	docx, err := reportdoc.Marshal(doc)
	if err != nil {
		return Report{}, fmt.Errorf("marshal impact report: %w", err)
	}
	return Report{
		Kind:     KindImpact,
		FileName: fileName(KindImpact, data.Cohort.Name),
		DOCX:     docx,
	}, nil
}

func orTBC(s string) string {
	if s == "" {
		return "TBC"
	}
	return s
}

// themeBlocks renders synthesized themes as bullets, or the manual-review
// note when the synthesizer produced none.
func themeBlocks(themes []insights.ThemeInsight, total int) []reportdoc.Block {
	if len(themes) == 0 {
		return []reportdoc.Block{reportdoc.Text("Manual review of responses recommended.")}
	}
	items := make([]string, 0, len(themes))
	for _, theme := range themes {
		line := theme.Theme
		if theme.Count > 0 {
			line = fmt.Sprintf("%s (mentioned by %d of %d participants)", theme.Theme, theme.Count, total)
		}
		if strings.TrimSpace(theme.Example) != "" {
			line = fmt.Sprintf("%s - %q", line, theme.Example)
		}
		items = append(items, line)
	}
	return []reportdoc.Block{reportdoc.List{Items: items}}
}

// buildScoreData assembles the quantitative aggregate handed to synthesis.
func buildScoreData(participantCount int, pre, post scores.Profile, preAvgs, postAvgs map[int]float64) insights.ScoreData {
	data := insights.ScoreData{
		ParticipantCount: participantCount,
		PreOverall:       pre.Overall,
		PostOverall:      post.Overall,
	}
	for _, ind := range framework.Indicators {
		data.Indicators = append(data.Indicators, insights.IndicatorStat{
			Name:  ind.Name,
			Pre:   pre.Indicators[ind.Name],
			Post:  post.Indicators[ind.Name],
			Delta: post.Indicators[ind.Name] - pre.Indicators[ind.Name],
		})
	}
	for _, ft := range framework.FocusTags {
		data.Focuses = append(data.Focuses, insights.FocusStat{
			Focus: ft.Tag,
			Pre:   pre.Focuses[ft.Tag],
			Post:  post.Focuses[ft.Tag],
			Delta: post.Focuses[ft.Tag] - pre.Focuses[ft.Tag],
		})
	}

	items := make([]insights.ItemStat, 0, framework.ItemCount)
	for _, item := range framework.Items {
		preAvg, postAvg := preAvgs[item.Number], postAvgs[item.Number]
		items = append(items, insights.ItemStat{
			Number:    item.Number,
			Statement: item.Statement,
			Pre:       preAvg,
			Post:      postAvg,
			Delta:     postAvg - preAvg,
		})
	}

	byGain := make([]insights.ItemStat, len(items))
	copy(byGain, items)
	sort.SliceStable(byGain, func(i, j int) bool { return byGain[i].Delta > byGain[j].Delta })
	for _, stat := range byGain {
		if stat.Delta <= 0 || len(data.TopGains) == 5 {
			break
		}
		data.TopGains = append(data.TopGains, stat)
	}

	byPost := make([]insights.ItemStat, len(items))
	copy(byPost, items)
	sort.SliceStable(byPost, func(i, j int) bool { return byPost[i].Post < byPost[j].Post })
	if len(byPost) > 5 {
		byPost = byPost[:5]
	}
	data.LowestPost = byPost

	return data
}

// gatherOpenResponses collects the free-text answers synthesis clusters:
// post takeaways (Q1), post commitments (Q2), pre concerns (Q3) and the
// post reflections on them (Q3).
func gatherOpenResponses(complete []CohortParticipant) insights.OpenResponses {
	var out insights.OpenResponses
	appendNonEmpty := func(dst *[]string, s string) {
		if strings.TrimSpace(s) != "" {
			*dst = append(*dst, s)
		}
	}
	for _, p := range complete {
		appendNonEmpty(&out.Takeaways, p.Post.OpenResponses[1])
		appendNonEmpty(&out.Commitments, p.Post.OpenResponses[2])
		appendNonEmpty(&out.PreConcerns, p.Pre.OpenResponses[3])
		appendNonEmpty(&out.PostReflections, p.Post.OpenResponses[3])
	}
	return out
}

type impactMetrics struct {
	averageIncrease float64
	completionRate  int // % of enrolled with POST complete
	improvedPct     int // % of complete participants whose overall rose
	agreeOrAbovePct int // % of POST ratings at 5 or above
}

func computeImpactMetrics(data CohortData, complete []CohortParticipant, pre, post scores.Profile) impactMetrics {
	m := impactMetrics{averageIncrease: post.Overall - pre.Overall}

	if enrolled := len(data.Participants); enrolled > 0 {
		m.completionRate = data.PostCompleted() * 100 / enrolled
	}

	improved := 0
	agreeOrAbove, totalRatings := 0, 0
	for _, p := range complete {
		if scores.OverallScore(p.Post.Ratings) > scores.OverallScore(p.Pre.Ratings) {
			improved++
		}
		for _, rating := range p.Post.Ratings {
			totalRatings++
			if rating >= 5 {
				agreeOrAbove++
			}
		}
	}
	if len(complete) > 0 {
		m.improvedPct = improved * 100 / len(complete)
	}
	if totalRatings > 0 {
		m.agreeOrAbovePct = agreeOrAbove * 100 / totalRatings
	}
	return m
}
