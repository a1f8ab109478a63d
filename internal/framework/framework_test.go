package framework

import "testing"

func TestItemsCoverEveryNumberOnce(t *testing.T) {
	if len(Items) != ItemCount {
		t.Fatalf("expected %d items, got %d", ItemCount, len(Items))
	}
	seen := make(map[int]bool, ItemCount)
	for _, item := range Items {
		if item.Number < 1 || item.Number > ItemCount {
			t.Fatalf("item number %d out of range", item.Number)
		}
		if seen[item.Number] {
			t.Fatalf("duplicate item number %d", item.Number)
		}
		seen[item.Number] = true
	}
}

func TestIndicatorRangesAreContiguous(t *testing.T) {
	next := 1
	for _, ind := range Indicators {
		if ind.First != next {
			t.Fatalf("%s starts at %d, expected %d", ind.Name, ind.First, next)
		}
		if ind.Last < ind.First {
			t.Fatalf("%s has inverted range", ind.Name)
		}
		next = ind.Last + 1
	}
	if next != OverallItems[0] {
		t.Fatalf("indicator ranges end at %d, overall items start at %d", next-1, OverallItems[0])
	}
}

func TestIndicatorForItem(t *testing.T) {
	cases := []struct {
		item int
		want string
	}{
		{1, "Self-Readiness"},
		{6, "Self-Readiness"},
		{7, "Practical Readiness"},
		{14, "Practical Readiness"},
		{15, "Professional Readiness"},
		{22, "Professional Readiness"},
		{23, "Team Readiness"},
		{30, "Team Readiness"},
		{31, OverallIndicator},
		{32, OverallIndicator},
		{0, ""},
		{33, ""},
	}
	for _, tc := range cases {
		if got := IndicatorForItem(tc.item); got != tc.want {
			t.Errorf("IndicatorForItem(%d) = %q, want %q", tc.item, got, tc.want)
		}
	}
}

func TestItemsAgreeWithIndicatorAssignment(t *testing.T) {
	for _, item := range Items {
		if got := IndicatorForItem(item.Number); got != item.Indicator {
			t.Errorf("item %d declares indicator %q but range lookup says %q", item.Number, item.Indicator, got)
		}
	}
}

func TestItemsByFocusPartitionsTheInstrument(t *testing.T) {
	total := 0
	for _, ft := range FocusTags {
		total += len(ItemsByFocus(ft.Tag))
	}
	if total != ItemCount {
		t.Fatalf("focus tags cover %d items, want %d", total, ItemCount)
	}
}

func TestRatingScaleLabels(t *testing.T) {
	for score := MinRating; score <= MaxRating; score++ {
		if RatingScale[score] == "" {
			t.Errorf("missing label for score %d", score)
		}
	}
}
