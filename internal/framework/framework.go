// Package framework holds the fixed Launch Readiness instrument: the 32
// survey items, their indicator groupings, focus tags, brand colours and
// rating scale. This data is reference material and never changes at runtime.
package framework

// Stage identifies which administration of the survey a rating set belongs to.
type Stage string

const (
	StagePre  Stage = "PRE"
	StagePost Stage = "POST"
)

// FocusTag is the cross-cutting classification applied to every item,
// independent of its indicator.
type FocusTag string

const (
	FocusKnowledge  FocusTag = "Knowledge"
	FocusAwareness  FocusTag = "Awareness"
	FocusConfidence FocusTag = "Confidence"
	FocusBehaviour  FocusTag = "Behaviour"
)

// FocusTags lists all tags in display order with their report descriptions.
var FocusTags = []struct {
	Tag         FocusTag
	Description string
}{
	{FocusKnowledge, "Understanding of concepts, processes and frameworks"},
	{FocusAwareness, "Recognition of own patterns, triggers and impact"},
	{FocusConfidence, "Self-belief and comfort in capability"},
	{FocusBehaviour, "Actions, habits and practices"},
}

// RatingScale maps each 1-6 score to its label.
var RatingScale = map[int]string{
	1: "Strongly Disagree",
	2: "Disagree",
	3: "Slightly Disagree",
	4: "Slightly Agree",
	5: "Agree",
	6: "Strongly Agree",
}

const (
	// MinRating and MaxRating bound the Likert scale.
	MinRating = 1
	MaxRating = 6

	// ItemCount is the total number of survey items, including the two
	// overall-readiness items.
	ItemCount = 32
)

// Indicator is a named competency grouping spanning a contiguous item range.
type Indicator struct {
	Name        string
	First, Last int
	Colour      string // brand hex
	Description string
}

// Indicators lists the four competency groupings in survey order. Items 31-32
// sit outside every indicator; see OverallItems.
var Indicators = []Indicator{
	{Name: "Self-Readiness", First: 1, Last: 6, Colour: "#461E96", Description: "Personal awareness, values, presence and style"},
	{Name: "Practical Readiness", First: 7, Last: 14, Colour: "#00B4E6", Description: "Time, delegation, listening, conversations and feedback"},
	{Name: "Professional Readiness", First: 15, Last: 22, Colour: "#E6008C", Description: "Communication, trust, meetings, goals and accountability"},
	{Name: "Team Readiness", First: 23, Last: 30, Colour: "#00DC8C", Description: "Operational requirements, safety, change and resilience"},
}

// OverallIndicator is the pseudo-indicator name carried by items 31-32.
const OverallIndicator = "Overall"

// OverallItems are the two overall-readiness items excluded from every
// indicator mean.
var OverallItems = []int{31, 32}

// Item is one survey statement.
type Item struct {
	Number    int
	Statement string
	Focus     FocusTag
	Indicator string
}

// Items lists all 32 statements in survey order.
var Items = []Item{
	// Self-Readiness (1-6)
	{1, "I can clearly articulate my personal values and how they influence my decisions", FocusKnowledge, "Self-Readiness"},
	{2, "I understand my preferred working style and how it differs from others", FocusKnowledge, "Self-Readiness"},
	{3, "I recognise how my behaviour changes when I am under pressure", FocusAwareness, "Self-Readiness"},
	{4, "I project credibility and presence when communicating with others", FocusConfidence, "Self-Readiness"},
	{5, "I adapt my approach effectively when working with people who have different styles to me", FocusBehaviour, "Self-Readiness"},
	{6, "I actively seek feedback on my own performance and act on it", FocusBehaviour, "Self-Readiness"},

	// Practical Readiness (7-14)
	{7, "I prioritise my time effectively, focusing on high-value activities", FocusBehaviour, "Practical Readiness"},
	{8, "I protect time for important but non-urgent work rather than constantly firefighting", FocusBehaviour, "Practical Readiness"},
	{9, "I delegate tasks appropriately rather than taking on too much myself", FocusBehaviour, "Practical Readiness"},
	{10, "I understand how to match my delegation approach to the individual and the task", FocusKnowledge, "Practical Readiness"},
	{11, "I listen to fully understand before forming my response", FocusBehaviour, "Practical Readiness"},
	{12, "I address difficult issues directly rather than avoiding or delaying them", FocusBehaviour, "Practical Readiness"},
	{13, "I give feedback that is specific, constructive and focused on improvement", FocusBehaviour, "Practical Readiness"},
	{14, "I am comfortable receiving feedback, even when it is challenging to hear", FocusConfidence, "Practical Readiness"},

	// Professional Readiness (15-22)
	{15, "I communicate with clarity, adapting my message for different audiences", FocusBehaviour, "Professional Readiness"},
	{16, "I build trust quickly through consistency between my words and actions", FocusBehaviour, "Professional Readiness"},
	{17, "I understand what creates and what erodes trust in working relationships", FocusKnowledge, "Professional Readiness"},
	{18, "I run meetings that are focused, productive and worth people's time", FocusBehaviour, "Professional Readiness"},
	{19, "I conduct effective check-ins that go beyond just task updates", FocusBehaviour, "Professional Readiness"},
	{20, "I set clear goals so people understand what success looks like", FocusBehaviour, "Professional Readiness"},
	{21, "I take ownership of outcomes rather than attributing problems to external factors", FocusBehaviour, "Professional Readiness"},
	{22, "I hold myself and others accountable for commitments made", FocusBehaviour, "Professional Readiness"},

	// Team Readiness (23-30)
	{23, "I understand the key HR processes and policies relevant to my role", FocusKnowledge, "Team Readiness"},
	{24, "I feel equipped to handle common people management situations", FocusConfidence, "Team Readiness"},
	{25, "I model and actively promote safety-first behaviours", FocusBehaviour, "Team Readiness"},
	{26, "I speak up about safety concerns, even when it might be uncomfortable", FocusBehaviour, "Team Readiness"},
	{27, "I help my team understand and navigate change rather than just announcing it", FocusBehaviour, "Team Readiness"},
	{28, "I maintain my own effectiveness during periods of pressure and uncertainty", FocusBehaviour, "Team Readiness"},
	{29, "I recognise signs of stress in myself and take action before it escalates", FocusAwareness, "Team Readiness"},
	{30, "I support the wellbeing of my team, particularly during demanding periods", FocusBehaviour, "Team Readiness"},

	// Overall Readiness (31-32)
	{31, "Overall, I feel ready to perform effectively in my role", FocusConfidence, OverallIndicator},
	{32, "I am confident I can build a high-performing team from day one", FocusConfidence, OverallIndicator},
}

// OpenQuestionsPre are the free-text questions asked before the programme.
var OpenQuestionsPre = map[int]string{
	1: "What aspect of your new role are you most looking forward to?",
	2: "What is the one area where you would most like to build your confidence or skills?",
	3: "What concerns, if any, do you have about the launch period ahead?",
}

// OpenQuestionsPost are the free-text questions asked after the programme.
var OpenQuestionsPost = map[int]string{
	1: "What was your most valuable takeaway from the programme?",
	2: "What will you do differently as a result of attending?",
	3: "Looking back at your pre-programme concerns, how do you feel now?",
}

var itemsByNumber = func() map[int]Item {
	m := make(map[int]Item, len(Items))
	for _, item := range Items {
		m[item.Number] = item
	}
	return m
}()

// ItemByNumber returns the item with the given number.
func ItemByNumber(n int) (Item, bool) {
	item, ok := itemsByNumber[n]
	return item, ok
}

// IndicatorByName returns the indicator with the given name.
func IndicatorByName(name string) (Indicator, bool) {
	for _, ind := range Indicators {
		if ind.Name == name {
			return ind, true
		}
	}
	return Indicator{}, false
}

// IndicatorForItem returns the indicator name owning the item, or
// OverallIndicator for items 31-32. Unknown item numbers return "".
func IndicatorForItem(n int) string {
	for _, ind := range Indicators {
		if n >= ind.First && n <= ind.Last {
			return ind.Name
		}
	}
	for _, overall := range OverallItems {
		if n == overall {
			return OverallIndicator
		}
	}
	return ""
}

// ItemsForIndicator returns the item numbers in an indicator's range, or the
// two overall items for OverallIndicator.
func ItemsForIndicator(name string) []int {
	if name == OverallIndicator {
		out := make([]int, len(OverallItems))
		copy(out, OverallItems)
		return out
	}
	ind, ok := IndicatorByName(name)
	if !ok {
		return nil
	}
	out := make([]int, 0, ind.Last-ind.First+1)
	for n := ind.First; n <= ind.Last; n++ {
		out = append(out, n)
	}
	return out
}

// ItemsByFocus returns all item numbers carrying the given focus tag, in
// survey order.
func ItemsByFocus(tag FocusTag) []int {
	var out []int
	for _, item := range Items {
		if item.Focus == tag {
			out = append(out, item.Number)
		}
	}
	return out
}
