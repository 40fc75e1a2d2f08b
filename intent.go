package relomate

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent identifies which canned query a user message maps to.
type Intent string

// Intents recognized by the dispatcher.
const (
	IntentGreeting      Intent = "greeting"
	IntentOffTopic      Intent = "off_topic"
	IntentCompare       Intent = "compare"
	IntentGrowth        Intent = "growth"
	IntentCheapest      Intent = "cheapest"
	IntentMostExpensive Intent = "most_expensive"
	IntentOverview      Intent = "overview"
	IntentBudget        Intent = "budget"

	// IntentBrowse is the default for relocation-related messages that
	// carry no recognizable budget: show cheaper options and ask for one.
	IntentBrowse Intent = "browse"
)

// Query is a classified user message with its parsed parameters.
type Query struct {
	Intent Intent

	// Budget in dollars per month. Valid only when HasBudget is set.
	Budget    float64
	HasBudget bool

	// State is an optional 2-letter US state code, empty when absent.
	State string

	// Compare operands, set for IntentCompare.
	CompareA string
	CompareB string

	// Growth parameters, set for IntentGrowth.
	Horizon   Horizon
	Direction Direction
}

var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true,
	"CO": true, "CT": true, "DE": true, "FL": true, "GA": true,
	"HI": true, "ID": true, "IL": true, "IN": true, "IA": true,
	"KS": true, "KY": true, "LA": true, "ME": true, "MD": true,
	"MA": true, "MI": true, "MN": true, "MS": true, "MO": true,
	"MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true,
	"SD": true, "TN": true, "TX": true, "UT": true, "VT": true,
	"VA": true, "WA": true, "WV": true, "WI": true, "WY": true,
}

// IsUSState reports whether code is a valid 2-letter US state code.
func IsUSState(code string) bool {
	return usStates[strings.ToUpper(code)]
}

var (
	numberRe    = regexp.MustCompile(`(\d+\.?\d*)`)
	inStateRe   = regexp.MustCompile(`(?i)\bin\s+([A-Za-z]{2})\b`)
	twoLetterRe = regexp.MustCompile(`\b([A-Za-z]{2})\b`)
	andSplitRe  = regexp.MustCompile(`(?i)\band\b`)
	compareRe   = regexp.MustCompile(`(?i)^compare`)
)

// ParseBudget extracts a monthly rent budget from free text. Amounts in a
// plausible monthly range (300 to 20000) win over other numbers in the
// message; otherwise the first number is used.
func ParseBudget(text string) (float64, bool) {
	cleaned := strings.ReplaceAll(text, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", " ")

	nums := numberRe.FindAllString(cleaned, -1)
	if len(nums) == 0 {
		return 0, false
	}
	for _, n := range nums {
		v, err := strconv.ParseFloat(n, 64)
		if err != nil {
			continue
		}
		if v >= 300 && v <= 20000 {
			return v, true
		}
	}
	v, err := strconv.ParseFloat(nums[0], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseState pulls a 2-letter US state code from the text. Explicit
// "in CA" patterns are preferred; after that only tokens that are
// uppercase in the original text count, so the "me" in "show me" is not
// mistaken for Maine. Returns "" when no state is found.
func ParseState(text string) string {
	if m := inStateRe.FindStringSubmatch(text); m != nil {
		code := strings.ToUpper(m[1])
		if usStates[code] {
			return code
		}
	}
	for _, m := range twoLetterRe.FindAllStringSubmatch(text, -1) {
		token := m[1]
		if token == strings.ToUpper(token) && usStates[token] {
			return token
		}
	}
	return ""
}

// ParseComparePair extracts the operands of a "compare X and Y" request.
func ParseComparePair(text string) (a, b string, ok bool) {
	if !strings.Contains(strings.ToLower(text), "compare") {
		return "", "", false
	}
	parts := andSplitRe.Split(text, -1)
	if len(parts) < 2 {
		return "", "", false
	}
	a = strings.Trim(compareRe.ReplaceAllString(strings.TrimSpace(parts[len(parts)-2]), ""), ",. ")
	b = strings.Trim(parts[len(parts)-1], ",. ")
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

// ParseGrowth detects a question about up-and-coming or declining markets
// and its horizon. The 3-year horizon is the default.
func ParseGrowth(text string) (Horizon, Direction, bool) {
	t := strings.ToLower(text)

	var dir Direction
	switch {
	case containsAny(t, "up-and-coming", "up and coming", "rising", "growing"):
		dir = DirectionUp
	case containsAny(t, "declining", "falling", "going down", "cooling"):
		dir = DirectionDown
	default:
		return "", "", false
	}

	horizon := Horizon3Yr
	if containsAny(t, "5 year", "five year", "5-year") {
		horizon = Horizon5Yr
	}
	return horizon, dir, true
}

// IsGreeting reports whether the message is a bare greeting.
func IsGreeting(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	switch t {
	case "hi", "hello", "hey", "yo", "hi there", "good morning", "good evening":
		return true
	}
	return strings.HasPrefix(t, "hi ") || strings.HasPrefix(t, "hello ") || strings.HasPrefix(t, "hey ")
}

// IsRelocationRelated is a keyword heuristic for whether the message is
// about rent, metros, or moving at all.
func IsRelocationRelated(text string) bool {
	return containsAny(strings.ToLower(text),
		"rent", "rental", "apartment", "flat", "housing",
		"move", "moving", "relocate", "relocation",
		"city", "metro", "neighborhood", "budget",
		"cheapest", "affordable", "expensive", "compare",
		"cost of living", "up-and-coming", "up and coming", "declining",
		"market",
	)
}

func isCheapestRequest(t string) bool {
	return containsAny(t, "cheapest", "low cost", "least expensive", "most affordable", "affordable metros")
}

func isMostExpensiveRequest(t string) bool {
	return containsAny(t, "most expensive", "high cost", "priciest", "top expensive")
}

func isOverviewRequest(t string) bool {
	return containsAny(t, "overview", "summary", "average rent", "typical rent", "median rent", "market stats", "statistics")
}

// ClassifyMessage maps a free-text message to a Query. Classification is a
// flat keyword lookup; the first matching category wins.
func ClassifyMessage(text string) Query {
	text = strings.TrimSpace(text)
	q := Query{State: ParseState(text)}

	if text == "" || IsGreeting(text) {
		q.Intent = IntentGreeting
		return q
	}
	if !IsRelocationRelated(text) {
		q.Intent = IntentOffTopic
		return q
	}

	if a, b, ok := ParseComparePair(text); ok {
		q.Intent = IntentCompare
		q.CompareA, q.CompareB = a, b
		return q
	}
	if horizon, dir, ok := ParseGrowth(text); ok {
		q.Intent = IntentGrowth
		q.Horizon, q.Direction = horizon, dir
		return q
	}

	t := strings.ToLower(text)
	switch {
	case isCheapestRequest(t):
		q.Intent = IntentCheapest
	case isMostExpensiveRequest(t):
		q.Intent = IntentMostExpensive
	case isOverviewRequest(t):
		q.Intent = IntentOverview
	default:
		if budget, ok := ParseBudget(text); ok {
			q.Intent = IntentBudget
			q.Budget, q.HasBudget = budget, true
		} else {
			q.Intent = IntentBrowse
		}
	}
	return q
}

func containsAny(t string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}
