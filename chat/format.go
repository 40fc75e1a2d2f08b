package chat

import (
	"fmt"
	"math"
	"strings"

	"github.com/relomate/relomate"
)

const greetingReply = "Hello! I'm here to help you explore US metros using rental data.\n\n" +
	"Tell me your rent budget, ask for the cheapest metros, or ask me to compare cities."

var helpReply = strings.Join([]string{
	"I'm here to help with apartment hunting, rent levels, and relocation decisions based on rental data.",
	"",
	"Here are some example questions to try:",
	"- I have a $2,500 monthly rent budget and want an apartment in California.",
	"- Show me some of the cheapest metros in the US.",
	"- Compare Seattle, WA and Austin, TX.",
	"- What are some up-and-coming rental markets over the last 3 years?",
	"- Find metros under $1,800 per month in TX.",
	"",
	"If you ask about a rent budget, a city or state, or compare metros, I'll give you data-driven recommendations.",
}, "\n")

// dollars formats a whole-dollar amount with thousands separators.
func dollars(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

func metroLine(m *relomate.Metro) string {
	return fmt.Sprintf("- %s (%s) - ~$%s per month", m.Name, m.State, dollars(m.CurrentRent))
}

func formatStateNotInData(state string, states []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I couldn't find any rental data for the state %q in this dataset.\n\n", state)
	if len(states) == 0 {
		sb.WriteString("It looks like there are no state-level entries in the current dataset.")
		return sb.String()
	}
	sb.WriteString("Here are some states I do have data for:\n")
	for _, s := range states {
		fmt.Fprintf(&sb, "- %s\n", s)
	}
	sb.WriteString("\nYou can ask about one of these states (e.g. '$2500 in CA'), or leave out the state entirely to see results across the whole country.")
	return sb.String()
}

func formatCompareBothMissing(a, b string) string {
	return fmt.Sprintf("I couldn't find either %q or %q in the dataset. Try using full metro names like 'Seattle, WA'.", a, b)
}

func formatCompareOneMissing(missing string) string {
	return fmt.Sprintf("I found one metro but not %q. Try using the format 'City, ST' (e.g. 'Austin, TX').", missing)
}

func formatComparison(c relomate.Comparison) string {
	var sb strings.Builder
	sb.WriteString("Here's a comparison based on current rents:\n\n")
	fmt.Fprintf(&sb, "- %s\n", compareLine(c.A))
	fmt.Fprintf(&sb, "- %s\n\n", compareLine(c.B))

	diff := math.Abs(c.RentDiff)
	if diff > 0 {
		more := "more"
		if c.RentDiff < 0 {
			more = "less"
		}
		fmt.Fprintf(&sb, "%s is about $%s %s expensive per month.", c.B.Name, dollars(diff), more)
	} else {
		sb.WriteString("Both metros have similar rent levels in this dataset.")
	}
	return sb.String()
}

func compareLine(m *relomate.Metro) string {
	parts := []string{fmt.Sprintf("~$%s avg monthly rent", dollars(m.CurrentRent))}
	if !math.IsNaN(m.PctChange3Yr) {
		parts = append(parts, fmt.Sprintf("%+.1f%% over 3 years", m.PctChange3Yr))
	}
	if !math.IsNaN(m.PctChange5Yr) {
		parts = append(parts, fmt.Sprintf("%+.1f%% over 5 years", m.PctChange5Yr))
	}
	return fmt.Sprintf("%s (%s): %s", m.Name, m.State, strings.Join(parts, "; "))
}

func formatGrowthList(metros []*relomate.Metro, q relomate.Query) string {
	desc := "up-and-coming"
	if q.Direction == relomate.DirectionDown {
		desc = "declining"
	}
	horizonDesc := "3 years"
	if q.Horizon == relomate.Horizon5Yr {
		horizonDesc = "5 years"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here are some %s metros over the last %s:\n\n", desc, horizonDesc)
	for _, m := range metros {
		fmt.Fprintf(&sb, "- %s (%s) - ~$%s now, %+.1f%% change\n",
			m.Name, m.State, dollars(m.CurrentRent), m.PctChange(q.Horizon))
	}
	appendStateNote(&sb, q.State)
	return strings.TrimRight(sb.String(), "\n")
}

func formatRentList(metros []*relomate.Metro, sortBy relomate.SortOrder, state string) string {
	head := "Here are some of the cheapest metros by current average rent:"
	if sortBy == relomate.SortByRentDesc {
		head = "Here are some of the most expensive metros by current average rent:"
	}

	var sb strings.Builder
	sb.WriteString(head + "\n\n")
	for _, m := range metros {
		sb.WriteString(metroLine(m) + "\n")
	}
	appendStateNote(&sb, state)
	return strings.TrimRight(sb.String(), "\n")
}

func formatOverview(ov *relomate.MarketOverview) string {
	var sb strings.Builder
	sb.WriteString("Here's an overview of the rental market in this dataset:\n\n")
	fmt.Fprintf(&sb, "- %d metros across %d states\n", ov.Metros, ov.States)
	fmt.Fprintf(&sb, "- Average rent: ~$%s per month\n", dollars(ov.MeanRent))
	fmt.Fprintf(&sb, "- Median rent: ~$%s per month\n", dollars(ov.MedianRent))
	fmt.Fprintf(&sb, "- Spread: $%s standard deviation, from $%s up to $%s\n",
		dollars(ov.StdDevRent), dollars(ov.MinRent), dollars(ov.MaxRent))
	sb.WriteString("\nAsk about the cheapest metros, a rent budget, or compare two cities for details.")
	return sb.String()
}

func formatBudgetEmpty(budget float64) string {
	return fmt.Sprintf("I couldn't find metros with average rent under about $%s. Try increasing your budget or omitting the state filter.", dollars(budget))
}

func formatBudgetList(metros []*relomate.Metro, q relomate.Query) string {
	var sb strings.Builder
	if q.State != "" {
		fmt.Fprintf(&sb, "Here are metros in %s with average monthly rent roughly under your budget of ~$%s:\n\n", q.State, dollars(q.Budget))
	} else {
		fmt.Fprintf(&sb, "Here are metros with average monthly rent roughly under your budget of ~$%s:\n\n", dollars(q.Budget))
	}
	for _, m := range metros {
		fmt.Fprintf(&sb, "- %s (%s) - ~$%s per month, trend: %s\n",
			m.Name, m.State, dollars(m.CurrentRent), m.Trend)
	}
	sb.WriteString("\nYou can also ask about trends or compare specific metros.")
	return sb.String()
}

func formatBrowseList(metros []*relomate.Metro) string {
	var sb strings.Builder
	sb.WriteString("I didn't see a clear budget, so here are some of the cheaper metros by current rent:\n\n")
	for _, m := range metros {
		sb.WriteString(metroLine(m) + "\n")
	}
	sb.WriteString("\nTell me your rent budget (e.g. '$2500 in CA') and I'll filter results further.")
	return sb.String()
}

func appendStateNote(sb *strings.Builder, state string) {
	if state != "" {
		fmt.Fprintf(sb, "\n(Filtered to %s.)", state)
	}
}
