package logic

import (
	"slices"
	"strings"

	"github.com/poiesic/scout/core"
)

// stemAliases broaden a keyword containing the stem to any creator topic
// containing the same stem.
var stemAliases = []string{"coffee", "basket", "fit", "fash"}

var platformNames = map[string]string{
	"tiktok":    "TikTok",
	"youtube":   "YouTube",
	"instagram": "Instagram",
}

// matcher is the compiled form of one node's FilterCriteria.
type matcher struct {
	criteria core.FilterCriteria

	requireMale   bool
	requireFemale bool
	locationHints [][]string // each entry: creator location must contain one of these
	platforms     []string
	keywords      []string
	passAll       bool
}

func newMatcher(f core.FilterCriteria) *matcher {
	m := &matcher{criteria: f}
	if f.IsEmpty() {
		m.passAll = true
		return m
	}

	joined := strings.ToLower(strings.Join(f.Topics, " "))
	has := func(phrases ...string) bool {
		return slices.ContainsFunc(phrases, func(p string) bool { return strings.Contains(joined, p) })
	}

	// Control phrases are plain substrings of the joined topics, so "ny"
	// also fires inside words like "funny".
	if f.Gender == "" {
		m.requireMale = has("only male") || (has("male") && !has("female"))
		m.requireFemale = has("female", "woman", "women")
	}

	if f.Location == "" {
		if has("ny", "nyc", "new york") {
			m.locationHints = append(m.locationHints, []string{"new york", "ny"})
		}
		if has("la", "los angeles") {
			m.locationHints = append(m.locationHints, []string{"los angeles", "la"})
		}
	}

	if f.Platform == "" {
		for _, name := range []string{"tiktok", "youtube", "instagram"} {
			if has(name) {
				m.platforms = append(m.platforms, platformNames[name])
			}
		}
	}

	m.keywords = ContentKeywords(f.Topics)
	return m
}

// MatchCreator reports whether creator satisfies criteria under the
// layered policy: explicit filters first, then topic heuristics for the
// filters left unset, then content keywords.
func MatchCreator(criteria core.FilterCriteria, creator *core.Creator) bool {
	return newMatcher(criteria).match(creator)
}

func (m *matcher) match(c *core.Creator) bool {
	if m.passAll {
		return true
	}
	return m.matchExplicit(c) && m.matchHeuristics(c) && m.matchKeywords(c)
}

func (m *matcher) matchExplicit(c *core.Creator) bool {
	f := m.criteria
	if f.Gender != "" && !strings.EqualFold(c.Gender, f.Gender) {
		return false
	}
	if f.Location != "" && !containsFold(c.Location, f.Location) {
		return false
	}
	if f.Platform != "" && !strings.EqualFold(c.Platform, f.Platform) {
		return false
	}
	if f.MinFollowers != nil && (*f.MinFollowers < 0 || c.Followers < *f.MinFollowers) {
		return false
	}
	if f.MinEngagement != nil && (*f.MinEngagement < 0 || c.EngagementRate < *f.MinEngagement) {
		return false
	}
	return true
}

func (m *matcher) matchHeuristics(c *core.Creator) bool {
	if m.requireMale && !strings.EqualFold(c.Gender, "male") {
		return false
	}
	if m.requireFemale && !strings.EqualFold(c.Gender, "female") {
		return false
	}
	for _, hints := range m.locationHints {
		if !slices.ContainsFunc(hints, func(h string) bool { return containsFold(c.Location, h) }) {
			return false
		}
	}
	for _, p := range m.platforms {
		if !strings.EqualFold(c.Platform, p) {
			return false
		}
	}
	return true
}

func (m *matcher) matchKeywords(c *core.Creator) bool {
	if len(m.keywords) == 0 {
		return true
	}
	name := strings.ToLower(c.Name)
	handle := strings.ToLower(c.Handle)
	topics := make([]string, len(c.Topics))
	for i, t := range c.Topics {
		topics[i] = strings.ToLower(t)
	}
	topicHas := func(s string) bool {
		return slices.ContainsFunc(topics, func(t string) bool { return strings.Contains(t, s) })
	}

	for _, k := range m.keywords {
		for _, stem := range stemAliases {
			if strings.Contains(k, stem) && topicHas(stem) {
				return true
			}
		}
		if strings.Contains(name, k) || strings.Contains(handle, k) || topicHas(k) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
