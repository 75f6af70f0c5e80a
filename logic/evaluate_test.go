package logic

import (
	"testing"

	"github.com/poiesic/scout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster() []core.Creator {
	return []core.Creator{
		{ID: "c1", Name: "Ava Brew", Handle: "@avabrews", Gender: "Female", Location: "Brooklyn, NY", Platform: "Instagram",
			Followers: 120000, EngagementRate: 4.5, Topics: []string{"Coffee", "Latte Art"}},
		{ID: "c2", Name: "Marcus Lift", Handle: "@marcuslifts", Gender: "Male", Location: "Los Angeles, CA", Platform: "TikTok",
			Followers: 900000, EngagementRate: 2.1, Topics: []string{"Fitness", "Nutrition"}},
		{ID: "c3", Name: "Jade Hoops", Handle: "@jadehoops", Gender: "Female", Location: "Los Angeles, CA", Platform: "YouTube",
			Followers: 45000, EngagementRate: 7.8, Topics: []string{"Basketball", "Sneakers"}},
		{ID: "c4", Name: "Theo Roast", Handle: "@theoroasts", Gender: "Male", Location: "New York, NY", Platform: "TikTok",
			Followers: 300000, EngagementRate: 5.2, Topics: []string{"Coffee", "Travel"}},
		{ID: "c5", Name: "Lena Style", Handle: "@lenastyle", Gender: "Female", Location: "Austin, TX", Platform: "Instagram",
			Followers: 60000, EngagementRate: 3.3, Topics: []string{"Fashion", "Fitness"}},
	}
}

func node(id string, op core.Operator, f core.FilterCriteria) core.QueryNode {
	return core.QueryNode{ID: id, Operator: op, Filters: f, IsActive: true}
}

func topics(t ...string) core.FilterCriteria {
	return core.FilterCriteria{Topics: t}
}

func creatorIDs(creators []core.Creator) []string {
	out := make([]string, len(creators))
	for i, c := range creators {
		out[i] = c.ID
	}
	return out
}

func TestEvaluate_Empty(t *testing.T) {
	results := Evaluate(nil, roster())
	assert.Empty(t, results)
}

func TestEvaluate_RootTopicIgnoresCase(t *testing.T) {
	results := Evaluate([]core.QueryNode{node("n1", core.OperatorRoot, topics("coffee"))}, roster())

	assert.Equal(t, []string{"c1", "c4"}, creatorIDs(results["n1"]))
}

func TestEvaluate_RootThenAndIsSubset(t *testing.T) {
	nodes := []core.QueryNode{
		node("n1", core.OperatorRoot, topics("coffee")),
		node("n2", core.OperatorAnd, core.FilterCriteria{Gender: "female"}),
	}

	results := Evaluate(nodes, roster())

	assert.Equal(t, []string{"c1", "c4"}, creatorIDs(results["n1"]))
	assert.Equal(t, []string{"c1"}, creatorIDs(results["n2"]))
	assert.Subset(t, creatorIDs(results["n1"]), creatorIDs(results["n2"]))
}

func TestEvaluate_AndNarrowsCumulatively(t *testing.T) {
	nodes := []core.QueryNode{
		node("n1", core.OperatorRoot, core.FilterCriteria{MinFollowers: core.Int64Ptr(50000)}),
		node("n2", core.OperatorAnd, core.FilterCriteria{Platform: "tiktok"}),
		node("n3", core.OperatorAnd, core.FilterCriteria{MinEngagement: core.Float64Ptr(5)}),
	}

	results := Evaluate(nodes, roster())

	assert.Equal(t, []string{"c1", "c2", "c4", "c5"}, creatorIDs(results["n1"]))
	assert.Equal(t, []string{"c2", "c4"}, creatorIDs(results["n2"]))
	assert.Equal(t, []string{"c4"}, creatorIDs(results["n3"]))
}

func TestEvaluate_OrDoesNotTouchBase(t *testing.T) {
	nodes := []core.QueryNode{
		node("n1", core.OperatorRoot, topics("coffee")),
		node("n2", core.OperatorOr, topics("hoops")),
		node("n3", core.OperatorAnd, core.FilterCriteria{Platform: "TikTok"}),
	}

	results := Evaluate(nodes, roster())

	assert.Equal(t, []string{"c3"}, creatorIDs(results["n2"]))
	assert.Equal(t, []string{"c4"}, creatorIDs(results["n3"]))
}

func TestEvaluate_NotExcludesFromBase(t *testing.T) {
	nodes := []core.QueryNode{
		node("n1", core.OperatorRoot, core.FilterCriteria{}),
		node("n2", core.OperatorNot, core.FilterCriteria{Platform: "TikTok"}),
		node("n3", core.OperatorAnd, core.FilterCriteria{Gender: "Female"}),
	}

	results := Evaluate(nodes, roster())

	assert.Len(t, results["n1"], 5)
	require.Contains(t, results, "n2")
	assert.NotNil(t, results["n2"])
	assert.Empty(t, results["n2"])
	assert.Equal(t, []string{"c1", "c3", "c5"}, creatorIDs(results["n3"]))
}

func TestEvaluate_InactiveNodeSkipped(t *testing.T) {
	nodes := []core.QueryNode{
		node("n1", core.OperatorRoot, topics("fitness")),
		node("n2", core.OperatorAnd, core.FilterCriteria{Gender: "male"}),
		node("n3", core.OperatorAnd, core.FilterCriteria{}),
	}
	nodes[1].IsActive = false

	results := Evaluate(nodes, roster())

	assert.Equal(t, []string{"c2", "c5"}, creatorIDs(results["n1"]))
	assert.NotNil(t, results["n2"])
	assert.Empty(t, results["n2"])
	assert.Equal(t, []string{"c2", "c5"}, creatorIDs(results["n3"]))
}

func TestEvaluate_AndWithoutRootStartsEmpty(t *testing.T) {
	results := Evaluate([]core.QueryNode{node("n1", core.OperatorAnd, topics("coffee"))}, roster())

	assert.NotNil(t, results["n1"])
	assert.Empty(t, results["n1"])
}

func TestEvaluate_UnknownOperator(t *testing.T) {
	nodes := []core.QueryNode{
		node("n1", core.OperatorRoot, topics("coffee")),
		node("n2", core.Operator("XOR"), core.FilterCriteria{}),
		node("n3", core.OperatorAnd, core.FilterCriteria{}),
	}

	results := Evaluate(nodes, roster())

	assert.Empty(t, results["n2"])
	assert.Equal(t, []string{"c1", "c4"}, creatorIDs(results["n3"]))
}

func TestEvaluate_AllInactive(t *testing.T) {
	nodes := []core.QueryNode{node("n1", core.OperatorRoot, topics("coffee"))}
	nodes[0].IsActive = false

	results := Evaluate(nodes, roster())

	assert.Empty(t, results["n1"])
}

func TestEvaluate_DoesNotMutateRoster(t *testing.T) {
	creators := roster()
	before := roster()

	Evaluate([]core.QueryNode{
		node("n1", core.OperatorRoot, topics("coffee")),
		node("n2", core.OperatorNot, topics("travel")),
	}, creators)

	assert.Equal(t, before, creators)
}

type recordingMonitor struct {
	started   bool
	skipped   []string
	evaluated []string
	finished  int
}

func (r *recordingMonitor) Start(_ []core.QueryNode, _ int) {
	r.started = true
}

func (r *recordingMonitor) NodeSkipped(n *core.QueryNode) {
	r.skipped = append(r.skipped, n.ID)
}

func (r *recordingMonitor) CandidatesMatched(_ *core.QueryNode, _ []core.Creator) {}

func (r *recordingMonitor) NodeEvaluated(n *core.QueryNode, _ []core.Creator, _ int) {
	r.evaluated = append(r.evaluated, n.ID)
}

func (r *recordingMonitor) Finish(results map[string][]core.Creator) {
	r.finished = len(results)
}

func TestEvaluateWithMonitor(t *testing.T) {
	nodes := []core.QueryNode{
		node("n1", core.OperatorRoot, topics("coffee")),
		node("n2", core.OperatorAnd, topics("travel")),
	}
	nodes[1].IsActive = false
	mon := &recordingMonitor{}

	EvaluateWithMonitor(nodes, roster(), mon)

	assert.True(t, mon.started)
	assert.Equal(t, []string{"n2"}, mon.skipped)
	assert.Equal(t, []string{"n1"}, mon.evaluated)
	assert.Equal(t, 2, mon.finished)
}

func TestEvaluateWithMonitor_Logging(t *testing.T) {
	results := EvaluateWithMonitor([]core.QueryNode{node("n1", core.OperatorRoot, topics("coffee"))}, roster(), NewLoggingMonitor(nil))
	assert.Len(t, results["n1"], 2)
}
