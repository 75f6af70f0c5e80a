package logic

import (
	"github.com/poiesic/scout/core"
)

// Evaluate runs nodes in order against creators and returns, per node ID,
// the creators that node contributes to the displayed result. Every
// result list follows the order of creators. Inactive nodes and nodes
// with an unknown operator contribute an empty list and leave the
// running base set untouched.
func Evaluate(nodes []core.QueryNode, creators []core.Creator) map[string][]core.Creator {
	return EvaluateWithMonitor(nodes, creators, nil)
}

// EvaluateWithMonitor is Evaluate with monitoring.
// The monitor receives callbacks at each step of the fold.
func EvaluateWithMonitor(nodes []core.QueryNode, creators []core.Creator, monitor EvaluationMonitor) map[string][]core.Creator {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(nodes, len(creators))

	results := make(map[string][]core.Creator, len(nodes))
	var base []core.Creator

	for i := range nodes {
		node := &nodes[i]
		if !node.IsActive {
			results[node.ID] = []core.Creator{}
			monitor.NodeSkipped(node)
			continue
		}

		candidates := Candidates(node.Filters, creators)
		monitor.CandidatesMatched(node, candidates)

		var result []core.Creator
		switch node.Operator {
		case core.OperatorRoot:
			result = candidates
			base = candidates
		case core.OperatorAnd:
			result = intersect(base, candidates)
			base = result
		case core.OperatorOr:
			result = candidates
		case core.OperatorNot:
			result = []core.Creator{}
			base = subtract(base, candidates)
		default:
			result = []core.Creator{}
		}

		results[node.ID] = result
		monitor.NodeEvaluated(node, result, len(base))
	}

	monitor.Finish(results)
	return results
}

// Candidates returns the creators matching criteria, in roster order.
func Candidates(criteria core.FilterCriteria, creators []core.Creator) []core.Creator {
	m := newMatcher(criteria)
	out := make([]core.Creator, 0, len(creators))
	for i := range creators {
		if m.match(&creators[i]) {
			out = append(out, creators[i])
		}
	}
	return out
}

func idSet(creators []core.Creator) map[string]bool {
	set := make(map[string]bool, len(creators))
	for _, c := range creators {
		set[c.ID] = true
	}
	return set
}

// intersect keeps the creators of base that also appear in other.
func intersect(base, other []core.Creator) []core.Creator {
	keep := idSet(other)
	out := make([]core.Creator, 0, min(len(base), len(other)))
	for _, c := range base {
		if keep[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// subtract keeps the creators of base that do not appear in other.
func subtract(base, other []core.Creator) []core.Creator {
	drop := idSet(other)
	out := make([]core.Creator, 0, len(base))
	for _, c := range base {
		if !drop[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
