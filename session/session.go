package session

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/logic"
)

// Roster supplies the creators a session evaluates against.
type Roster interface {
	ListCreators(ctx context.Context) ([]core.Creator, error)
}

// followerShortcut matches the one query answered without the parser.
var followerShortcut = regexp.MustCompile(`(?i)only creators with over (\d+) followers`)

// Session is an in-memory creator-discovery conversation.
// It is safe for concurrent use.
type Session struct {
	parser ai.QueryParser
	roster Roster
	settings

	mu              sync.Mutex
	nodes           []core.QueryNode
	semanticFilters []ai.SemanticFilter
}

// NewSession creates a session that parses queries with parser and
// evaluates them over roster.
func NewSession(parser ai.QueryParser, roster Roster, opts ...Option) (*Session, error) {
	if parser == nil {
		return nil, ErrParserRequired
	}
	if roster == nil {
		return nil, ErrRosterRequired
	}

	s := &Session{
		parser: parser,
		roster: roster,
		settings: settings{
			logger: slog.Default(),
			newID:  uuid.NewString,
		},
	}
	if err := applyOptions(&s.settings, opts); err != nil {
		return nil, err
	}
	s.logger = s.logger.With("component", "session")
	return s, nil
}

// Submit turns input into a new active node at the end of the chain.
// Parser failures are logged and produce a fallback node that treats the
// whole input as one topic; only an empty input or a cancelled context is
// an error.
func (s *Session) Submit(ctx context.Context, input string) (core.QueryNode, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return core.QueryNode{}, ErrEmptyQuery
	}

	if minFollowers, ok := matchFollowerShortcut(input); ok {
		node := core.QueryNode{
			Description: "> " + formatFollowers(minFollowers) + " Followers",
			Filters:     core.FilterCriteria{MinFollowers: core.Int64Ptr(minFollowers)},
		}
		return s.appendNode(node, input, nil), nil
	}

	s.mu.Lock()
	isFirst := len(s.nodes) == 0
	s.mu.Unlock()

	parsed, err := s.parse(ctx, input, isFirst)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return core.QueryNode{}, ctxErr
		}
		s.logger.Warn("query parse failed, using fallback", "input", input, "error", err)
		node := core.QueryNode{
			Description: input,
			Filters:     core.FilterCriteria{Topics: []string{input}},
		}
		return s.appendNode(node, input, nil), nil
	}

	filters := parsed.Filters
	if filters.IsEmpty() {
		filters.Topics = []string{input}
	}
	semantic := parsed.SemanticFilters
	if len(semantic) == 0 && len(filters.Topics) > 0 {
		semantic = []ai.SemanticFilter{{
			Type:        ai.SemanticVisual,
			Label:       filters.Topics[0],
			Description: filters.Topics[0] + " detected in content",
		}}
	}

	node := core.QueryNode{
		Operator:    parsed.Operator,
		Description: parsed.Description,
		Filters:     filters,
	}
	if node.Description == "" {
		node.Description = input
	}
	return s.appendNode(node, input, semantic), nil
}

func (s *Session) parse(ctx context.Context, input string, isFirst bool) (*ai.ParsedQuery, error) {
	if s.parseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.parseTimeout)
		defer cancel()
	}
	parsed, err := s.parser.ParseQuery(ctx, input, isFirst)
	if err != nil {
		return nil, err
	}
	if parsed == nil {
		return nil, ErrNoParseResult
	}
	return parsed, nil
}

// appendNode completes node under the lock: ID, parent, default operator.
func (s *Session) appendNode(node core.QueryNode, input string, semantic []ai.SemanticFilter) core.QueryNode {
	s.mu.Lock()
	defer s.mu.Unlock()

	node.ID = s.newID()
	node.IsActive = true
	node.RawInput = input
	if n := len(s.nodes); n > 0 {
		node.ParentID = s.nodes[n-1].ID
	}
	if node.Operator == "" {
		node.Operator = core.OperatorAnd
		if len(s.nodes) == 0 {
			node.Operator = core.OperatorRoot
		}
	}

	s.nodes = append(s.nodes, node)
	s.semanticFilters = semantic
	s.logger.Debug("query node added",
		"id", node.ID,
		"operator", node.Operator,
		"description", node.Description,
		"nodes", len(s.nodes))
	return node
}

func matchFollowerShortcut(input string) (int64, bool) {
	m := followerShortcut.FindStringSubmatch(input)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// formatFollowers renders 1000 and above in whole thousands ("50k").
func formatFollowers(n int64) string {
	if n >= 1000 {
		return strconv.FormatFloat(float64(n)/1000, 'f', 0, 64) + "k"
	}
	return strconv.FormatInt(n, 10)
}

// SemanticFilters returns the evidence descriptions of the last parsed query.
// It is empty after a shortcut or fallback submission.
func (s *Session) SemanticFilters() []ai.SemanticFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.semanticFilters)
}

// Toggle flips whether the node takes part in evaluation.
func (s *Session) Toggle(id string) (core.QueryNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.QueryNode{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	s.nodes[i].IsActive = !s.nodes[i].IsActive
	return s.nodes[i], nil
}

// Delete removes the node. Later nodes keep their ParentID.
func (s *Session) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)
	return nil
}

func (s *Session) indexOf(id string) int {
	return slices.IndexFunc(s.nodes, func(n core.QueryNode) bool { return n.ID == id })
}

// Nodes returns a snapshot of the chain in submission order.
func (s *Session) Nodes() []core.QueryNode {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := make([]core.QueryNode, len(s.nodes))
	copy(nodes, s.nodes)
	return nodes
}

// Reset clears the chain and the semantic filters.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = nil
	s.semanticFilters = nil
}

// Results evaluates the chain over the current roster. Inactive nodes map
// to empty lists.
func (s *Session) Results(ctx context.Context) (map[string][]core.Creator, error) {
	creators, err := s.roster.ListCreators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return logic.EvaluateWithMonitor(s.Nodes(), creators, s.monitor), nil
}

// Counts returns the size of each node's result.
func (s *Session) Counts(ctx context.Context) (map[string]int, error) {
	results, err := s.Results(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(results))
	for id, creators := range results {
		counts[id] = len(creators)
	}
	return counts, nil
}
