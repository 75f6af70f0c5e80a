package logic

import (
	"log/slog"

	"github.com/poiesic/scout/core"
)

// EvaluationMonitor provides hooks to observe an evaluation pass.
// Implement this interface to trace per-node candidates and results.
type EvaluationMonitor interface {
	Start(nodes []core.QueryNode, rosterSize int)
	NodeSkipped(node *core.QueryNode)
	CandidatesMatched(node *core.QueryNode, candidates []core.Creator)
	NodeEvaluated(node *core.QueryNode, result []core.Creator, baseSize int)
	Finish(results map[string][]core.Creator)
}

// noopMonitor is a no-op implementation of EvaluationMonitor
type noopMonitor struct{}

var _ EvaluationMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ []core.QueryNode, _ int)                          {}
func (n *noopMonitor) NodeSkipped(_ *core.QueryNode)                            {}
func (n *noopMonitor) CandidatesMatched(_ *core.QueryNode, _ []core.Creator)    {}
func (n *noopMonitor) NodeEvaluated(_ *core.QueryNode, _ []core.Creator, _ int) {}
func (n *noopMonitor) Finish(_ map[string][]core.Creator)                       {}

// LoggingMonitor writes each evaluation step to a logger at debug level.
type LoggingMonitor struct {
	logger *slog.Logger
}

var _ EvaluationMonitor = (*LoggingMonitor)(nil)

// NewLoggingMonitor creates a LoggingMonitor. A nil logger uses slog.Default().
func NewLoggingMonitor(logger *slog.Logger) *LoggingMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingMonitor{logger: logger.With("component", "logic")}
}

func (l *LoggingMonitor) Start(nodes []core.QueryNode, rosterSize int) {
	l.logger.Debug("evaluating query", "nodes", len(nodes), "roster", rosterSize)
}

func (l *LoggingMonitor) NodeSkipped(node *core.QueryNode) {
	l.logger.Debug("node inactive", "node", node.ID)
}

func (l *LoggingMonitor) CandidatesMatched(node *core.QueryNode, candidates []core.Creator) {
	l.logger.Debug("candidates matched", "node", node.ID, "operator", node.Operator, "count", len(candidates))
}

func (l *LoggingMonitor) NodeEvaluated(node *core.QueryNode, result []core.Creator, baseSize int) {
	l.logger.Debug("node evaluated", "node", node.ID, "result", len(result), "base", baseSize)
}

func (l *LoggingMonitor) Finish(results map[string][]core.Creator) {
	l.logger.Debug("query evaluated", "nodes", len(results))
}
