package openai

import (
	"context"
	"errors"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// scriptedModel is an llms.Model that replays canned replies and records
// the prompts it receives.
type scriptedModel struct {
	mu       sync.Mutex
	replies  []string
	err      error
	noChoice bool
	calls    [][]llms.MessageContent
}

var _ llms.Model = (*scriptedModel)(nil)

func (m *scriptedModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, messages)
	if m.err != nil {
		return nil, m.err
	}
	if m.noChoice {
		return &llms.ContentResponse{}, nil
	}
	if len(m.replies) == 0 {
		return nil, errors.New("no replies left")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: reply}}}, nil
}

func (m *scriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func (m *scriptedModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// humanPrompt returns the text of the human message of call i.
func (m *scriptedModel) humanPrompt(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.calls[i] {
		if msg.Role != llms.ChatMessageTypeHuman {
			continue
		}
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				return text.Text
			}
		}
	}
	return ""
}
