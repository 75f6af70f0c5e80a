package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/poiesic/scout/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyResponse is returned when the model produces no choices.
var ErrEmptyResponse = errors.New("openai: model returned no choices")

// jsonClient runs JSON-mode chat completions against a langchaingo model.
type jsonClient struct {
	model       llms.Model
	temperature float64
	attempts    int
	logger      *slog.Logger
}

// newModel builds the langchaingo client for an OpenAI-compatible endpoint.
func newModel(config *ai.Config) (llms.Model, error) {
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newJSONClient(model llms.Model, config *ai.Config, component string) *jsonClient {
	return &jsonClient{
		model:       model,
		temperature: config.Temperature,
		attempts:    max(config.MaxAttempts, 1),
		logger:      slog.Default().With("component", component),
	}
}

// generate sends the system and human prompts and decodes the reply into
// out. Malformed JSON is retried; client errors are returned immediately.
func (c *jsonClient) generate(ctx context.Context, system, human string, out any) error {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, human),
	}

	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		response, err := c.model.GenerateContent(ctx, content,
			llms.WithTemperature(c.temperature), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return err
		}
		if len(response.Choices) < 1 {
			c.logger.Debug("no choices returned from model")
			return ErrEmptyResponse
		}

		text := repairJSON(stripFences(response.Choices[0].Content))
		if err := json.Unmarshal([]byte(text), out); err != nil {
			lastErr = err
			c.logger.Warn("error parsing model response",
				"attempt", attempt+1,
				"response", text,
				"err", err)
			continue
		}
		return nil
	}

	c.logger.Error("failed to parse model response after retries", "err", lastErr)
	return lastErr
}
