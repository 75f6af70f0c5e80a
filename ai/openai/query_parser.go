// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"math"
	"strings"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/tmc/langchaingo/llms"
)

// QueryParser implements ai.QueryParser using OpenAI-compatible chat APIs.
type QueryParser struct {
	client *jsonClient
}

// queryResponse matches the JSON object the model is asked to produce.
type queryResponse struct {
	Operator        string             `json:"operator"`
	Description     string             `json:"description"`
	Filters         *criteriaResponse  `json:"filters"`
	SemanticFilters []semanticResponse `json:"semanticFilters"`
}

type criteriaResponse struct {
	Gender        string   `json:"gender"`
	Location      string   `json:"location"`
	Topics        []string `json:"topics"`
	Platform      string   `json:"platform"`
	MinFollowers  *float64 `json:"minFollowers"`
	MinEngagement *float64 `json:"minEngagement"`
}

type semanticResponse struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// newQueryParser is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryParser(config *ai.Config) (*QueryParser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	model, err := newModel(config)
	if err != nil {
		return nil, err
	}
	return newQueryParserWithModel(model, config), nil
}

func newQueryParserWithModel(model llms.Model, config *ai.Config) *QueryParser {
	return &QueryParser{client: newJSONClient(model, config, "openai-query-parser")}
}

// NewQueryParser creates a creator query parser using the provided configuration.
//
// Returns ai.QueryParser interface to enforce abstraction.
func NewQueryParser(config *ai.Config) (ai.QueryParser, error) {
	return newQueryParser(config)
}

// NewQueryParserWithModel creates a creator query parser on top of an
// existing langchaingo model.
func NewQueryParserWithModel(model llms.Model, config *ai.Config) (ai.QueryParser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return newQueryParserWithModel(model, config), nil
}

// ParseQuery asks the model to structure input. Values the engines cannot
// use (unknown operators, unknown semantic filter types, blank topics) are
// dropped rather than reported.
func (p *QueryParser) ParseQuery(ctx context.Context, input string, isFirst bool) (*ai.ParsedQuery, error) {
	var resp queryResponse
	if err := p.client.generate(ctx, querySystemPrompt, buildQueryPrompt(input, isFirst), &resp); err != nil {
		return nil, err
	}

	parsed := &ai.ParsedQuery{
		Operator:    parseOperator(resp.Operator),
		Description: strings.TrimSpace(resp.Description),
	}
	if resp.Filters != nil {
		parsed.Filters = resp.Filters.criteria()
	}
	for _, sf := range resp.SemanticFilters {
		typ, ok := parseSemanticType(sf.Type)
		if !ok || strings.TrimSpace(sf.Label) == "" {
			continue
		}
		parsed.SemanticFilters = append(parsed.SemanticFilters, ai.SemanticFilter{
			Type:        typ,
			Label:       strings.TrimSpace(sf.Label),
			Description: strings.TrimSpace(sf.Description),
		})
	}

	p.client.logger.Debug("parsed query",
		"operator", parsed.Operator,
		"topics", len(parsed.Filters.Topics),
		"semantic_filters", len(parsed.SemanticFilters))
	return parsed, nil
}

func (c *criteriaResponse) criteria() core.FilterCriteria {
	criteria := core.FilterCriteria{
		Gender:   strings.TrimSpace(c.Gender),
		Location: strings.TrimSpace(c.Location),
		Platform: strings.TrimSpace(c.Platform),
	}
	for _, topic := range c.Topics {
		if topic = strings.TrimSpace(topic); topic != "" {
			criteria.Topics = append(criteria.Topics, topic)
		}
	}
	if c.MinFollowers != nil {
		criteria.MinFollowers = core.Int64Ptr(int64(math.Round(*c.MinFollowers)))
	}
	if c.MinEngagement != nil {
		criteria.MinEngagement = core.Float64Ptr(*c.MinEngagement)
	}
	return criteria
}

// parseOperator maps the model's operator to a core.Operator, or "" when
// it is not one of the four known operators.
func parseOperator(s string) core.Operator {
	op := core.Operator(strings.ToUpper(strings.TrimSpace(s)))
	if core.ValidateOperator(op) != nil {
		return ""
	}
	return op
}

func parseSemanticType(s string) (ai.SemanticFilterType, bool) {
	switch typ := ai.SemanticFilterType(strings.ToLower(strings.TrimSpace(s))); typ {
	case ai.SemanticVisual, ai.SemanticAudio, ai.SemanticContext, ai.SemanticNotes:
		return typ, true
	}
	return "", false
}
