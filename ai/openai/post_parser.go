package openai

import (
	"context"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/tmc/langchaingo/llms"
)

// PostQueryParser implements ai.PostQueryParser using OpenAI-compatible chat APIs.
type PostQueryParser struct {
	client *jsonClient
	now    func() time.Time
}

type postQueryResponse struct {
	Filters *postFiltersResponse `json:"filters"`
	SortBy  string               `json:"sortBy"`
}

type postFiltersResponse struct {
	ContentTypes []string `json:"contentTypes"`
	SignalTypes  []string `json:"signalTypes"`
	MinViews     *float64 `json:"minViews"`
	MinLikes     *float64 `json:"minLikes"`
	DateFrom     string   `json:"dateFrom"`
	DateTo       string   `json:"dateTo"`
	SearchTerm   string   `json:"searchTerm"`
}

func newPostQueryParser(config *ai.Config) (*PostQueryParser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	model, err := newModel(config)
	if err != nil {
		return nil, err
	}
	return newPostQueryParserWithModel(model, config), nil
}

func newPostQueryParserWithModel(model llms.Model, config *ai.Config) *PostQueryParser {
	return &PostQueryParser{
		client: newJSONClient(model, config, "openai-post-parser"),
		now:    time.Now,
	}
}

// NewPostQueryParser creates a post search parser using the provided configuration.
//
// Returns ai.PostQueryParser interface to enforce abstraction.
func NewPostQueryParser(config *ai.Config) (ai.PostQueryParser, error) {
	return newPostQueryParser(config)
}

// NewPostQueryParserWithModel creates a post search parser on top of an
// existing langchaingo model.
func NewPostQueryParserWithModel(model llms.Model, config *ai.Config) (ai.PostQueryParser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return newPostQueryParserWithModel(model, config), nil
}

// ParsePostQuery asks the model to structure input. Unknown content types,
// signal types and sort keys are dropped, as are dates that are neither
// RFC 3339 timestamps nor YYYY-MM-DD. A date-only DateTo covers the whole day.
func (p *PostQueryParser) ParsePostQuery(ctx context.Context, input string) (*ai.ParsedPostQuery, error) {
	var resp postQueryResponse
	prompt := buildPostQueryPrompt(input, p.now())
	if err := p.client.generate(ctx, postQuerySystemPrompt, prompt, &resp); err != nil {
		return nil, err
	}

	parsed := &ai.ParsedPostQuery{}
	if sort := core.SortKey(strings.ToLower(strings.TrimSpace(resp.SortBy))); core.IsValidSortKey(sort) {
		parsed.SortBy = sort
	}
	if resp.Filters != nil {
		parsed.Filters = p.filters(resp.Filters)
	}

	p.client.logger.Debug("parsed post query",
		"content_types", len(parsed.Filters.ContentTypes),
		"signal_types", len(parsed.Filters.SignalTypes),
		"search_term", parsed.Filters.SearchTerm,
		"sort", parsed.SortBy)
	return parsed, nil
}

func (p *PostQueryParser) filters(r *postFiltersResponse) core.PostFilterState {
	state := core.PostFilterState{SearchTerm: strings.TrimSpace(r.SearchTerm)}

	for _, s := range r.ContentTypes {
		if t, ok := parseContentType(s); ok && !slices.Contains(state.ContentTypes, t) {
			state.ContentTypes = append(state.ContentTypes, t)
		}
	}
	for _, s := range r.SignalTypes {
		if t, ok := parseSignalType(s); ok && !slices.Contains(state.SignalTypes, t) {
			state.SignalTypes = append(state.SignalTypes, t)
		}
	}
	if r.MinViews != nil {
		state.MinViews = core.Int64Ptr(int64(math.Round(*r.MinViews)))
	}
	if r.MinLikes != nil {
		state.MinLikes = core.Int64Ptr(int64(math.Round(*r.MinLikes)))
	}
	if from, ok := parseDate(r.DateFrom, false); ok {
		state.DateFrom = &from
	} else if r.DateFrom != "" {
		p.client.logger.Warn("ignoring unparseable date", "field", "dateFrom", "value", r.DateFrom)
	}
	if to, ok := parseDate(r.DateTo, true); ok {
		state.DateTo = &to
	} else if r.DateTo != "" {
		p.client.logger.Warn("ignoring unparseable date", "field", "dateTo", "value", r.DateTo)
	}
	return state
}

// parseContentType accepts any casing and a plural form ("reels").
func parseContentType(s string) (core.ContentType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range core.ContentTypes {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, string(t)+"s") {
			return t, true
		}
	}
	if strings.EqualFold(s, "stories") {
		return core.ContentStory, true
	}
	return "", false
}

func parseSignalType(s string) (core.SignalType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range core.SignalTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// parseDate reads an RFC 3339 timestamp or a YYYY-MM-DD date in UTC.
// With endOfDay, a date-only value is moved to the last instant of that day.
func parseDate(s string, endOfDay bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}
