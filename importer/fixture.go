package importer

import (
	"fmt"
	"os"
	"time"

	"github.com/poiesic/scout/core"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML form of a catalog: creators with their posts nested.
type Fixture struct {
	Creators []CreatorRecord `yaml:"creators"`
}

// CreatorRecord is one creator in a fixture.
type CreatorRecord struct {
	ID             string       `yaml:"id"`
	Name           string       `yaml:"name"`
	Handle         string       `yaml:"handle"`
	Avatar         string       `yaml:"avatar"`
	Gender         string       `yaml:"gender"`
	Location       string       `yaml:"location"`
	Platform       string       `yaml:"platform"`
	Followers      int64        `yaml:"followers"`
	EngagementRate float64      `yaml:"engagement_rate"`
	Topics         []string     `yaml:"topics"`
	Bio            string       `yaml:"bio"`
	Posts          []PostRecord `yaml:"posts"`
}

// PostRecord is one post in a fixture. The owning creator is implied by
// nesting.
type PostRecord struct {
	ID          string         `yaml:"id"`
	Thumbnail   string         `yaml:"thumbnail"`
	ContentType string         `yaml:"content_type"`
	Caption     string         `yaml:"caption"`
	PostedAt    time.Time      `yaml:"posted_at"`
	Stats       StatsRecord    `yaml:"stats"`
	Signals     []SignalRecord `yaml:"signals"`
}

// StatsRecord holds post metrics.
type StatsRecord struct {
	Views    int64 `yaml:"views"`
	Likes    int64 `yaml:"likes"`
	Comments int64 `yaml:"comments"`
	Shares   int64 `yaml:"shares"`
}

// SignalRecord is one piece of relevance evidence. Frequency defaults to 1.
type SignalRecord struct {
	Type       string  `yaml:"type"`
	Confidence float64 `yaml:"confidence"`
	Frequency  *int    `yaml:"frequency"`
	Density    string  `yaml:"density"`
	Excerpt    string  `yaml:"excerpt"`
	Timestamp  string  `yaml:"timestamp"`
	Context    string  `yaml:"context"`
}

// LoadFixture reads and parses a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture parses and validates fixture YAML.
func ParseFixture(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", ErrInvalidFixture, err)
	}
	if err := fixture.Validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

// Validate checks every record against the domain rules and rejects
// duplicate creator or post IDs.
func (f *Fixture) Validate() error {
	creators, posts := f.Records()

	seenCreators := make(map[string]bool, len(creators))
	for i, c := range creators {
		if err := core.ValidateCreator(c); err != nil {
			return fmt.Errorf("%w: creators[%d]: %w", ErrInvalidFixture, i, err)
		}
		if seenCreators[c.ID] {
			return fmt.Errorf("%w: duplicate creator id %q", ErrInvalidFixture, c.ID)
		}
		seenCreators[c.ID] = true
	}

	seenPosts := make(map[string]bool, len(posts))
	for _, p := range posts {
		if err := core.ValidatePost(p); err != nil {
			return fmt.Errorf("%w: creator %s: %w", ErrInvalidFixture, p.CreatorID, err)
		}
		if seenPosts[p.ID] {
			return fmt.Errorf("%w: duplicate post id %q", ErrInvalidFixture, p.ID)
		}
		seenPosts[p.ID] = true
	}
	return nil
}

// Records converts the fixture to domain values, creators in file order
// and posts grouped by creator in file order.
func (f *Fixture) Records() ([]*core.Creator, []*core.Post) {
	creators := make([]*core.Creator, 0, len(f.Creators))
	var posts []*core.Post

	for _, rec := range f.Creators {
		creators = append(creators, &core.Creator{
			ID:             rec.ID,
			Name:           rec.Name,
			Handle:         rec.Handle,
			Avatar:         rec.Avatar,
			Gender:         rec.Gender,
			Location:       rec.Location,
			Platform:       rec.Platform,
			Followers:      rec.Followers,
			EngagementRate: rec.EngagementRate,
			Topics:         rec.Topics,
			Bio:            rec.Bio,
		})
		for _, p := range rec.Posts {
			posts = append(posts, p.post(rec.ID))
		}
	}
	return creators, posts
}

func (p PostRecord) post(creatorID string) *core.Post {
	post := &core.Post{
		ID:          p.ID,
		CreatorID:   creatorID,
		Thumbnail:   p.Thumbnail,
		ContentType: core.ContentType(p.ContentType),
		Caption:     p.Caption,
		PostedAt:    p.PostedAt.UTC(),
		Stats: core.PostStats{
			Views:    p.Stats.Views,
			Likes:    p.Stats.Likes,
			Comments: p.Stats.Comments,
			Shares:   p.Stats.Shares,
		},
	}
	for _, s := range p.Signals {
		frequency := 1
		if s.Frequency != nil {
			frequency = *s.Frequency
		}
		post.Signals = append(post.Signals, core.Signal{
			Type:       core.SignalType(s.Type),
			Confidence: s.Confidence,
			Frequency:  frequency,
			Density:    core.Density(s.Density),
			Excerpt:    s.Excerpt,
			Timestamp:  s.Timestamp,
			Context:    s.Context,
		})
	}
	return post
}
