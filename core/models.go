package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a fixed-width identifier used for storage index keys.
// It is derived from content hashing, never exposed as an entity key.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SignalType identifies the modality a piece of evidence was detected in.
type SignalType string

const (
	SignalCaption      SignalType = "caption"
	SignalAudio        SignalType = "audio"
	SignalVisual       SignalType = "visual"
	SignalPersonalNote SignalType = "personalNote"
)

// SignalTypes lists every known signal type in tie-break order.
var SignalTypes = []SignalType{SignalCaption, SignalAudio, SignalVisual, SignalPersonalNote}

// Density describes how prominent a signal is within a post.
type Density string

const (
	DensityProminent Density = "prominent"
	DensityModerate  Density = "moderate"
	DensityPassing   Density = "passing"
)

// Signal is one detected piece of relevance evidence.
type Signal struct {
	Type       SignalType
	Confidence float64 // 0-100, informational only
	Frequency  int     // occurrence count, >= 1
	Density    Density
	Excerpt    string
	Timestamp  string // optional position within the media
	Context    string // optional surrounding context
}

// SignalScoreDetail is the per-signal scoring record.
type SignalScoreDetail struct {
	Type                SignalType
	BasePoints          float64
	FrequencyMultiplier float64
	DensityMultiplier   float64
	TotalPoints         float64
}

// ScoreBreakdown is the result of scoring a post's signals.
// An empty DominantSignal means no signal type scored above zero.
type ScoreBreakdown struct {
	CaptionPoints      float64
	AudioPoints        float64
	VisualPoints       float64
	ReinforcementBonus float64
	BaseTotal          float64
	NormalizedScore    int
	SignalCount        int
	DominantSignal     SignalType
	SignalDetails      []SignalScoreDetail
}

// ContentType is the kind of post.
type ContentType string

const (
	ContentReel  ContentType = "Reel"
	ContentStory ContentType = "Story"
	ContentPost  ContentType = "Post"
	ContentVideo ContentType = "Video"
	ContentPaid  ContentType = "Paid"
)

// ContentTypes lists every known content type.
var ContentTypes = []ContentType{ContentReel, ContentStory, ContentPost, ContentVideo, ContentPaid}

// PostStats holds engagement counters.
type PostStats struct {
	Views    int64
	Likes    int64
	Comments int64
	Shares   int64
}

// Engagement returns likes + comments + shares.
func (s PostStats) Engagement() int64 {
	return s.Likes + s.Comments + s.Shares
}

// Post is a creator's piece of content with its detected signals.
// ScoreBreakdown and CompositeScore are filled in by ranking and never stored.
type Post struct {
	ID             string
	CreatorID      string
	Thumbnail      string
	ContentType    ContentType
	Caption        string
	PostedAt       time.Time
	Stats          PostStats
	Signals        []Signal
	ScoreBreakdown ScoreBreakdown
	CompositeScore float64
}

// Creator is a member of the roster.
type Creator struct {
	ID             string
	Name           string
	Handle         string
	Avatar         string
	Gender         string
	Location       string
	Platform       string
	Followers      int64
	EngagementRate float64
	Topics         []string
	Bio            string
}

// Operator combines a query node's candidates with the running base set.
type Operator string

const (
	OperatorRoot Operator = "ROOT"
	OperatorAnd  Operator = "AND"
	OperatorOr   Operator = "OR"
	OperatorNot  Operator = "NOT"
)

// FilterCriteria are the explicit and heuristic constraints of a query node.
// Empty strings and nil pointers mean the constraint is absent.
type FilterCriteria struct {
	Gender        string
	Location      string
	Platform      string
	MinFollowers  *int64
	MinEngagement *float64
	Topics        []string
}

// IsEmpty reports whether no constraint at all is set.
func (f FilterCriteria) IsEmpty() bool {
	return !f.HasExplicit() && len(f.Topics) == 0
}

// HasExplicit reports whether any non-topic constraint is set.
func (f FilterCriteria) HasExplicit() bool {
	return f.Gender != "" || f.Location != "" || f.Platform != "" ||
		f.MinFollowers != nil || f.MinEngagement != nil
}

// QueryNode is one step of a creator-discovery query.
type QueryNode struct {
	ID          string
	ParentID    string
	Operator    Operator
	Description string
	Filters     FilterCriteria
	IsActive    bool
	RawInput    string
}

// PostFilterState is a set of independently optional post predicates.
type PostFilterState struct {
	ContentTypes []ContentType
	SignalTypes  []SignalType
	MinViews     *int64
	MinLikes     *int64
	DateFrom     *time.Time
	DateTo       *time.Time
	SearchTerm   string
}

// IsEmpty reports whether no predicate is set.
func (f PostFilterState) IsEmpty() bool {
	return len(f.ContentTypes) == 0 && len(f.SignalTypes) == 0 &&
		f.MinViews == nil && f.MinLikes == nil &&
		f.DateFrom == nil && f.DateTo == nil && f.SearchTerm == ""
}

// SortKey selects how ranked posts are ordered for display.
type SortKey string

const (
	SortComposite  SortKey = "composite"
	SortSignals    SortKey = "signals"
	SortEngagement SortKey = "engagement"
	SortRecency    SortKey = "recency"
)

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}
