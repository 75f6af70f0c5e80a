package storage

import (
	"testing"
	"time"

	"github.com/poiesic/scout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalCreator(t *testing.T) {
	tests := []struct {
		name    string
		creator *core.Creator
	}{
		{
			name:    "minimal creator",
			creator: &core.Creator{ID: "c1", Name: "Ava"},
		},
		{
			name: "full creator",
			creator: &core.Creator{
				ID:             "c2",
				Name:           "Marcus Lee",
				Handle:         "@marcusbrews",
				Avatar:         "https://example.com/marcus.png",
				Gender:         "Male",
				Location:       "Los Angeles, CA",
				Platform:       "TikTok",
				Followers:      1250000,
				EngagementRate: 6.25,
				Topics:         []string{"coffee", "latte art"},
				Bio:            "Café hopping ☕ every weekend",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := UnmarshalCreator(MarshalCreator(tt.creator))
			require.NoError(t, err)
			assert.Equal(t, tt.creator, decoded)
		})
	}
}

func TestMarshalUnmarshalPost(t *testing.T) {
	posted := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	post := &core.Post{
		ID:          "p1",
		CreatorID:   "c1",
		Thumbnail:   "https://example.com/p1.jpg",
		ContentType: core.ContentReel,
		Caption:     "Morning pour-over #coffee",
		PostedAt:    posted,
		Stats:       core.PostStats{Views: 150000, Likes: 12000, Comments: 340, Shares: 95},
		Signals: []core.Signal{
			{Type: core.SignalCaption, Confidence: 92.5, Frequency: 1, Density: core.DensityProminent, Excerpt: "pour-over"},
			{Type: core.SignalVisual, Confidence: 80, Frequency: 3, Density: core.DensityModerate, Timestamp: "0:12", Context: "kettle close-up"},
		},
	}

	decoded, err := UnmarshalPost(MarshalPost(post))
	require.NoError(t, err)
	assert.Equal(t, post, decoded)
}

func TestMarshalPost_DropsScores(t *testing.T) {
	post := &core.Post{
		ID:             "p1",
		CreatorID:      "c1",
		ContentType:    core.ContentPost,
		PostedAt:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ScoreBreakdown: core.ScoreBreakdown{BaseTotal: 320, NormalizedScore: 100, SignalCount: 3},
		CompositeScore: 100,
	}

	decoded, err := UnmarshalPost(MarshalPost(post))
	require.NoError(t, err)
	assert.Zero(t, decoded.CompositeScore)
	assert.Equal(t, core.ScoreBreakdown{}, decoded.ScoreBreakdown)
	assert.Equal(t, "p1", decoded.ID)
}

func TestUnmarshal_Truncated(t *testing.T) {
	creator := MarshalCreator(&core.Creator{ID: "c1", Name: "Ava", Topics: []string{"coffee"}})
	_, err := UnmarshalCreator(creator[:len(creator)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)

	post := MarshalPost(&core.Post{ID: "p1", CreatorID: "c1", ContentType: core.ContentReel,
		Signals: []core.Signal{{Type: core.SignalAudio, Frequency: 1}}})
	_, err = UnmarshalPost(post[:len(post)-3])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
