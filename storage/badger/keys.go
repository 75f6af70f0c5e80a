package badger

import (
	"encoding/binary"
	"strings"

	"github.com/poiesic/scout/core"
)

// Key prefixes for different data types
const (
	creatorPrefix      = "crt:"
	creatorOrderPrefix = "crto:"
	creatorTopicPrefix = "crtt:"
	creatorOrdinalSeq  = "crtseq"
	postPrefix         = "pst:"
	postIndexPrefix    = "psti:"
	postOrdinalSeq     = "pstseq"
)

// makeCreatorKey generates the primary key for a creator.
func makeCreatorKey(id string) []byte {
	return []byte(creatorPrefix + id)
}

// makeCreatorOrderKey generates a roster-order index key.
// Format: prefix:ordinal
func makeCreatorOrderKey(ordinal uint64) []byte {
	return appendUint64([]byte(creatorOrderPrefix), ordinal)
}

// makeCreatorTopicKey generates a composite key for the topic index.
// Format: prefix:hash(topic):hash(creatorID)
func makeCreatorTopicKey(topic, creatorID string) []byte {
	buf := makePartialCreatorTopicKey(topic)
	// Write in BigEndian order so lexicographic sort works correctly
	return appendUint64(buf, uint64(core.IDFromContent(creatorID)))
}

// makePartialCreatorTopicKey generates a partial key for topic queries.
// Topics are case-insensitive.
func makePartialCreatorTopicKey(topic string) []byte {
	return appendUint64([]byte(creatorTopicPrefix), uint64(topicHash(topic)))
}

// makePostKey generates the primary key for a post.
// Format: prefix:hash(creatorID):ordinal
func makePostKey(creatorID string, ordinal uint64) []byte {
	return appendUint64(makePartialPostKey(creatorID), ordinal)
}

// makePartialPostKey generates a partial key covering all posts of a creator.
func makePartialPostKey(creatorID string) []byte {
	return appendUint64([]byte(postPrefix), uint64(core.IDFromContent(creatorID)))
}

// makePostIndexKey generates the key that maps a post ID to its primary key.
func makePostIndexKey(postID string) []byte {
	return []byte(postIndexPrefix + postID)
}

func topicHash(topic string) core.ID {
	return core.IDFromContent(strings.ToLower(strings.TrimSpace(topic)))
}

func appendUint64(buf []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(buf, v)
}
