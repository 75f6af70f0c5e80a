package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend    *Backend
	creatorSeq *badger.Sequence
	postSeq    *badger.Sequence
	logger     *slog.Logger
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// creatorEntry is the stored form of a creator: its roster ordinal
// followed by the mus-encoded record.
type creatorEntry struct {
	ordinal uint64
	creator *core.Creator
}

func newCatalogRepository(backend *Backend) (*CatalogRepository, error) {
	if backend == nil {
		return nil, errors.New("badger: backend is required")
	}
	creatorSeq, err := backend.GetSequence(creatorOrdinalSeq)
	if err != nil {
		return nil, err
	}
	postSeq, err := backend.GetSequence(postOrdinalSeq)
	if err != nil {
		creatorSeq.Release()
		return nil, err
	}
	return &CatalogRepository{
		backend:    backend,
		creatorSeq: creatorSeq,
		postSeq:    postSeq,
		logger:     slog.Default().With("component", "catalog"),
	}, nil
}

// NewCatalogRepository creates a catalog on top of an open backend.
//
// Returns storage.CatalogRepository interface to enforce abstraction.
func NewCatalogRepository(backend *Backend) (storage.CatalogRepository, error) {
	return newCatalogRepository(backend)
}

// Close releases the ordinal sequences. The backend stays open.
func (r *CatalogRepository) Close() error {
	return errors.Join(r.creatorSeq.Release(), r.postSeq.Release())
}

// WithTransaction delegates to the backend.
func (r *CatalogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

func (r *CatalogRepository) ready(ctx context.Context) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return ctx.Err()
}

// AddCreators inserts or replaces creators.
func (r *CatalogRepository) AddCreators(ctx context.Context, creators ...*core.Creator) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	for _, c := range creators {
		if err := core.ValidateCreator(c); err != nil {
			return err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, c := range creators {
			key := makeCreatorKey(c.ID)
			old, err := readCreatorEntry(tx, key)
			if err != nil {
				return err
			}

			var ordinal uint64
			if old != nil {
				// Replacing keeps the roster position.
				ordinal = old.ordinal
				if err := deleteTopicIndex(tx, old.creator); err != nil {
					return err
				}
			} else {
				if ordinal, err = nextOrdinal(r.creatorSeq); err != nil {
					return err
				}
				if err := tx.Set(makeCreatorOrderKey(ordinal), []byte(c.ID)); err != nil {
					return err
				}
			}

			if err := tx.Set(key, marshalCreatorEntry(ordinal, c)); err != nil {
				return err
			}
			for _, topic := range c.Topics {
				if err := tx.Set(makeCreatorTopicKey(topic, c.ID), []byte(c.ID)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.logger.Debug("stored creators", "count", len(creators))
	return nil
}

// GetCreator retrieves a single creator by ID.
func (r *CatalogRepository) GetCreator(ctx context.Context, id string) (*core.Creator, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}
	var result *core.Creator
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		entry, err := readCreatorEntry(tx, makeCreatorKey(id))
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("%w: creator %s", storage.ErrNotFound, id)
		}
		result = entry.creator
		return nil
	}, false)
	return result, err
}

// ListCreators returns the whole roster in roster order.
func (r *CatalogRepository) ListCreators(ctx context.Context) ([]core.Creator, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}
	result := []core.Creator{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var ids []string
		err := scanPrefix(tx, []byte(creatorOrderPrefix), func(_, val []byte) error {
			ids = append(ids, string(val))
			return nil
		})
		if err != nil {
			return err
		}
		for _, id := range ids {
			entry, err := readCreatorEntry(tx, makeCreatorKey(id))
			if err != nil {
				return err
			}
			if entry != nil {
				result = append(result, *entry.creator)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetCreatorsByTopic returns creators with the given topic in roster order.
func (r *CatalogRepository) GetCreatorsByTopic(ctx context.Context, topic string) ([]core.Creator, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}
	var entries []*creatorEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var ids []string
		err := scanPrefix(tx, makePartialCreatorTopicKey(topic), func(_, val []byte) error {
			ids = append(ids, string(val))
			return nil
		})
		if err != nil {
			return err
		}
		for _, id := range ids {
			entry, err := readCreatorEntry(tx, makeCreatorKey(id))
			if err != nil {
				return err
			}
			// The index is keyed by hash; confirm the topic itself.
			if entry != nil && hasTopic(entry.creator, topic) {
				entries = append(entries, entry)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b *creatorEntry) int {
		switch {
		case a.ordinal < b.ordinal:
			return -1
		case a.ordinal > b.ordinal:
			return 1
		}
		return 0
	})
	result := make([]core.Creator, 0, len(entries))
	for _, e := range entries {
		result = append(result, *e.creator)
	}
	return result, nil
}

// DeleteCreators removes creators and all of their posts.
func (r *CatalogRepository) DeleteCreators(ctx context.Context, ids ...string) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeCreatorKey(id)
			entry, err := readCreatorEntry(tx, key)
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("%w: creator %s", storage.ErrNotFound, id)
			}

			if err := deleteTopicIndex(tx, entry.creator); err != nil {
				return err
			}
			if err := tx.Delete(makeCreatorOrderKey(entry.ordinal)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
			if err := deletePosts(tx, id); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.logger.Debug("deleted creators", "count", len(ids))
	return nil
}

// AddPosts inserts or replaces posts. Scores are zeroed before storing.
func (r *CatalogRepository) AddPosts(ctx context.Context, posts ...*core.Post) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	for _, p := range posts {
		if err := core.ValidatePost(p); err != nil {
			return err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, p := range posts {
			if _, err := tx.Get(makeCreatorKey(p.CreatorID)); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("%w: post %s, creator %s", storage.ErrUnknownCreator, p.ID, p.CreatorID)
				}
				return err
			}

			key, err := r.postKeyFor(tx, p)
			if err != nil {
				return err
			}

			stored := *p
			stored.ScoreBreakdown = core.ScoreBreakdown{}
			stored.CompositeScore = 0
			if err := tx.Set(key, storage.MarshalPost(&stored)); err != nil {
				return err
			}
			if err := tx.Set(makePostIndexKey(p.ID), key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.logger.Debug("stored posts", "count", len(posts))
	return nil
}

// postKeyFor returns the primary key for p. A post that already exists
// under the same creator keeps its key, and so its position.
func (r *CatalogRepository) postKeyFor(tx *badger.Txn, p *core.Post) ([]byte, error) {
	oldKey, err := readPostIndex(tx, p.ID)
	if err != nil {
		return nil, err
	}
	if oldKey != nil {
		if bytes.HasPrefix(oldKey, makePartialPostKey(p.CreatorID)) {
			return oldKey, nil
		}
		// The post moved to another creator.
		if err := tx.Delete(oldKey); err != nil {
			return nil, err
		}
	}
	ordinal, err := nextOrdinal(r.postSeq)
	if err != nil {
		return nil, err
	}
	return makePostKey(p.CreatorID, ordinal), nil
}

// GetPost retrieves a single post by ID.
func (r *CatalogRepository) GetPost(ctx context.Context, id string) (*core.Post, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}
	var result *core.Post
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key, err := readPostIndex(tx, id)
		if err != nil {
			return err
		}
		if key != nil {
			if result, err = readPost(tx, key); err != nil {
				return err
			}
		}
		if result == nil {
			return fmt.Errorf("%w: post %s", storage.ErrNotFound, id)
		}
		return nil
	}, false)
	return result, err
}

// GetPosts returns a creator's posts in insertion order.
func (r *CatalogRepository) GetPosts(ctx context.Context, creatorID string) ([]core.Post, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}
	result := []core.Post{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(tx, makePartialPostKey(creatorID), func(_, val []byte) error {
			post, err := storage.UnmarshalPost(val)
			if err != nil {
				return err
			}
			// The prefix is a hash; skip another creator's posts.
			if post.CreatorID == creatorID {
				result = append(result, *post)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func marshalCreatorEntry(ordinal uint64, c *core.Creator) []byte {
	ord := core.ID(ordinal)
	buf := make([]byte, core.IDMUS.Size(ord)+core.CreatorMUS.Size(*c))
	n := core.IDMUS.Marshal(ord, buf)
	core.CreatorMUS.Marshal(*c, buf[n:])
	return buf
}

func unmarshalCreatorEntry(data []byte) (*creatorEntry, error) {
	ord, n, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	creator, err := storage.UnmarshalCreator(data[n:])
	if err != nil {
		return nil, err
	}
	return &creatorEntry{ordinal: uint64(ord), creator: creator}, nil
}

// readCreatorEntry reads a creator entry. Returns nil, nil if not found.
func readCreatorEntry(tx *badger.Txn, key []byte) (*creatorEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var entry *creatorEntry
	err = item.Value(func(val []byte) error {
		entry, err = unmarshalCreatorEntry(val)
		return err
	})
	return entry, err
}

// readPostIndex returns the primary key of a post. Returns nil, nil if not found.
func readPostIndex(tx *badger.Txn, postID string) ([]byte, error) {
	item, err := tx.Get(makePostIndexKey(postID))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}

// readPost reads a post by primary key. Returns nil, nil if not found.
func readPost(tx *badger.Txn, key []byte) (*core.Post, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var post *core.Post
	err = item.Value(func(val []byte) error {
		post, err = storage.UnmarshalPost(val)
		return err
	})
	return post, err
}

func deleteTopicIndex(tx *badger.Txn, c *core.Creator) error {
	for _, topic := range c.Topics {
		if err := tx.Delete(makeCreatorTopicKey(topic, c.ID)); err != nil {
			return err
		}
	}
	return nil
}

// deletePosts removes every post of a creator along with its ID index.
func deletePosts(tx *badger.Txn, creatorID string) error {
	type doomed struct {
		key    []byte
		postID string
	}
	var posts []doomed
	err := scanPrefix(tx, makePartialPostKey(creatorID), func(key, val []byte) error {
		post, err := storage.UnmarshalPost(val)
		if err != nil {
			return err
		}
		if post.CreatorID == creatorID {
			posts = append(posts, doomed{key: bytes.Clone(key), postID: post.ID})
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, p := range posts {
		if err := tx.Delete(p.key); err != nil {
			return err
		}
		if err := tx.Delete(makePostIndexKey(p.postID)); err != nil {
			return err
		}
	}
	return nil
}

func hasTopic(c *core.Creator, topic string) bool {
	topic = strings.TrimSpace(topic)
	return slices.ContainsFunc(c.Topics, func(t string) bool {
		return strings.EqualFold(strings.TrimSpace(t), topic)
	})
}
