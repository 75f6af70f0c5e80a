package importer

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
	"github.com/poiesic/scout/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) storage.CatalogRepository {
	t.Helper()
	catalog, backend, err := badger.NewMemoryCatalog()
	require.NoError(t, err)
	t.Cleanup(func() {
		catalog.Close()
		backend.Close()
	})
	return catalog
}

func testConfig(batchSize int) *Config {
	return &Config{BatchSize: batchSize, ReportInterval: 1, MaxRetries: 3, RetryDelay: time.Millisecond}
}

// flakyCatalog fails the first failures AddPosts calls with a transient error.
type flakyCatalog struct {
	storage.CatalogRepository
	mu       sync.Mutex
	failures int
	calls    int
}

func (f *flakyCatalog) AddPosts(ctx context.Context, posts ...*core.Post) error {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	f.mu.Unlock()
	if fail {
		return errors.New("transient write failure")
	}
	return f.CatalogRepository.AddPosts(ctx, posts...)
}

func TestNewImporter(t *testing.T) {
	catalog := newTestCatalog(t)

	_, err := NewImporter(nil, nil, nil)
	assert.ErrorIs(t, err, ErrCatalogRequired)

	_, err = NewImporter(catalog, &Config{BatchSize: 10, MaxRetries: 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)

	im, err := NewImporter(catalog, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), im.config)
}

func TestImporter_Run(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()
	fixture, err := LoadFixture("testdata/catalog.yaml")
	require.NoError(t, err)

	var out bytes.Buffer
	im, err := NewImporter(catalog, testConfig(2), &out)
	require.NoError(t, err)

	summary, err := im.Run(ctx, fixture)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Creators)
	assert.Equal(t, 3, summary.Posts)

	creators, err := catalog.ListCreators(ctx)
	require.NoError(t, err)
	require.Len(t, creators, 3)
	assert.Equal(t, "c1", creators[0].ID)
	assert.Equal(t, "c3", creators[2].ID)

	posts, err := catalog.GetPosts(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "p2", posts[1].ID)

	output := out.String()
	assert.Contains(t, output, "Importing 3 creators and 3 posts")
	assert.Contains(t, output, "creators: 3/3")
	assert.Contains(t, output, "posts: 3/3")
	assert.Contains(t, output, "Import complete")
}

func TestImporter_RunTwiceReplaces(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()
	fixture, err := LoadFixture("testdata/catalog.yaml")
	require.NoError(t, err)

	im, err := NewImporter(catalog, testConfig(10), nil)
	require.NoError(t, err)

	_, err = im.Run(ctx, fixture)
	require.NoError(t, err)
	_, err = im.Run(ctx, fixture)
	require.NoError(t, err)

	creators, err := catalog.ListCreators(ctx)
	require.NoError(t, err)
	assert.Len(t, creators, 3)
	posts, err := catalog.GetPosts(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestImporter_RetriesTransientFailures(t *testing.T) {
	flaky := &flakyCatalog{CatalogRepository: newTestCatalog(t), failures: 2}
	fixture, err := LoadFixture("testdata/catalog.yaml")
	require.NoError(t, err)

	im, err := NewImporter(flaky, testConfig(10), nil)
	require.NoError(t, err)

	summary, err := im.Run(context.Background(), fixture)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Posts)
	assert.Equal(t, 3, flaky.calls, "two failures then success")
}

func TestImporter_GivesUp(t *testing.T) {
	flaky := &flakyCatalog{CatalogRepository: newTestCatalog(t), failures: 100}
	fixture, err := LoadFixture("testdata/catalog.yaml")
	require.NoError(t, err)

	im, err := NewImporter(flaky, testConfig(10), nil)
	require.NoError(t, err)

	_, err = im.Run(context.Background(), fixture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to import posts")
	assert.Equal(t, 3, flaky.calls)
}

func TestImporter_InvalidFixture(t *testing.T) {
	im, err := NewImporter(newTestCatalog(t), testConfig(10), nil)
	require.NoError(t, err)

	_, err = im.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidFixture)

	bad := &Fixture{Creators: []CreatorRecord{{ID: "c1"}}}
	_, err = im.Run(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidFixture)
}

func TestImporter_EmptyFixture(t *testing.T) {
	var out bytes.Buffer
	im, err := NewImporter(newTestCatalog(t), testConfig(10), &out)
	require.NoError(t, err)

	summary, err := im.Run(context.Background(), &Fixture{})
	require.NoError(t, err)
	assert.Zero(t, summary.Creators)
	assert.Contains(t, out.String(), "No creators found")
}

func TestImporter_CancelledContext(t *testing.T) {
	im, err := NewImporter(newTestCatalog(t), testConfig(1), nil)
	require.NoError(t, err)
	fixture, err := LoadFixture("testdata/catalog.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = im.Run(ctx, fixture)
	assert.ErrorIs(t, err, context.Canceled)
}
