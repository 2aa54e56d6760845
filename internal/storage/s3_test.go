package storage

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlind/coachdesk/internal/model"
)

func testStore(t *testing.T) *S3Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store, err := NewS3Store(S3Config{
		Endpoint:  "http://localhost:9000/",
		Region:    "us-east-1",
		Bucket:    "plans",
		AccessKey: "test",
		SecretKey: "test",
	}, logger)
	require.NoError(t, err)
	return store
}

func TestNewS3Store_RequiresEndpointAndBucket(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	_, err := NewS3Store(S3Config{Bucket: "plans"}, logger)
	assert.Error(t, err)

	_, err = NewS3Store(S3Config{Endpoint: "http://localhost:9000"}, logger)
	assert.Error(t, err)
}

func TestPublicURL_StableIdentity(t *testing.T) {
	store := testStore(t)

	// The URL is a pure function of the key: two calls for the same
	// (kind, client) identity always agree, regardless of content.
	key := model.PlanTraining.StorageKey(42)
	first := store.PublicURL(key)
	second := store.PublicURL(key)

	assert.Equal(t, first, second)
	assert.Equal(t, "http://localhost:9000/plans/training-plan-42.pdf", first)
}

func TestPublicURL_TrimsTrailingSlash(t *testing.T) {
	store := testStore(t)
	assert.Equal(t, "http://localhost:9000/plans/meal-plan-7.pdf",
		store.PublicURL(model.PlanMeal.StorageKey(7)))
}

func TestStorageKey_PerKindAndClient(t *testing.T) {
	assert.Equal(t, "meal-plan-1.pdf", model.PlanMeal.StorageKey(1))
	assert.Equal(t, "training-plan-1.pdf", model.PlanTraining.StorageKey(1))
	assert.NotEqual(t, model.PlanMeal.StorageKey(1), model.PlanMeal.StorageKey(2))
}
