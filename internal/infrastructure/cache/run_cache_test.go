package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefusion/casefusion-backend/internal/domain/intel"
	intelsvc "github.com/casefusion/casefusion-backend/internal/service/intel"
)

func newTestCache(t *testing.T) (*RunCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRunCacheWithClient(client, 15*time.Minute, nil), mr
}

func testRun(caseID, language string) *intelsvc.AnalysisRun {
	return &intelsvc.AnalysisRun{
		ID:          uuid.New(),
		CaseID:      caseID,
		Language:    language,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Confidence: intel.ConfidenceAssessment{
			Level:      intel.ConfidenceMedium,
			Percentage: 55,
			Factors:    []string{"test factor"},
		},
	}
}

func TestRunCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	run := testRun("case-1", "en")
	require.NoError(t, cache.Set(ctx, run))

	got, err := cache.Get(ctx, "case-1", "en")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Confidence, got.Confidence)
}

func TestRunCache_MissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t)

	got, err := cache.Get(context.Background(), "case-none", "en")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRunCache_LanguagesAreSeparateKeys(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	en := testRun("case-2", "en")
	th := testRun("case-2", "th")
	require.NoError(t, cache.Set(ctx, en))
	require.NoError(t, cache.Set(ctx, th))

	gotEN, err := cache.Get(ctx, "case-2", "en")
	require.NoError(t, err)
	gotTH, err := cache.Get(ctx, "case-2", "th")
	require.NoError(t, err)
	assert.Equal(t, en.ID, gotEN.ID)
	assert.Equal(t, th.ID, gotTH.ID)
}

func TestRunCache_InvalidateRemovesAllLanguages(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testRun("case-3", "en")))
	require.NoError(t, cache.Set(ctx, testRun("case-3", "th")))
	require.NoError(t, cache.Set(ctx, testRun("case-other", "en")))

	require.NoError(t, cache.Invalidate(ctx, "case-3"))

	gone, err := cache.Get(ctx, "case-3", "en")
	require.NoError(t, err)
	assert.Nil(t, gone)
	gone, err = cache.Get(ctx, "case-3", "th")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := cache.Get(ctx, "case-other", "en")
	require.NoError(t, err)
	require.NotNil(t, kept)
}

func TestRunCache_EntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testRun("case-4", "en")))
	mr.FastForward(16 * time.Minute)

	got, err := cache.Get(ctx, "case-4", "en")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRunCache_CorruptPayloadIsAMiss(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("intel:run:case-5:en", "not json"))

	got, err := cache.Get(ctx, "case-5", "en")
	require.NoError(t, err)
	assert.Nil(t, got)
	// The corrupt key is dropped so the next write starts clean.
	assert.False(t, mr.Exists("intel:run:case-5:en"))
}
