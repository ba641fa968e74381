package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "grade-stats/app/models/mongodb"
)

func newTestCache(t *testing.T) (StatsCache, *miniredis.Miniredis) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStatsCache(client, time.Minute), srv
}

func TestStatsCache_RoundTrip(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	want := models.ClassSummary{TotalLearners: 4, Above70: 1, PercentageAbove70: 25}
	require.NoError(t, cache.Set(ctx, "class:7:zero", want))
	assert.True(t, srv.Exists("gradestats:class:7:zero"))

	var got models.ClassSummary
	hit, err := cache.Get(ctx, "class:7:zero", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)
}

func TestStatsCache_MissAndExpiry(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	var got []models.LearnerClassAverage
	hit, err := cache.Get(ctx, "learner:1:zero", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "learner:1:zero", []models.LearnerClassAverage{{ClassID: 3, Avg: 80}}))
	srv.FastForward(2 * time.Minute)

	hit, err = cache.Get(ctx, "learner:1:zero", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStatsCache_ServerDown(t *testing.T) {
	cache, srv := newTestCache(t)
	srv.Close()

	var got models.ClassSummary
	_, err := cache.Get(context.Background(), "class:7:zero", &got)
	assert.Error(t, err)
}
