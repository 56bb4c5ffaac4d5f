package cronrunner

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRejectsBadSpec(t *testing.T) {
	r := New(nil, nil)
	_, err := r.Add("digest", "0 0 21 * *", func(context.Context) {})
	assert.Error(t, err)

	_, err = r.Add("digest", "0 0 21 * * *", nil)
	assert.Error(t, err)

	_, err = r.Add("digest", "0 0 21 * * *", func(context.Context) {})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Entries())
}

func TestRunPassesBaseContextAndRecovers(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "base")
	r := New(nil, ctx)

	var got any
	r.run("ctx", func(ctx context.Context) { got = ctx.Value(key{}) })
	assert.Equal(t, "base", got)

	assert.NotPanics(t, func() {
		r.run("boom", func(context.Context) { panic("boom") })
	})
}

func TestStartStop(t *testing.T) {
	r := New(nil, nil)
	r.Start()
	r.Stop()
}

func TestScheduleUsesConfiguredLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	r := New(nil, nil, cron.WithLocation(ny))
	_, err = r.Add("digest", "0 0 21 * * *", func(context.Context) {})
	require.NoError(t, err)

	entries := r.cron.Entries()
	require.Len(t, entries, 1)
	next := entries[0].Schedule.Next(time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 13, 1, 0, 0, 0, time.UTC), next.UTC())
}
