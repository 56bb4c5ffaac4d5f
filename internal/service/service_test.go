package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinoverse/internal/cache"
	"dinoverse/internal/config"
	"dinoverse/internal/db"
	"dinoverse/internal/models"
	"dinoverse/internal/notification"
	"dinoverse/internal/repository"
	gormrepository "dinoverse/internal/repository/gorm"
)

func newTestRepo(t *testing.T) *gormrepository.Store {
	t.Helper()
	d, err := db.Open(config.DBConfig{Driver: "sqlite"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(d) })
	require.NoError(t, db.AutoMigrate(d))
	return gormrepository.New(d.Gorm)
}

func TestSiteContentDefaultsAndCache(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	store := cache.NewMemoryStore()
	svc := &SiteContentService{Repo: repo, Cache: store, TTL: time.Minute}

	hero, err := svc.Get(ctx, SectionHero)
	require.NoError(t, err)
	want, _ := DefaultSection(SectionHero)
	assert.JSONEq(t, string(want), string(hero))

	_, err = svc.Get(ctx, "footer")
	assert.ErrorIs(t, err, ErrUnknownSection)

	item, err := svc.Put(ctx, SectionHero, json.RawMessage(`{"title":"Custom"}`))
	require.NoError(t, err)
	assert.Equal(t, SectionHero, item.Key)

	hero, err = svc.Get(ctx, SectionHero)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Custom"}`, string(hero))

	cached, ok, err := store.Get(ctx, siteContentCachePrefix+SectionHero)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"title":"Custom"}`, string(cached))

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(SectionKeys()))
	assert.JSONEq(t, `{"title":"Custom"}`, string(all[SectionHero]))
}

// racingRepo runs onRead once, after the first section read has completed
// but before its result reaches the caller.
type racingRepo struct {
	repository.Repository
	onRead func()
}

func (r *racingRepo) GetSiteContentByKey(ctx context.Context, key string) (*models.SiteContent, error) {
	item, err := r.Repository.GetSiteContentByKey(ctx, key)
	if hook := r.onRead; hook != nil {
		r.onRead = nil
		hook()
	}
	return item, err
}

func TestSiteContentGetDropsEntryWrittenDuringRead(t *testing.T) {
	ctx := context.Background()
	base := newTestRepo(t)
	store := cache.NewMemoryStore()
	repo := &racingRepo{Repository: base}
	svc := &SiteContentService{Repo: repo, Cache: store, TTL: time.Minute}

	_, err := svc.Put(ctx, SectionCTA, json.RawMessage(`{"title":"old"}`))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, siteContentCachePrefix+SectionCTA))

	repo.onRead = func() {
		writer := &SiteContentService{Repo: base, Cache: store, TTL: time.Minute}
		_, err := writer.Put(ctx, SectionCTA, json.RawMessage(`{"title":"new"}`))
		require.NoError(t, err)
	}
	got, err := svc.Get(ctx, SectionCTA)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"new"}`, string(got))

	cached, ok, err := store.Get(ctx, siteContentCachePrefix+SectionCTA)
	require.NoError(t, err)
	if ok {
		assert.JSONEq(t, `{"title":"new"}`, string(cached))
	}

	got, err = svc.Get(ctx, SectionCTA)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"new"}`, string(got))
}

func TestSiteContentSeedDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	svc := &SiteContentService{Repo: repo}

	_, err := svc.Put(ctx, SectionCTA, json.RawMessage(`{"title":"keep"}`))
	require.NoError(t, err)

	n, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SectionKeys())-1, n)

	cta, err := svc.Get(ctx, SectionCTA)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"keep"}`, string(cta))

	n, err = svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDefaultSectionsAreValidJSON(t *testing.T) {
	for _, key := range SectionKeys() {
		raw, ok := DefaultSection(key)
		require.True(t, ok, key)
		var obj map[string]any
		require.NoError(t, json.Unmarshal(raw, &obj), key)
	}
}

type asyncStub struct {
	mu   sync.Mutex
	msgs []notification.Message
	err  error
}

func (a *asyncStub) NotifyAsync(msg notification.Message) {
	a.mu.Lock()
	a.msgs = append(a.msgs, msg)
	a.mu.Unlock()
}

func (a *asyncStub) Send(_ context.Context, msg notification.Message) error {
	a.NotifyAsync(msg)
	return a.err
}

func TestContactSubmit(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	n := &asyncStub{}
	svc := &ContactService{Repo: repo, Notifier: n}

	c := &models.Contact{Name: "Ann", Email: "ann@example.com", Subject: "Quote", Message: "Need a site", Status: "archived"}
	require.NoError(t, svc.Submit(ctx, c))
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, models.ContactStatusNew, c.Status)

	require.Len(t, n.msgs, 1)
	assert.Equal(t, "contact.created", n.msgs[0].Event)
	assert.Equal(t, "New contact from Ann: Quote", n.msgs[0].Subject)
	assert.Contains(t, n.msgs[0].Text, "Need a site")
}

func TestMetricsDashboard(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	now := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)
	svc := &MetricsService{Repo: repo, Now: func() time.Time { return now }}

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Nil(t, d.Quote)
	assert.Zero(t, d.ActiveGoals)
	assert.Equal(t, streakCap, d.Trading.DaysWithoutRuleBreak)

	require.NoError(t, repo.CreateGoal(ctx, &models.Goal{Title: "g", Status: models.GoalStatusActive}))
	require.NoError(t, repo.CreateGoal(ctx, &models.Goal{Title: "h", Status: models.GoalStatusPaused}))
	require.NoError(t, repo.CreateQuote(ctx, &models.Quote{Text: "Keep going"}))
	require.NoError(t, repo.UpsertHabitLog(ctx, &models.HabitLog{HabitID: "h", Date: CalendarDay(now, time.UTC), Status: models.HabitLogDone}))
	require.NoError(t, repo.UpsertHabitLog(ctx, &models.HabitLog{HabitID: "h", Date: CalendarDay(now, time.UTC).AddDate(0, 0, -1), Status: models.HabitLogMissed}))
	// outside the 7 day window
	require.NoError(t, repo.UpsertHabitLog(ctx, &models.HabitLog{HabitID: "h", Date: CalendarDay(now, time.UTC).AddDate(0, 0, -7), Status: models.HabitLogDone}))
	require.NoError(t, repo.CreateTransaction(ctx, &models.Transaction{Date: now, Type: models.TransactionIncome, Amount: decimal.NewFromInt(100)}))
	require.NoError(t, repo.CreateTransaction(ctx, &models.Transaction{Date: now.AddDate(0, -1, 0), Type: models.TransactionIncome, Amount: decimal.NewFromInt(999)}))

	d, err = svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ActiveGoals)
	require.NotNil(t, d.Quote)
	assert.Equal(t, 2, d.Habits.Total)
	assert.Equal(t, 50, d.Habits.ConsistencyPercent)
	assert.True(t, d.Finance.Net.Equal(decimal.NewFromInt(100)))
}

func TestDigestRunOnce(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	now := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)
	sender := &asyncStub{}
	svc := &DigestService{Metrics: &MetricsService{Repo: repo, Now: func() time.Time { return now }}, Notifier: sender}

	require.NoError(t, svc.RunOnce(ctx))
	require.Len(t, sender.msgs, 1)
	assert.Equal(t, "Daily digest 2024-06-12", sender.msgs[0].Subject)
	assert.Contains(t, sender.msgs[0].Text, "Trades this week: 0")
	assert.Contains(t, sender.msgs[0].Text, "Net this month: 0.00")

	sender.err = errors.New("down")
	assert.Error(t, svc.RunOnce(ctx))
}
