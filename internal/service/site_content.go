package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"dinoverse/internal/cache"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

const (
	SectionHero         = "hero"
	SectionWhyChoose    = "whyChoose"
	SectionProcess      = "process"
	SectionCTA          = "cta"
	SectionRecentWork   = "recentWork"
	SectionContactMini  = "contactMini"
	SectionServicesPage = "servicesPage"

	siteContentCachePrefix = "site_content:"
)

var ErrUnknownSection = errors.New("unknown site content section")

var sectionDefaults = map[string]string{
	SectionHero: `{
		"title": "We build digital products that last",
		"subtitle": "Design, engineering and growth for ambitious teams.",
		"ctaText": "Start a project",
		"ctaLink": "/contact",
		"image": ""
	}`,
	SectionWhyChoose: `{
		"title": "Why choose Dinoverse",
		"items": [
			{"title": "Senior team", "description": "Every project is led by people who have shipped before.", "icon": "users"},
			{"title": "Fixed scope", "description": "Clear milestones and no surprise invoices.", "icon": "target"},
			{"title": "Long-term care", "description": "We stay around after launch.", "icon": "shield"}
		]
	}`,
	SectionProcess: `{
		"title": "How we work",
		"steps": [
			{"title": "Discover", "description": "Workshops to pin down goals and constraints."},
			{"title": "Design", "description": "Prototypes validated with real users."},
			{"title": "Build", "description": "Weekly releases you can click through."},
			{"title": "Launch", "description": "Go live, measure, iterate."}
		]
	}`,
	SectionCTA: `{
		"title": "Have a project in mind?",
		"description": "Tell us about it and we will get back within one business day.",
		"buttonText": "Get in touch",
		"buttonLink": "/contact"
	}`,
	SectionRecentWork: `{
		"title": "Recent work",
		"subtitle": "A few things we shipped lately.",
		"limit": 6
	}`,
	SectionContactMini: `{
		"title": "Say hello",
		"email": "hello@dinoverse.dev",
		"phone": "",
		"address": ""
	}`,
	SectionServicesPage: `{
		"title": "Services",
		"subtitle": "From first sketch to production.",
		"intro": ""
	}`,
}

// SectionKeys lists every site content section in display order.
func SectionKeys() []string {
	return []string{
		SectionHero,
		SectionWhyChoose,
		SectionProcess,
		SectionCTA,
		SectionRecentWork,
		SectionContactMini,
		SectionServicesPage,
	}
}

func IsSectionKey(key string) bool {
	_, ok := sectionDefaults[key]
	return ok
}

// DefaultSection returns the built-in payload for key in compact form.
func DefaultSection(key string) (json.RawMessage, bool) {
	raw, ok := sectionDefaults[key]
	if !ok {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false
	}
	b, _ := json.Marshal(v)
	return b, true
}

type SiteContentService struct {
	Repo   repository.Repository
	Cache  cache.Store
	TTL    time.Duration
	Logger *zap.Logger
}

// Get returns the stored section, or its default when nothing is stored yet.
// A miss is cached only after the row is read again unchanged; a Put landing
// between the read and the cache write drops the entry instead.
func (s *SiteContentService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if !IsSectionKey(key) {
		return nil, ErrUnknownSection
	}
	if b, ok := s.cached(ctx, key); ok {
		return b, nil
	}
	data, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, data)
	current, err := s.load(ctx, key)
	if err != nil {
		s.invalidate(ctx, key)
		return nil, err
	}
	if !bytes.Equal(current, data) {
		s.invalidate(ctx, key)
	}
	return current, nil
}

func (s *SiteContentService) load(ctx context.Context, key string) (json.RawMessage, error) {
	item, err := s.Repo.GetSiteContentByKey(ctx, key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		data, _ := DefaultSection(key)
		return data, nil
	case err != nil:
		return nil, err
	}
	return json.RawMessage(item.Data), nil
}

func (s *SiteContentService) All(ctx context.Context) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(sectionDefaults))
	for _, key := range SectionKeys() {
		data, err := s.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		out[key] = data
	}
	return out, nil
}

func (s *SiteContentService) Put(ctx context.Context, key string, data json.RawMessage) (*models.SiteContent, error) {
	if !IsSectionKey(key) {
		return nil, ErrUnknownSection
	}
	item := &models.SiteContent{Key: key, Data: []byte(data)}
	if err := s.Repo.UpsertSiteContent(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, key)
	stored, err := s.Repo.GetSiteContentByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// SeedDefaults writes the default payload for every section not stored yet.
func (s *SiteContentService) SeedDefaults(ctx context.Context) (int, error) {
	written := 0
	for _, key := range SectionKeys() {
		_, err := s.Repo.GetSiteContentByKey(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return written, err
		}
		data, _ := DefaultSection(key)
		if err := s.Repo.UpsertSiteContent(ctx, &models.SiteContent{Key: key, Data: []byte(data)}); err != nil {
			return written, err
		}
		s.invalidate(ctx, key)
		written++
	}
	return written, nil
}

func (s *SiteContentService) cached(ctx context.Context, key string) (json.RawMessage, bool) {
	if s.Cache == nil {
		return nil, false
	}
	b, ok, err := s.Cache.Get(ctx, siteContentCachePrefix+key)
	if err != nil {
		s.warn("site content cache read failed", key, err)
		return nil, false
	}
	return b, ok
}

func (s *SiteContentService) store(ctx context.Context, key string, data json.RawMessage) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, siteContentCachePrefix+key, data, s.TTL); err != nil {
		s.warn("site content cache write failed", key, err)
	}
}

func (s *SiteContentService) invalidate(ctx context.Context, key string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, siteContentCachePrefix+key); err != nil {
		s.warn("site content cache invalidate failed", key, err)
	}
}

func (s *SiteContentService) warn(msg, key string, err error) {
	if s.Logger != nil {
		s.Logger.Warn(msg, zap.String("key", key), zap.Error(err))
	}
}
