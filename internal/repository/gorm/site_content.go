package gormrepository

import (
	"context"
	"strings"

	"gorm.io/gorm/clause"

	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

func (s *Store) UpsertSiteContent(ctx context.Context, item *models.SiteContent) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Key = strings.TrimSpace(item.Key)
	if item.Key == "" {
		return nil
	}
	return translate(s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "section_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"data",
			"updated_at",
		}),
	}).Create(item).Error)
}

func (s *Store) GetSiteContentByKey(ctx context.Context, key string) (*models.SiteContent, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.SiteContent](s.db.WithContext(ctx), "section_key", key)
}

func (s *Store) ListSiteContents(ctx context.Context) ([]models.SiteContent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SiteContent
	if err := s.db.WithContext(ctx).
		Model(&models.SiteContent{}).
		Order("section_key asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
