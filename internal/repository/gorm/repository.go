package gormrepository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"dinoverse/internal/repository"
)

type Store struct {
	db *gorm.DB
}

var _ repository.Repository = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", repository.ErrConflict, err)
	default:
		return err
	}
}

func create[T any](db *gorm.DB, item *T) error {
	return translate(db.Create(item).Error)
}

// replace overwrites every column of an existing row except its identity and
// any columns named in omit.
func replace[T any](db *gorm.DB, id string, item *T, omit ...string) error {
	res := db.Model(item).
		Where("id = ?", id).
		Select("*").
		Omit(append([]string{"id", "created_at"}, omit...)...).
		Updates(item)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func deleteByID[T any](db *gorm.DB, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return repository.ErrNotFound
	}
	res := db.Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func first[T any](query *gorm.DB) (*T, error) {
	var item T
	if err := query.First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func getBy[T any](db *gorm.DB, column, value string) (*T, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, repository.ErrNotFound
	}
	return first[T](db.Model(new(T)).Where(column+" = ?", value))
}

func list[T any](query *gorm.DB, params repository.ListParams, fallback string, tiebreak ...string) ([]T, error) {
	query = applyOrder(query, params.OrderBy, params.Asc, fallback)
	for _, order := range tiebreak {
		query = query.Order(order)
	}
	query = query.Limit(normalizeLimit(params.Limit, 20)).Offset(normalizeOffset(params.Offset))
	var items []T
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func count(query *gorm.DB) (int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

// applySearch adds a case-insensitive substring match over columns, OR-ed.
func applySearch(query *gorm.DB, q *string, columns ...string) *gorm.DB {
	if q == nil || len(columns) == 0 {
		return query
	}
	term := strings.ToLower(strings.TrimSpace(*q))
	if term == "" {
		return query
	}
	pattern := "%" + escapeLike(term) + "%"
	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, "LOWER("+col+") LIKE ? ESCAPE '\\'")
		args = append(args, pattern)
	}
	return query.Where("("+strings.Join(conds, " OR ")+")", args...)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func whereString(query *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil || strings.TrimSpace(*value) == "" {
		return query
	}
	return query.Where(column+" = ?", strings.TrimSpace(*value))
}

func whereBool(query *gorm.DB, column string, value *bool) *gorm.DB {
	if value == nil {
		return query
	}
	return query.Where(column+" = ?", *value)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	seen := map[string]struct{}{}
	for _, raw := range items {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	return out
}
