package gormrepository

import (
	"context"
	"errors"
	"slices"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

// --- goals -------------------------------------------------------------------

func (s *Store) CreateGoal(ctx context.Context, item *models.Goal) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.HabitIDs = cleanStrings(item.HabitIDs)
	return create(s.db.WithContext(ctx), item)
}

// UpdateGoal leaves habit_ids alone; habit writes own that column.
func (s *Store) UpdateGoal(ctx context.Context, item *models.Goal) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.HabitIDs = cleanStrings(item.HabitIDs)
	return replace(s.db.WithContext(ctx), item.ID, item, "habit_ids")
}

// DeleteGoal detaches the goal's habits before removing it.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.InTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Habit{}).
			Where("goal_id = ?", id).
			Update("goal_id", nil).Error; err != nil {
			return err
		}
		return deleteByID[models.Goal](tx, id)
	})
}

func (s *Store) GetGoalByID(ctx context.Context, id string) (*models.Goal, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Goal](s.db.WithContext(ctx), "id", id)
}

func (s *Store) ListGoals(ctx context.Context, params repository.ListGoalsParams) ([]models.Goal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Goal](s.goalQuery(ctx, params), params.ListParams, "created_at")
}

func (s *Store) CountGoals(ctx context.Context, params repository.ListGoalsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.goalQuery(ctx, params))
}

func (s *Store) goalQuery(ctx context.Context, params repository.ListGoalsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Goal{})
	query = whereString(query, "status", params.Status)
	query = whereString(query, "category", params.Category)
	return applySearch(query, params.Query, "title", "description")
}

// --- habits ------------------------------------------------------------------

func (s *Store) CreateHabit(ctx context.Context, item *models.Habit) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.InTx(ctx, func(tx *gorm.DB) error {
		if err := create(tx, item); err != nil {
			return err
		}
		return linkHabit(tx, item.GoalID, item.ID)
	})
}

func (s *Store) UpdateHabit(ctx context.Context, item *models.Habit) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.InTx(ctx, func(tx *gorm.DB) error {
		prev, err := getBy[models.Habit](tx, "id", item.ID)
		if err != nil {
			return err
		}
		if err := replace(tx, item.ID, item); err != nil {
			return err
		}
		if sameGoal(prev.GoalID, item.GoalID) {
			return nil
		}
		if err := unlinkHabit(tx, prev.GoalID, item.ID); err != nil {
			return err
		}
		return linkHabit(tx, item.GoalID, item.ID)
	})
}

// DeleteHabit removes the habit, its logs and its goal back-reference.
func (s *Store) DeleteHabit(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.InTx(ctx, func(tx *gorm.DB) error {
		habit, err := getBy[models.Habit](tx, "id", id)
		if err != nil {
			return err
		}
		if err := tx.Where("habit_id = ?", habit.ID).Delete(&models.HabitLog{}).Error; err != nil {
			return err
		}
		if err := deleteByID[models.Habit](tx, habit.ID); err != nil {
			return err
		}
		return unlinkHabit(tx, habit.GoalID, habit.ID)
	})
}

func (s *Store) GetHabitByID(ctx context.Context, id string) (*models.Habit, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Habit](s.db.WithContext(ctx), "id", id)
}

func (s *Store) ListHabits(ctx context.Context, params repository.ListHabitsParams) ([]models.Habit, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Habit](s.habitQuery(ctx, params), params.ListParams, "created_at")
}

func (s *Store) CountHabits(ctx context.Context, params repository.ListHabitsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.habitQuery(ctx, params))
}

func (s *Store) habitQuery(ctx context.Context, params repository.ListHabitsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Habit{})
	query = whereBool(query, "active", params.Active)
	return whereString(query, "goal_id", params.GoalID)
}

func linkHabit(tx *gorm.DB, goalID *string, habitID string) error {
	if goalID == nil || *goalID == "" {
		return nil
	}
	goal, err := getBy[models.Goal](tx, "id", *goalID)
	if err != nil {
		return err
	}
	if slices.Contains(goal.HabitIDs, habitID) {
		return nil
	}
	ids := append(cleanStrings(goal.HabitIDs), habitID)
	return tx.Model(goal).Update("habit_ids", datatypes.JSONSlice[string](ids)).Error
}

// unlinkHabit tolerates a goal that no longer exists.
func unlinkHabit(tx *gorm.DB, goalID *string, habitID string) error {
	if goalID == nil || *goalID == "" {
		return nil
	}
	goal, err := getBy[models.Goal](tx, "id", *goalID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	ids := slices.DeleteFunc(cleanStrings(goal.HabitIDs), func(v string) bool { return v == habitID })
	return tx.Model(goal).Update("habit_ids", datatypes.JSONSlice[string](ids)).Error
}

func sameGoal(a, b *string) bool {
	av, bv := "", ""
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// --- habit logs --------------------------------------------------------------

// UpsertHabitLog keeps one log per habit and day; a second write for the same
// day replaces status and note and reloads the stored row into item.
func (s *Store) UpsertHabitLog(ctx context.Context, item *models.HabitLog) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.InTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "habit_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status",
				"note",
				"updated_at",
			}),
		}).Create(item).Error; err != nil {
			return translate(err)
		}
		stored, err := first[models.HabitLog](tx.Model(&models.HabitLog{}).
			Where("habit_id = ? AND date = ?", item.HabitID, item.Date))
		if err != nil {
			return err
		}
		*item = *stored
		return nil
	})
}

func (s *Store) DeleteHabitLog(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.HabitLog](s.db.WithContext(ctx), id)
}

func (s *Store) GetHabitLogByID(ctx context.Context, id string) (*models.HabitLog, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.HabitLog](s.db.WithContext(ctx), "id", id)
}

func (s *Store) ListHabitLogs(ctx context.Context, params repository.ListHabitLogsParams) ([]models.HabitLog, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.HabitLog](s.habitLogQuery(ctx, params), params.ListParams, "date", "created_at desc")
}

func (s *Store) CountHabitLogs(ctx context.Context, params repository.ListHabitLogsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.habitLogQuery(ctx, params))
}

func (s *Store) ListAllHabitLogs(ctx context.Context, params repository.ListHabitLogsParams) ([]models.HabitLog, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.HabitLog
	if err := s.habitLogQuery(ctx, params).Order("date asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) habitLogQuery(ctx context.Context, params repository.ListHabitLogsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.HabitLog{})
	query = whereString(query, "habit_id", params.HabitID)
	if params.From != nil {
		query = query.Where("date >= ?", params.From.UTC())
	}
	if params.To != nil {
		query = query.Where("date <= ?", params.To.UTC())
	}
	return query
}

// --- trades ------------------------------------------------------------------

func (s *Store) CreateTrade(ctx context.Context, item *models.Trade) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Tags = cleanStrings(item.Tags)
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdateTrade(ctx context.Context, item *models.Trade) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Tags = cleanStrings(item.Tags)
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeleteTrade(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.Trade](s.db.WithContext(ctx), id)
}

func (s *Store) GetTradeByID(ctx context.Context, id string) (*models.Trade, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Trade](s.db.WithContext(ctx), "id", id)
}

func (s *Store) ListTrades(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Trade](s.tradeQuery(ctx, params), params.ListParams, "date", "created_at desc")
}

func (s *Store) CountTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.tradeQuery(ctx, params))
}

func (s *Store) ListAllTrades(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Trade
	if err := s.tradeQuery(ctx, params).Order("date desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) tradeQuery(ctx context.Context, params repository.ListTradesParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Trade{})
	query = whereString(query, "status", params.Status)
	query = whereString(query, "direction", params.Direction)
	if params.Instrument != nil && strings.TrimSpace(*params.Instrument) != "" {
		query = query.Where("UPPER(instrument) = ?", strings.ToUpper(strings.TrimSpace(*params.Instrument)))
	}
	if params.From != nil {
		query = query.Where("date >= ?", params.From.UTC())
	}
	if params.To != nil {
		query = query.Where("date <= ?", params.To.UTC())
	}
	return applySearch(query, params.Query, "instrument", "setup", "notes")
}

// --- transactions ------------------------------------------------------------

func (s *Store) CreateTransaction(ctx context.Context, item *models.Transaction) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdateTransaction(ctx context.Context, item *models.Transaction) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.Transaction](s.db.WithContext(ctx), id)
}

func (s *Store) GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Transaction](s.db.WithContext(ctx), "id", id)
}

func (s *Store) ListTransactions(ctx context.Context, params repository.ListTransactionsParams) ([]models.Transaction, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Transaction](s.transactionQuery(ctx, params), params.ListParams, "date", "created_at desc")
}

func (s *Store) CountTransactions(ctx context.Context, params repository.ListTransactionsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.transactionQuery(ctx, params))
}

func (s *Store) ListAllTransactions(ctx context.Context, params repository.ListTransactionsParams) ([]models.Transaction, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Transaction
	if err := s.transactionQuery(ctx, params).Order("date asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) transactionQuery(ctx context.Context, params repository.ListTransactionsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Transaction{})
	query = whereString(query, "type", params.Type)
	query = whereString(query, "category", params.Category)
	if params.From != nil {
		query = query.Where("date >= ?", params.From.UTC())
	}
	if params.To != nil {
		query = query.Where("date <= ?", params.To.UTC())
	}
	return query
}

// --- rules -------------------------------------------------------------------

func (s *Store) CreateRule(ctx context.Context, item *models.Rule) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdateRule(ctx context.Context, item *models.Rule) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeleteRule(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.Rule](s.db.WithContext(ctx), id)
}

func (s *Store) GetRuleByID(ctx context.Context, id string) (*models.Rule, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Rule](s.db.WithContext(ctx), "id", id)
}

func (s *Store) ListRules(ctx context.Context, params repository.ListRulesParams) ([]models.Rule, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Rule](s.ruleQuery(ctx, params), params.ListParams, "sort_order", "created_at asc")
}

func (s *Store) CountRules(ctx context.Context, params repository.ListRulesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.ruleQuery(ctx, params))
}

func (s *Store) ruleQuery(ctx context.Context, params repository.ListRulesParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Rule{})
	query = whereString(query, "category", params.Category)
	return whereBool(query, "active", params.Active)
}

// --- reflections -------------------------------------------------------------

func (s *Store) CreateReflection(ctx context.Context, item *models.Reflection) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdateReflection(ctx context.Context, item *models.Reflection) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeleteReflection(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.Reflection](s.db.WithContext(ctx), id)
}

func (s *Store) GetReflectionByID(ctx context.Context, id string) (*models.Reflection, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Reflection](s.db.WithContext(ctx), "id", id)
}

func (s *Store) ListReflections(ctx context.Context, params repository.ListReflectionsParams) ([]models.Reflection, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Reflection](s.reflectionQuery(ctx, params), params.ListParams, "date", "created_at desc")
}

func (s *Store) CountReflections(ctx context.Context, params repository.ListReflectionsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.reflectionQuery(ctx, params))
}

func (s *Store) reflectionQuery(ctx context.Context, params repository.ListReflectionsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Reflection{})
	query = whereString(query, "period", params.Period)
	if params.From != nil {
		query = query.Where("date >= ?", params.From.UTC())
	}
	if params.To != nil {
		query = query.Where("date <= ?", params.To.UTC())
	}
	return query
}

// --- quotes ------------------------------------------------------------------

func (s *Store) CreateQuote(ctx context.Context, item *models.Quote) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Tags = cleanStrings(item.Tags)
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdateQuote(ctx context.Context, item *models.Quote) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Tags = cleanStrings(item.Tags)
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeleteQuote(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.Quote](s.db.WithContext(ctx), id)
}

func (s *Store) GetQuoteByID(ctx context.Context, id string) (*models.Quote, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Quote](s.db.WithContext(ctx), "id", id)
}

func (s *Store) RandomQuote(ctx context.Context) (*models.Quote, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	var item models.Quote
	if err := s.db.WithContext(ctx).Model(&models.Quote{}).Order("RANDOM()").Take(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *Store) ListQuotes(ctx context.Context, params repository.ListQuotesParams) ([]models.Quote, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Quote](s.quoteQuery(ctx, params), params.ListParams, "created_at")
}

func (s *Store) CountQuotes(ctx context.Context, params repository.ListQuotesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.quoteQuery(ctx, params))
}

func (s *Store) quoteQuery(ctx context.Context, params repository.ListQuotesParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Quote{})
	query = whereBool(query, "favorite", params.Favorite)
	return applySearch(query, params.Query, "text", "author")
}
