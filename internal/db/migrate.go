package db

import (
	"dinoverse/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		// public site
		&models.BlogPost{},
		&models.PortfolioItem{},
		&models.Service{},
		&models.Product{},
		&models.Testimonial{},
		&models.Partner{},
		&models.Feature{},
		&models.Contact{},
		&models.SiteContent{},
		// life-os
		&models.Goal{},
		&models.Habit{},
		&models.HabitLog{},
		&models.Trade{},
		&models.Transaction{},
		&models.Rule{},
		&models.Reflection{},
		&models.Quote{},
	)
}
