package models

import (
	"time"

	"gorm.io/datatypes"
)

type BlogPost struct {
	Document

	Title       string                      `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string                      `gorm:"type:varchar(200);not null;uniqueIndex" json:"slug"`
	Excerpt     string                      `gorm:"type:text" json:"excerpt"`
	Content     string                      `gorm:"type:text;not null" json:"content"`
	CoverImage  string                      `gorm:"type:text" json:"coverImage"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Author      string                      `gorm:"type:varchar(100)" json:"author"`
	Published   bool                        `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time                  `gorm:"index" json:"publishedAt"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}
