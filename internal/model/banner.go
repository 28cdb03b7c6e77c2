package model

import "time"

// NewsBanner — maps the news_banners table.
// Date-windowed announcements shown on the portal home page.
type NewsBanner struct {
	BannerID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"banner_id"`
	Title    string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Body     string    `gorm:"type:text;not null"                             json:"body"`
	StartsAt time.Time `gorm:"not null"                                       json:"starts_at"`
	EndsAt   time.Time `gorm:"not null"                                       json:"ends_at"`
	IsActive bool      `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName sets the table name.
func (NewsBanner) TableName() string { return "news_banners" }
