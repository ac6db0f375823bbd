package models

import "time"

// PageView stores aggregated page view counts per day and path.
type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"size:10;not null;uniqueIndex:idx_pv_date_path" json:"date"`
	Path      string    `gorm:"size:255;not null;uniqueIndex:idx_pv_date_path" json:"path"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
