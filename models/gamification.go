package models

import "time"

// UserGamification is the authoritative points/streak record, one row per
// user. LastCompletedDate holds a calendar date (YYYY-MM-DD, no time of day);
// nil means the user has never completed a full routine day. Calendar dates
// are stored as 10-char strings, not DATE columns, so the drivers return
// them verbatim instead of converting through time.Time; YYYY-MM-DD orders
// lexicographically, which the award guard relies on.
type UserGamification struct {
	UserID            string    `gorm:"primaryKey;size:36" json:"userId"`
	Points            int       `gorm:"not null;default:0" json:"points"`
	Streak            int       `gorm:"not null;default:0" json:"streak"`
	LastCompletedDate *string   `gorm:"size:10" json:"lastCompletedDate"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (UserGamification) TableName() string {
	return "user_gamification"
}

// DailyGamificationLog accumulates points earned per user per calendar day.
// Awards add onto PointsEarned rather than overwrite it, so the log cannot
// silently diverge from the main record under retries.
type DailyGamificationLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"size:36;not null;uniqueIndex:idx_gami_log_user_date" json:"userId"`
	LogDate      string    `gorm:"size:10;not null;uniqueIndex:idx_gami_log_user_date" json:"logDate"`
	PointsEarned int       `gorm:"not null;default:0" json:"pointsEarned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (DailyGamificationLog) TableName() string {
	return "daily_gamification_logs"
}
