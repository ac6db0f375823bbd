package models

import "time"

// DailyLog records self-reported lifestyle metrics for one user and day.
// Saving the same day again replaces the metrics (upsert).
type DailyLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:36;not null;uniqueIndex:idx_daily_log_user_date" json:"userId"`
	LogDate     string    `gorm:"size:10;not null;uniqueIndex:idx_daily_log_user_date" json:"logDate"`
	SleepHours  float64   `json:"sleepHours"`
	WaterIntake int       `json:"waterIntake"` // glasses
	StressLevel int       `json:"stressLevel"` // 1-5
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
