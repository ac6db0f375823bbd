package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shailyapp/shaily/config"
	"github.com/shailyapp/shaily/models"
	"github.com/shailyapp/shaily/utils"
)

// GamificationController maintains the daily points/streak ledger. All day
// comparisons use calendar dates in server-local time; the clock is a field
// so tests can move across day boundaries deterministically.
type GamificationController struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGamificationController creates a controller backed by the live clock.
func NewGamificationController(db *gorm.DB) *GamificationController {
	return &GamificationController{db: db, now: time.Now}
}

// GetStatus returns the user's points/streak record, creating a zero-valued
// record on first access so later reads are stable.
func (g *GamificationController) GetStatus(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	record, err := g.loadOrCreate(g.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load gamification record")
		return
	}
	utils.Success(ctx, record)
}

// RecordDailyCompletion awards the daily routine-completion credit. The
// client calls this when it observes all tasks transition to completed; the
// server only decides whether today has already been credited.
func (g *GamificationController) RecordDailyCompletion(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	record, err := g.award(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to update gamification record")
		return
	}
	utils.Success(ctx, record)
}

// award runs the full decision rule in one transaction:
//   - same calendar day as the last credit: no-op, return the record as is
//   - otherwise +N points; streak+1 when yesterday was credited, else
//     streak restarts at 1; lastCompletedDate becomes today
//   - the per-day log row accumulates the awarded points via upsert-add
//
// The main-record write is guarded on last_completed_date still being older
// than today, so two same-day calls racing past the read both reach the
// UPDATE but only one affects a row. The loser re-reads and returns the
// winner's result.
func (g *GamificationController) award(userID string) (*models.UserGamification, error) {
	reward := config.Get().DailyRewardPoints
	now := g.now()
	today := dateString(now)
	yesterday := dateString(now.AddDate(0, 0, -1))

	var result models.UserGamification
	err := g.db.Transaction(func(tx *gorm.DB) error {
		record, err := g.loadOrCreate(tx, userID)
		if err != nil {
			return err
		}

		if record.LastCompletedDate != nil && *record.LastCompletedDate == today {
			result = *record
			return nil
		}

		streak := 1
		if record.LastCompletedDate != nil && *record.LastCompletedDate == yesterday {
			streak = record.Streak + 1
		}

		res := tx.Model(&models.UserGamification{}).
			Where("user_id = ? AND (last_completed_date IS NULL OR last_completed_date < ?)", userID, today).
			Updates(map[string]interface{}{
				"points":              gorm.Expr("points + ?", reward),
				"streak":              streak,
				"last_completed_date": today,
				"updated_at":          time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost a same-day race; surface whatever the winner wrote. The
			// locking read forces a current read under REPEATABLE READ,
			// where a plain SELECT could still see the pre-award snapshot.
			return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&result, "user_id = ?", userID).Error
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"points_earned": gorm.Expr("points_earned + ?", reward), "updated_at": time.Now()}),
		}).Create(&models.DailyGamificationLog{
			UserID:       userID,
			LogDate:      today,
			PointsEarned: reward,
		}).Error; err != nil {
			return err
		}

		return tx.First(&result, "user_id = ?", userID).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// WeeklyReport returns the last 7 calendar days of earned points, oldest
// first, zero-filling days without a log entry.
func (g *GamificationController) WeeklyReport(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	now := g.now()
	since := dateString(now.AddDate(0, 0, -6))

	var logs []models.DailyGamificationLog
	if err := g.db.Where("user_id = ? AND log_date >= ?", userID, since).
		Order("log_date ASC").Find(&logs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load weekly report")
		return
	}

	byDate := make(map[string]int, len(logs))
	for _, l := range logs {
		byDate[l.LogDate] = l.PointsEarned
	}

	type dayPoints struct {
		Date    string `json:"date"`
		Weekday string `json:"weekday"`
		Points  int    `json:"points"`
	}

	days := make([]dayPoints, 0, 7)
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := dateString(d)
		days = append(days, dayPoints{
			Date:    key,
			Weekday: d.Weekday().String(),
			Points:  byDate[key],
		})
	}

	utils.Success(ctx, days)
}

// loadOrCreate fetches the user's record, inserting a zero record when none
// exists. The insert uses ON CONFLICT DO NOTHING so concurrent first-time
// calls cannot fail on the primary key.
func (g *GamificationController) loadOrCreate(tx *gorm.DB, userID string) (*models.UserGamification, error) {
	var record models.UserGamification
	err := tx.First(&record, "user_id = ?", userID).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	zero := models.UserGamification{UserID: userID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&zero).Error; err != nil {
		return nil, err
	}
	if err := tx.First(&record, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// dateString truncates a wall-clock time to its calendar date.
func dateString(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
