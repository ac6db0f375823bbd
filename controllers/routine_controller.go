package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shailyapp/shaily/models"
	"github.com/shailyapp/shaily/utils"
)

// RoutineController stores each user's daily task list and their lifestyle
// logs. Completing the whole list is detected client-side; the client then
// calls the gamification endpoint, so routine writes never block on the
// ledger and a failed credit cannot roll back a checkbox toggle.
type RoutineController struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRoutineController creates a RoutineController.
func NewRoutineController(db *gorm.DB) *RoutineController {
	return &RoutineController{db: db, now: time.Now}
}

// GetRoutine returns the user's task list, empty when none has been saved.
func (r *RoutineController) GetRoutine(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	var routine models.Routine
	if err := r.db.First(&routine, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Success(ctx, models.Routine{UserID: userID, Tasks: models.TaskList{}})
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load routine")
		return
	}

	utils.Success(ctx, routine)
}

// SaveRoutine replaces the user's task list.
func (r *RoutineController) SaveRoutine(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		Tasks models.TaskList `json:"tasks"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40051, "invalid request payload")
		return
	}
	if req.Tasks == nil {
		req.Tasks = models.TaskList{}
	}

	routine := models.Routine{UserID: userID, Tasks: req.Tasks}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"tasks": req.Tasks, "updated_at": time.Now()}),
	}).Create(&routine).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to save routine")
		return
	}

	utils.Success(ctx, routine)
}

// GetDailyLog returns the lifestyle log for the requested date, defaulting
// to today. Responds with null data when nothing was logged.
func (r *RoutineController) GetDailyLog(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	date := ctx.Query("date")
	if date == "" {
		date = dateString(r.now())
	}

	var entry models.DailyLog
	if err := r.db.First(&entry, "user_id = ? AND log_date = ?", userID, date).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Success(ctx, nil)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load daily log")
		return
	}

	utils.Success(ctx, entry)
}

// SaveDailyLog upserts the lifestyle metrics for one day; saving the same
// day twice replaces the previous values.
func (r *RoutineController) SaveDailyLog(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		LogDate     string  `json:"logDate"`
		SleepHours  float64 `json:"sleepHours"`
		WaterIntake int     `json:"waterIntake"`
		StressLevel int     `json:"stressLevel"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40052, "invalid request payload")
		return
	}
	if req.LogDate == "" {
		req.LogDate = dateString(r.now())
	}
	if _, err := time.Parse("2006-01-02", req.LogDate); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40053, "logDate must be YYYY-MM-DD")
		return
	}

	entry := models.DailyLog{
		UserID:      userID,
		LogDate:     req.LogDate,
		SleepHours:  req.SleepHours,
		WaterIntake: req.WaterIntake,
		StressLevel: req.StressLevel,
	}
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"sleep_hours":  req.SleepHours,
			"water_intake": req.WaterIntake,
			"stress_level": req.StressLevel,
			"updated_at":   time.Now(),
		}),
	}).Create(&entry).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to save daily log")
		return
	}

	utils.Success(ctx, entry)
}
