package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shailyapp/shaily/models"
	"github.com/shailyapp/shaily/utils"
)

// StatsController exposes coarse application statistics.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a StatsController.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate counts. Individual failures degrade to zero
// instead of failing the endpoint.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var postCount int64
	var viewsToday int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := s.db.Model(&models.BlogPost{}).Count(&postCount).Error; err != nil {
		postCount = 0
	}

	today := time.Now().In(time.Local).Format("2006-01-02")
	if err := s.db.Model(&models.PageView{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&viewsToday).Error; err != nil {
		viewsToday = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":  userCount,
		"post_count":  postCount,
		"views_today": viewsToday,
	})
}
