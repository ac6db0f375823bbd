package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shailyapp/shaily/models"
)

// PageViewRecorder counts successful GET hits per day and path, feeding the
// stats endpoint. API and static routes are skipped so internal traffic does
// not inflate the numbers.
func PageViewRecorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		path := c.Request.URL.Path
		if path == "/health" || strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/static/") {
			return
		}

		today := time.Now().In(time.Local).Format("2006-01-02")

		// Atomic upsert so concurrent hits never race on the counter.
		_ = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "path"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1"), "updated_at": time.Now()}),
		}).Create(&models.PageView{Date: today, Path: path, Count: 1}).Error
	}
}
