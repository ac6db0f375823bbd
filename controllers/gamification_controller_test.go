package controllers

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shailyapp/shaily/models"
)

func ledgerAt(db *gorm.DB, t time.Time) *GamificationController {
	return &GamificationController{db: db, now: func() time.Time { return t }}
}

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAward_FirstCompletion(t *testing.T) {
	db := newTestDB(t)
	g := ledgerAt(db, day("2024-03-10 14:00"))

	rec, err := g.award("user-1")
	require.NoError(t, err)

	assert.Equal(t, 5, rec.Points)
	assert.Equal(t, 1, rec.Streak)
	require.NotNil(t, rec.LastCompletedDate)
	assert.Equal(t, "2024-03-10", *rec.LastCompletedDate)
}

func TestAward_SameDayIsNoOp(t *testing.T) {
	db := newTestDB(t)
	g := ledgerAt(db, day("2024-03-10 09:00"))

	first, err := g.award("user-1")
	require.NoError(t, err)

	// Toggling the last task off and on again fires a second trigger.
	g2 := ledgerAt(db, day("2024-03-10 21:30"))
	second, err := g2.award("user-1")
	require.NoError(t, err)

	assert.Equal(t, first.Points, second.Points)
	assert.Equal(t, first.Streak, second.Streak)
	assert.Equal(t, *first.LastCompletedDate, *second.LastCompletedDate)

	var count int64
	require.NoError(t, db.Model(&models.DailyGamificationLog{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.EqualValues(t, 1, count)
	var log models.DailyGamificationLog
	require.NoError(t, db.First(&log, "user_id = ?", "user-1").Error)
	assert.Equal(t, 5, log.PointsEarned)
}

func TestAward_ConsecutiveDayExtendsStreak(t *testing.T) {
	db := newTestDB(t)

	_, err := ledgerAt(db, day("2024-03-10 08:00")).award("user-1")
	require.NoError(t, err)
	_, err = ledgerAt(db, day("2024-03-11 08:00")).award("user-1")
	require.NoError(t, err)
	rec, err := ledgerAt(db, day("2024-03-12 08:00")).award("user-1")
	require.NoError(t, err)

	assert.Equal(t, 15, rec.Points)
	assert.Equal(t, 3, rec.Streak)
	assert.Equal(t, "2024-03-12", *rec.LastCompletedDate)
}

func TestAward_GapResetsStreakToOne(t *testing.T) {
	db := newTestDB(t)

	_, err := ledgerAt(db, day("2024-03-10 08:00")).award("user-1")
	require.NoError(t, err)
	_, err = ledgerAt(db, day("2024-03-11 08:00")).award("user-1")
	require.NoError(t, err)

	// Skips the 12th and 13th, comes back on the 14th.
	rec, err := ledgerAt(db, day("2024-03-14 08:00")).award("user-1")
	require.NoError(t, err)

	assert.Equal(t, 15, rec.Points)
	assert.Equal(t, 1, rec.Streak)
}

func TestAward_MidnightBoundaryIsANewDay(t *testing.T) {
	db := newTestDB(t)

	_, err := ledgerAt(db, day("2024-03-10 23:59")).award("user-1")
	require.NoError(t, err)
	rec, err := ledgerAt(db, day("2024-03-11 00:01")).award("user-1")
	require.NoError(t, err)

	assert.Equal(t, 10, rec.Points)
	assert.Equal(t, 2, rec.Streak, "two minutes apart but across midnight counts as consecutive days")
}

func TestAward_ConcurrentSameDayCreditsOnce(t *testing.T) {
	db := newTestDB(t)
	now := day("2024-03-10 12:00")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledgerAt(db, now).award("user-1")
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var rec models.UserGamification
	require.NoError(t, db.First(&rec, "user_id = ?", "user-1").Error)
	assert.Equal(t, 5, rec.Points, "exactly one of the two racing calls may credit")
	assert.Equal(t, 1, rec.Streak)

	var log models.DailyGamificationLog
	require.NoError(t, db.First(&log, "user_id = ?", "user-1").Error)
	assert.Equal(t, 5, log.PointsEarned)
}

func TestAward_RollsBackWhenLogWriteFails(t *testing.T) {
	db := newTestDB(t)

	_, err := ledgerAt(db, day("2024-03-10 08:00")).award("user-1")
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(&models.DailyGamificationLog{}))

	_, err = ledgerAt(db, day("2024-03-11 08:00")).award("user-1")
	require.Error(t, err)

	// The record update must not survive the failed log upsert.
	var rec models.UserGamification
	require.NoError(t, db.First(&rec, "user_id = ?", "user-1").Error)
	assert.Equal(t, 5, rec.Points)
	assert.Equal(t, 1, rec.Streak)
	assert.Equal(t, "2024-03-10", *rec.LastCompletedDate)
}

func TestGetStatus_LazilyCreatesZeroRecord(t *testing.T) {
	db := newTestDB(t)
	g := ledgerAt(db, day("2024-03-10 10:00"))

	r := gin.New()
	r.GET("/gamification/:userId", authAs("user-1"), g.GetStatus)

	w := performRequest(t, r, http.MethodGet, "/gamification/user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rec models.UserGamification
	decodeData(t, w, &rec)
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, 0, rec.Points)
	assert.Equal(t, 0, rec.Streak)
	assert.Nil(t, rec.LastCompletedDate)

	// The zero record is persisted so subsequent reads are stable.
	var stored models.UserGamification
	require.NoError(t, db.First(&stored, "user_id = ?", "user-1").Error)
}

func TestGetStatus_DoesNotMutate(t *testing.T) {
	db := newTestDB(t)

	_, err := ledgerAt(db, day("2024-03-10 10:00")).award("user-1")
	require.NoError(t, err)

	g := ledgerAt(db, day("2024-03-12 10:00"))
	r := gin.New()
	r.GET("/gamification/:userId", authAs("user-1"), g.GetStatus)

	var first, second models.UserGamification
	decodeData(t, performRequest(t, r, http.MethodGet, "/gamification/user-1", nil), &first)
	decodeData(t, performRequest(t, r, http.MethodGet, "/gamification/user-1", nil), &second)

	assert.Equal(t, first.Points, second.Points)
	assert.Equal(t, first.Streak, second.Streak)
	assert.Equal(t, *first.LastCompletedDate, *second.LastCompletedDate)
}

func TestGetStatus_RejectsOtherUsers(t *testing.T) {
	db := newTestDB(t)
	g := ledgerAt(db, day("2024-03-10 10:00"))

	r := gin.New()
	r.GET("/gamification/:userId", authAs("user-2"), g.GetStatus)

	w := performRequest(t, r, http.MethodGet, "/gamification/user-1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWeeklyReport_ZeroFillsMissingDays(t *testing.T) {
	db := newTestDB(t)

	_, err := ledgerAt(db, day("2024-03-08 08:00")).award("user-1")
	require.NoError(t, err)
	_, err = ledgerAt(db, day("2024-03-10 08:00")).award("user-1")
	require.NoError(t, err)

	g := ledgerAt(db, day("2024-03-10 20:00"))
	r := gin.New()
	r.GET("/gamification/:userId/weekly", authAs("user-1"), g.WeeklyReport)

	w := performRequest(t, r, http.MethodGet, "/gamification/user-1/weekly", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var days []struct {
		Date    string `json:"date"`
		Weekday string `json:"weekday"`
		Points  int    `json:"points"`
	}
	decodeData(t, w, &days)
	require.Len(t, days, 7)

	assert.Equal(t, "2024-03-04", days[0].Date)
	assert.Equal(t, "2024-03-10", days[6].Date)

	total := 0
	zeroDays := 0
	for _, d := range days {
		total += d.Points
		if d.Points == 0 {
			zeroDays++
		}
	}
	assert.Equal(t, 10, total)
	assert.Equal(t, 5, zeroDays)
}

// Date columns must come back from the driver as the exact YYYY-MM-DD string
// that was stored; any conversion through time.Time would defeat the
// same-day and yesterday equality checks.
func TestDateColumnsRoundTripVerbatim(t *testing.T) {
	db := newTestDB(t)
	date := "2024-03-10"

	require.NoError(t, db.Create(&models.UserGamification{UserID: "user-1", LastCompletedDate: &date}).Error)
	require.NoError(t, db.Create(&models.DailyGamificationLog{UserID: "user-1", LogDate: date, PointsEarned: 5}).Error)
	require.NoError(t, db.Create(&models.DailyLog{UserID: "user-1", LogDate: date}).Error)
	require.NoError(t, db.Create(&models.PageView{Date: date, Path: "/blog", Count: 1}).Error)
	require.NoError(t, db.Create(&models.UserProduct{UserID: "user-1", ProductName: "Toner", ProductType: "toner", OpenedDate: &date}).Error)

	var rec models.UserGamification
	require.NoError(t, db.First(&rec, "user_id = ?", "user-1").Error)
	require.NotNil(t, rec.LastCompletedDate)
	assert.Equal(t, date, *rec.LastCompletedDate)

	var log models.DailyGamificationLog
	require.NoError(t, db.First(&log, "user_id = ?", "user-1").Error)
	assert.Equal(t, date, log.LogDate)

	var entry models.DailyLog
	require.NoError(t, db.First(&entry, "user_id = ?", "user-1").Error)
	assert.Equal(t, date, entry.LogDate)

	var pv models.PageView
	require.NoError(t, db.First(&pv, "path = ?", "/blog").Error)
	assert.Equal(t, date, pv.Date)

	var product models.UserProduct
	require.NoError(t, db.First(&product, "user_id = ?", "user-1").Error)
	require.NotNil(t, product.OpenedDate)
	assert.Equal(t, date, *product.OpenedDate)
}

func TestAward_TwoDaysProduceTwoLogRows(t *testing.T) {
	db := newTestDB(t)

	_, err := ledgerAt(db, day("2024-03-10 08:00")).award("user-1")
	require.NoError(t, err)
	_, err = ledgerAt(db, day("2024-03-11 08:00")).award("user-1")
	require.NoError(t, err)

	var logs []models.DailyGamificationLog
	require.NoError(t, db.Where("user_id = ?", "user-1").Order("log_date ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "2024-03-10", logs[0].LogDate)
	assert.Equal(t, 5, logs[0].PointsEarned)
	assert.Equal(t, "2024-03-11", logs[1].LogDate)
	assert.Equal(t, 5, logs[1].PointsEarned)
}
