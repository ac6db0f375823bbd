package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shailyapp/shaily/models"
)

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.NewString(),
		Mobile:       "09123456789",
		Name:         "Sara",
		SkinType:     "oily",
		SkinConcerns: models.StringList{"acne"},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func profileRouter(db *gorm.DB, userID string) *gin.Engine {
	pc := NewProfileController(db)
	r := gin.New()
	r.GET("/users/:id", authAs(userID), pc.GetProfile)
	r.PATCH("/users/:id", authAs(userID), pc.UpdateProfile)
	return r
}

func TestGetProfile(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	r := profileRouter(db, user.ID)

	w := performRequest(t, r, http.MethodGet, "/users/"+user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	decodeData(t, w, &got)
	assert.Equal(t, "Sara", got.Name)
	assert.Equal(t, models.StringList{"acne"}, got.SkinConcerns)
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestGetProfile_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	r := profileRouter(db, "user-1")

	w := performRequest(t, r, http.MethodGet, "/users/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	r := profileRouter(db, user.ID)

	w := performRequest(t, r, http.MethodPatch, "/users/"+user.ID,
		strings.NewReader(`{"skinType":"dry","hairConcerns":["frizz","split ends"]}`))
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "dry", stored.SkinType)
	assert.Equal(t, models.StringList{"frizz", "split ends"}, stored.HairConcerns)
	// Untouched fields keep their values.
	assert.Equal(t, "Sara", stored.Name)
	assert.Equal(t, models.StringList{"acne"}, stored.SkinConcerns)
}

func TestUpdateProfile_SanitizesMarkup(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	r := profileRouter(db, user.ID)

	w := performRequest(t, r, http.MethodPatch, "/users/"+user.ID,
		strings.NewReader(`{"name":"Sara <script>alert(1)</script>"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.NotContains(t, stored.Name, "<script>")
	assert.Contains(t, stored.Name, "Sara")
}

func TestUpdateProfile_ForeignUserForbidden(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	r := profileRouter(db, "someone-else")

	w := performRequest(t, r, http.MethodPatch, "/users/"+user.ID,
		strings.NewReader(`{"skinType":"dry"}`))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
