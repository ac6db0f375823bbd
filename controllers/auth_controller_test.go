package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shailyapp/shaily/models"
	"github.com/shailyapp/shaily/utils"
)

func authRouter(db *gorm.DB) *gin.Engine {
	ac := NewAuthController(db)
	r := gin.New()
	r.POST("/auth/signup", ac.Signup)
	r.POST("/auth/login", ac.Login)
	return r
}

const signupBody = `{
	"mobile": "09123456789",
	"password": "secret123",
	"name": "Sara",
	"age": "25-34",
	"skinType": "oily",
	"skinConcerns": ["acne", "redness"],
	"hairType": "curly",
	"hairConcerns": ["frizz"]
}`

func TestSignup_CreatesUserAndSetsCookie(t *testing.T) {
	db := newTestDB(t)
	r := authRouter(db)

	w := performRequest(t, r, http.MethodPost, "/auth/signup", strings.NewReader(signupBody))
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeData(t, w, &data)
	assert.NotEmpty(t, data.Token)
	assert.NotEmpty(t, data.User.ID)
	assert.Equal(t, "09123456789", data.User.Mobile)
	assert.Equal(t, []string{"acne", "redness"}, []string(data.User.SkinConcerns))

	cookieSet := false
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.AuthCookieName {
			cookieSet = true
			assert.True(t, c.HttpOnly)
			assert.NotEmpty(t, c.Value)
		}
	}
	assert.True(t, cookieSet, "session cookie must be set on signup")

	// The stored hash never leaves the server.
	assert.NotContains(t, w.Body.String(), "password")

	claims, err := utils.ParseToken(data.Token)
	require.NoError(t, err)
	assert.Equal(t, data.User.ID, claims.UserID)
}

func TestSignup_DuplicateMobileConflicts(t *testing.T) {
	db := newTestDB(t)
	r := authRouter(db)

	w := performRequest(t, r, http.MethodPost, "/auth/signup", strings.NewReader(signupBody))
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, r, http.MethodPost, "/auth/signup", strings.NewReader(signupBody))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignup_RejectsShortPassword(t *testing.T) {
	db := newTestDB(t)
	r := authRouter(db)

	w := performRequest(t, r, http.MethodPost, "/auth/signup",
		strings.NewReader(`{"mobile":"09111111111","password":"abc","name":"Sara"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	r := authRouter(db)

	w := performRequest(t, r, http.MethodPost, "/auth/signup", strings.NewReader(signupBody))
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, r, http.MethodPost, "/auth/login",
		strings.NewReader(`{"mobile":"09123456789","password":"secret123"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeData(t, w, &data)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "Sara", data.User.Name)
}

func TestLogin_WrongPasswordUnauthorized(t *testing.T) {
	db := newTestDB(t)
	r := authRouter(db)

	w := performRequest(t, r, http.MethodPost, "/auth/signup", strings.NewReader(signupBody))
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, r, http.MethodPost, "/auth/login",
		strings.NewReader(`{"mobile":"09123456789","password":"wrong-pass"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownMobileUnauthorized(t *testing.T) {
	db := newTestDB(t)
	r := authRouter(db)

	w := performRequest(t, r, http.MethodPost, "/auth/login",
		strings.NewReader(`{"mobile":"09000000000","password":"whatever"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
