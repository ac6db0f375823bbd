package utils

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/shailyapp/shaily/config"
)

// AuthCookieName is the httpOnly cookie carrying the session token.
const AuthCookieName = "auth_token"

// Claims defines JWT claims used in the application.
type Claims struct {
	UserID string `json:"user_id"`
	Mobile string `json:"mobile"`
	jwt.RegisteredClaims
}

// GenerateToken issues a JWT for the specified user identity.
func GenerateToken(userID, mobile string, duration time.Duration) (string, error) {
	cfg := config.Get()

	claims := Claims{
		UserID: userID,
		Mobile: mobile,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates a JWT and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// SetAuthCookie stores the session token in an httpOnly cookie so browser
// clients stay authenticated without handling the token themselves.
func SetAuthCookie(ctx *gin.Context, token string, maxAge time.Duration) {
	ctx.SetCookie(AuthCookieName, token, int(maxAge.Seconds()), "/", "", false, true)
}

// ClearAuthCookie expires the session cookie.
func ClearAuthCookie(ctx *gin.Context) {
	ctx.SetCookie(AuthCookieName, "", -1, "/", "", false, true)
}
