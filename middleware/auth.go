package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shailyapp/shaily/utils"
)

const (
	// ContextUserIDKey is the key used to store authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextMobileKey stores the user's mobile number inside Gin context.
	ContextMobileKey = "mobile"
)

// AuthRequired ensures the request is authenticated via JWT. The token is
// read from the auth_token cookie set at login, with an Authorization bearer
// header accepted as a fallback for non-browser clients.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := tokenFromRequest(ctx)
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authentication required")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(tokenString) {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "token revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextMobileKey, claims.Mobile)
		ctx.Next()
	}
}

func tokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(utils.AuthCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
