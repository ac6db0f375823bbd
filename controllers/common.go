package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shailyapp/shaily/middleware"
	"github.com/shailyapp/shaily/utils"
)

// getUserID returns the authenticated user id stored by the auth middleware.
func getUserID(ctx *gin.Context) (string, bool) {
	v, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// pathUserID extracts the :userId route parameter and requires it to match
// the authenticated user. Writes the error response itself on failure.
func pathUserID(ctx *gin.Context) (string, bool) {
	id := strings.TrimSpace(ctx.Param("userId"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40010, "missing user id")
		return "", false
	}
	authID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return "", false
	}
	if authID != id {
		utils.Error(ctx, http.StatusForbidden, 40310, "cannot access another user's data")
		return "", false
	}
	return id, true
}
