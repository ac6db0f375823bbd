package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shailyapp/shaily/models"
	"github.com/shailyapp/shaily/utils"
)

// ProfileController serves user profiles collected during onboarding.
type ProfileController struct {
	db *gorm.DB
}

// NewProfileController creates a ProfileController.
func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

// GetProfile returns a user's profile. Reads are cached for an hour and
// invalidated whenever the profile changes.
func (p *ProfileController) GetProfile(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40020, "missing user id")
		return
	}

	if b, ok := utils.CacheGetBytes("cache:profile:" + id); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var user models.User
	if err := p.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40402, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load profile")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: user}
	utils.CacheSetJSON("cache:profile:"+id, wrapper, time.Hour)
	utils.Success(ctx, user)
}

// UpdateProfile modifies the authenticated user's onboarding answers. Only
// fields present in the payload are touched.
func (p *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	if id := strings.TrimSpace(ctx.Param("id")); id != "" && id != userID {
		utils.Error(ctx, http.StatusForbidden, 40310, "cannot access another user's data")
		return
	}

	var req struct {
		Name         *string   `json:"name"`
		Age          *string   `json:"age"`
		Job          *string   `json:"job"`
		Gender       *string   `json:"gender"`
		SkinType     *string   `json:"skinType"`
		SkinConcerns *[]string `json:"skinConcerns"`
		HairType     *string   `json:"hairType"`
		HairConcerns *[]string `json:"hairConcerns"`
		Comedones    *string   `json:"comedones"`
		RedPimples   *string   `json:"redPimples"`
		FineLines    *string   `json:"fineLines"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}

	var user models.User
	if err := p.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40402, "user not found")
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = utils.Sanitize(strings.TrimSpace(*req.Name))
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Job != nil {
		user.Job = utils.Sanitize(*req.Job)
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.SkinType != nil {
		user.SkinType = *req.SkinType
	}
	if req.SkinConcerns != nil {
		user.SkinConcerns = *req.SkinConcerns
	}
	if req.HairType != nil {
		user.HairType = *req.HairType
	}
	if req.HairConcerns != nil {
		user.HairConcerns = *req.HairConcerns
	}
	if req.Comedones != nil {
		user.Comedones = *req.Comedones
	}
	if req.RedPimples != nil {
		user.RedPimples = *req.RedPimples
	}
	if req.FineLines != nil {
		user.FineLines = *req.FineLines
	}

	if err := p.db.Save(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to update profile")
		return
	}

	utils.InvalidateByPrefix("cache:profile:" + userID)
	utils.Success(ctx, user)
}
