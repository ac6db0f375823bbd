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

// BlogController serves read-only editorial content.
type BlogController struct {
	db *gorm.DB
}

// NewBlogController creates a BlogController.
func NewBlogController(db *gorm.DB) *BlogController {
	return &BlogController{db: db}
}

// blogListItem omits the article body from list responses.
type blogListItem struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	CoverImageURL string    `json:"coverImageUrl"`
	AuthorName    string    `json:"authorName"`
	PublishedAt   time.Time `json:"publishedAt"`
}

// ListPosts returns all articles, newest first. The list is cached since
// posts are seeded editorially and change rarely.
func (b *BlogController) ListPosts(ctx *gin.Context) {
	if cached, ok := utils.CacheGetBytes("cache:blog:list"); ok {
		ctx.Data(http.StatusOK, "application/json", cached)
		return
	}

	var items []blogListItem
	if err := b.db.Model(&models.BlogPost{}).
		Select("id", "title", "slug", "excerpt", "cover_image_url", "author_name", "published_at").
		Order("published_at DESC").
		Find(&items).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load posts")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: items}
	utils.CacheSetJSON("cache:blog:list", wrapper, time.Hour)
	utils.Success(ctx, items)
}

// GetPost returns one article by slug with its HTML body sanitized.
func (b *BlogController) GetPost(ctx *gin.Context) {
	slug := strings.TrimSpace(ctx.Param("slug"))
	if slug == "" {
		utils.Error(ctx, http.StatusBadRequest, 40070, "missing slug")
		return
	}

	if cached, ok := utils.CacheGetBytes("cache:blog:post:" + slug); ok {
		ctx.Data(http.StatusOK, "application/json", cached)
		return
	}

	var post models.BlogPost
	if err := b.db.First(&post, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40404, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to load post")
		return
	}

	post.Content = utils.Sanitize(post.Content)

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: post}
	utils.CacheSetJSON("cache:blog:post:"+slug, wrapper, time.Hour)
	utils.Success(ctx, post)
}
