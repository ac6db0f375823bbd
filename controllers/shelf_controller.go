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

// ShelfController manages each user's product shelf.
type ShelfController struct {
	db *gorm.DB
}

// NewShelfController creates a ShelfController.
func NewShelfController(db *gorm.DB) *ShelfController {
	return &ShelfController{db: db}
}

// ListProducts returns the user's products, newest first.
func (s *ShelfController) ListProducts(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	var products []models.UserProduct
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&products).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load products")
		return
	}

	utils.Success(ctx, products)
}

// AddProduct adds an item to the shelf.
func (s *ShelfController) AddProduct(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		ProductName string  `json:"productName" binding:"required"`
		ProductType string  `json:"productType" binding:"required"`
		Brand       string  `json:"brand"`
		OpenedDate  *string `json:"openedDate"`
		Notes       string  `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, "product name and type are required")
		return
	}
	if req.OpenedDate != nil {
		if _, err := time.Parse("2006-01-02", *req.OpenedDate); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40062, "openedDate must be YYYY-MM-DD")
			return
		}
	}

	product := models.UserProduct{
		UserID:      userID,
		ProductName: utils.Sanitize(strings.TrimSpace(req.ProductName)),
		ProductType: req.ProductType,
		Brand:       utils.Sanitize(req.Brand),
		OpenedDate:  req.OpenedDate,
		Notes:       utils.Sanitize(req.Notes),
	}
	if err := s.db.Create(&product).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to add product")
		return
	}

	ctx.JSON(http.StatusCreated, utils.JSONResponse{Code: 0, Message: "success", Data: product})
}

// DeleteProduct removes an item from the shelf. Ownership is enforced by
// matching both product id and user id in the delete.
func (s *ShelfController) DeleteProduct(ctx *gin.Context) {
	userID, ok := pathUserID(ctx)
	if !ok {
		return
	}
	productID := strings.TrimSpace(ctx.Param("productId"))
	if productID == "" {
		utils.Error(ctx, http.StatusBadRequest, 40063, "missing product id")
		return
	}

	res := s.db.Where("id = ? AND user_id = ?", productID, userID).Delete(&models.UserProduct{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to delete product")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40403, "product not found")
		return
	}

	utils.Success(ctx, gin.H{"message": "product deleted"})
}
