package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillhub/api-go/models"
	"github.com/quillhub/api-go/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Success 201 {object} models.Category
// @Router /categories [post]
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	user := utils.GetUser(c)

	var input struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	category := models.Category{
		Title:  input.Title,
		UserID: user.UserID,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Category already exists", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.Category
// @Router /categories/{id} [get]
func (cc *CategoryController) GetCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := cc.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found", "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load category", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// GetAllCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /categories [get]
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Order("title ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Only the category owner or an admin may update
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.Category
// @Router /categories/{id} [put]
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	user := utils.GetUser(c)
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var category models.Category
	if err := cc.DB.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found", "success": false})
		return
	}
	if category.UserID != user.UserID && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of the category", "success": false})
		return
	}

	category.Title = input.Title
	if err := cc.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Only the category owner or an admin may delete
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Router /categories/{id} [delete]
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	user := utils.GetUser(c)
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := cc.DB.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found", "success": false})
		return
	}
	if category.UserID != user.UserID && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of the category", "success": false})
		return
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully"})
}
