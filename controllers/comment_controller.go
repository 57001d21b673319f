package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillhub/api-go/models"
	"github.com/quillhub/api-go/utils"
)

type CommentController struct {
	DB *gorm.DB
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 201 {object} models.Comment
// @Router /posts/{id}/comments [post]
func (cc *CommentController) CreateComment(c *gin.Context) {
	user := utils.GetUser(c)
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var author models.User
	if err := cc.DB.First(&author, user.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user", "success": false})
		return
	}
	if author.IsBlocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended", "success": false})
		return
	}

	var post models.Post
	if err := cc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found", "success": false})
		return
	}

	comment := models.Comment{
		Description: input.Description,
		PostID:      post.ID,
		UserID:      user.UserID,
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": comment})
}

// UpdateComment godoc
// @Summary Update a comment
// @Description Only the comment owner may update
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} models.Comment
// @Router /comments/{id} [put]
func (cc *CommentController) UpdateComment(c *gin.Context) {
	user := utils.GetUser(c)
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var comment models.Comment
	if err := cc.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found", "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comment", "success": false})
		return
	}
	if comment.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of the comment", "success": false})
		return
	}

	comment.Description = input.Description
	if err := cc.DB.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": comment})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Only the comment owner may delete
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Router /comments/{id} [delete]
func (cc *CommentController) DeleteComment(c *gin.Context) {
	user := utils.GetUser(c)
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var comment models.Comment
	if err := cc.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found", "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comment", "success": false})
		return
	}
	if comment.UserID != user.UserID && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of the comment", "success": false})
		return
	}

	if err := cc.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted successfully"})
}
