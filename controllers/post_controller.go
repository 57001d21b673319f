package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quillhub/api-go/logging"
	"github.com/quillhub/api-go/models"
	"github.com/quillhub/api-go/services"
	"github.com/quillhub/api-go/utils"
)

type PostController struct {
	Posts     *services.PostService
	Reactions *services.ReactionService
}

type CreatePostRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Photo       string   `json:"photo"`
	Tags        []string `json:"tags"`
	CategoryID  *uint    `json:"categoryId"`
}

type UpdatePostRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Photo       string   `json:"photo"`
	Tags        []string `json:"tags"`
	CategoryID  *uint    `json:"categoryId"`
}

func NewPostController(posts *services.PostService, reactions *services.ReactionService) *PostController {
	return &PostController{Posts: posts, Reactions: reactions}
}

func postSummary(p *models.Post) gin.H {
	likes, dislikes := p.ReactionCounts()
	return gin.H{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"photo":       p.Photo,
		"tags":        p.Tags,
		"author":      userSummary(&p.User),
		"category":    p.Category,
		"likes":       likes,
		"dislikes":    dislikes,
		"createdAt":   p.CreatedAt,
	}
}

// CreatePost godoc
// @Summary Create a new post
// @Description Suspended authors cannot post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post creation request"
// @Success 201 {object} models.Post
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	post, err := pc.Posts.Create(c.Request.Context(), user.UserID, services.CreatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Photo:       req.Photo,
		Tags:        req.Tags,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": post})
}

// GetPost godoc
// @Summary Get post details
// @Description Records the authenticated reader as a viewer
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	user := utils.GetUser(c)
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := pc.Posts.Get(c.Request.Context(), postID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// View recording is idempotent and must not fail the read.
	if err := pc.Reactions.RecordView(c.Request.Context(), user.UserID, postID); err != nil {
		logging.L().Warn().Err(err).Uint("post_id", postID).Msg("failed to record post view")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": postSummary(post), "comments": post.Comments})
}

// GetAllPosts godoc
// @Summary List posts
// @Description Posts from authors who blocked the requester are excluded
// @Tags posts
// @Produce json
// @Param categoryId query int false "Filter by category"
// @Success 200 {object} map[string]interface{}
// @Router /posts [get]
func (pc *PostController) GetAllPosts(c *gin.Context) {
	user := utils.GetUser(c)

	var posts []models.Post
	var err error
	if raw := c.Query("categoryId"); raw != "" {
		categoryID, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID", "success": false})
			return
		}
		posts, err = pc.Posts.ListByCategory(c.Request.Context(), user.UserID, uint(categoryID))
	} else {
		posts, err = pc.Posts.List(c.Request.Context(), user.UserID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data := make([]gin.H, len(posts))
	for i := range posts {
		data[i] = postSummary(&posts[i])
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// UpdatePost godoc
// @Summary Update a post
// @Description Only the owner may update
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body UpdatePostRequest true "Post update request"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	post, err := pc.Posts.Update(c.Request.Context(), user.UserID, postID, services.UpdatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Photo:       req.Photo,
		Tags:        req.Tags,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

// DeletePost godoc
// @Summary Delete a post
// @Description Owner or admin only
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := pc.Posts.Delete(c.Request.Context(), user.UserID, user.IsAdmin, postID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted successfully"})
}
