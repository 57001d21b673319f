package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quillhub/api-go/services"
	"github.com/quillhub/api-go/utils"
)

type InteractionController struct {
	Relationships *services.RelationshipService
	Reactions     *services.ReactionService
}

func NewInteractionController(relationships *services.RelationshipService, reactions *services.ReactionService) *InteractionController {
	return &InteractionController{
		Relationships: relationships,
		Reactions:     reactions,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id", "success": false})
		return 0, false
	}
	return uint(id), true
}

// FollowUser godoc
// @Summary Follow a user
// @Tags interactions
// @Produce json
// @Param userId path string true "User ID to follow"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/follow [post]
func (ic *InteractionController) FollowUser(c *gin.Context) {
	actor := utils.GetUser(c)
	targetID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := ic.Relationships.Follow(c.Request.Context(), actor.UserID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully followed user",
	})
}

// UnfollowUser godoc
// @Summary Unfollow a user
// @Tags interactions
// @Produce json
// @Param userId path string true "User ID to unfollow"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/follow [delete]
func (ic *InteractionController) UnfollowUser(c *gin.Context) {
	actor := utils.GetUser(c)
	targetID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := ic.Relationships.Unfollow(c.Request.Context(), actor.UserID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully unfollowed user",
	})
}

// BlockUser godoc
// @Summary Block a user
// @Tags interactions
// @Produce json
// @Param userId path string true "User ID to block"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/block [post]
func (ic *InteractionController) BlockUser(c *gin.Context) {
	actor := utils.GetUser(c)
	targetID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := ic.Relationships.Block(c.Request.Context(), actor.UserID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User blocked successfully",
	})
}

// UnblockUser godoc
// @Summary Unblock a user
// @Tags interactions
// @Produce json
// @Param userId path string true "User ID to unblock"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/block [delete]
func (ic *InteractionController) UnblockUser(c *gin.Context) {
	actor := utils.GetUser(c)
	targetID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := ic.Relationships.Unblock(c.Request.Context(), actor.UserID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User unblocked successfully",
	})
}

// ViewProfile godoc
// @Summary Record a profile view
// @Description Records the authenticated user as a viewer of the profile, once per viewer
// @Tags interactions
// @Produce json
// @Param userId path string true "Profile owner ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/view [post]
func (ic *InteractionController) ViewProfile(c *gin.Context) {
	actor := utils.GetUser(c)
	ownerID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := ic.Relationships.RecordProfileView(c.Request.Context(), actor.UserID, ownerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile view recorded",
	})
}

// LikePost godoc
// @Summary Like or unlike a post
// @Description Toggles like status; clears any existing dislike
// @Tags interactions
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/like [post]
func (ic *InteractionController) LikePost(c *gin.Context) {
	actor := utils.GetUser(c)
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	liked, err := ic.Reactions.Like(c.Request.Context(), actor.UserID, postID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "liked": liked})
}

// DislikePost godoc
// @Summary Dislike or un-dislike a post
// @Description Toggles dislike status; clears any existing like
// @Tags interactions
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/dislike [post]
func (ic *InteractionController) DislikePost(c *gin.Context) {
	actor := utils.GetUser(c)
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	disliked, err := ic.Reactions.Dislike(c.Request.Context(), actor.UserID, postID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "disliked": disliked})
}
