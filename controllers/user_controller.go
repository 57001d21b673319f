package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillhub/api-go/models"
	"github.com/quillhub/api-go/services"
	"github.com/quillhub/api-go/utils"
)

type UserController struct {
	Users         *services.UserService
	Relationships *services.RelationshipService
	Engagement    *services.EngagementService
}

func NewUserController(users *services.UserService, relationships *services.RelationshipService, engagement *services.EngagementService) *UserController {
	return &UserController{
		Users:         users,
		Relationships: relationships,
		Engagement:    engagement,
	}
}

func userSummary(u *models.User) gin.H {
	return gin.H{
		"id":           u.ID,
		"firstName":    u.FirstName,
		"lastName":     u.LastName,
		"fullName":     u.FullName(),
		"profilePhoto": u.ProfilePhoto,
		"userAward":    u.UserAward,
	}
}

func userSummaries(users []models.User) []gin.H {
	out := make([]gin.H, len(users))
	for i := range users {
		out[i] = userSummary(&users[i])
	}
	return out
}

// GetUserProfile godoc
// @Summary Get a user's profile
// @Description Returns the user record with derived engagement fields and counters
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/profile [get]
func (uc *UserController) GetUserProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	user, err := uc.Users.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	stats, err := uc.Engagement.ProfileStats(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var isFollowing bool
	if currentUser.UserID != user.ID {
		isFollowing, _ = uc.Relationships.IsFollowing(c.Request.Context(), currentUser.UserID, user.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":             user.ID,
			"firstName":      user.FirstName,
			"lastName":       user.LastName,
			"fullName":       user.FullName(),
			"initials":       user.Initials(),
			"email":          user.Email,
			"bio":            user.Bio,
			"profilePhoto":   user.ProfilePhoto,
			"userAward":      user.UserAward,
			"isBlocked":      user.IsBlocked,
			"isInactive":     user.IsInactive,
			"lastPostAt":     user.LastPostAt,
			"lastSeen":       user.LastSeen(time.Now()),
			"createdAt":      user.CreatedAt,
			"isOwnProfile":   currentUser.UserID == user.ID,
			"isFollowing":    isFollowing,
			"postsCount":     stats.Posts,
			"followersCount": stats.Followers,
			"followingCount": stats.Following,
			"viewersCount":   stats.Viewers,
		},
	})
}

// GetAllUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users [get]
func (uc *UserController) GetAllUsers(c *gin.Context) {
	users, err := uc.Users.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": userSummaries(users)})
}

// GetProfileViewers godoc
// @Summary Get who viewed my profile
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /me/viewers [get]
func (uc *UserController) GetProfileViewers(c *gin.Context) {
	currentUser := utils.GetUser(c)

	viewers, err := uc.Relationships.Viewers(c.Request.Context(), currentUser.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "viewers": userSummaries(viewers)})
}

// GetUserFollowers godoc
// @Summary Get a user's followers
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/followers [get]
func (uc *UserController) GetUserFollowers(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	followers, err := uc.Relationships.Followers(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "followers": userSummaries(followers)})
}

// GetUserFollowing godoc
// @Summary Get users a user is following
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/following [get]
func (uc *UserController) GetUserFollowing(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	following, err := uc.Relationships.Following(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "following": userSummaries(following)})
}

// GetBlockedUsers godoc
// @Summary Get the users I have blocked
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /me/blocked [get]
func (uc *UserController) GetBlockedUsers(c *gin.Context) {
	currentUser := utils.GetUser(c)

	blocked, err := uc.Relationships.BlockedUsers(c.Request.Context(), currentUser.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "blocked": userSummaries(blocked)})
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /me/profile [put]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
		Email        string `json:"email" binding:"omitempty,email"`
		Bio          string `json:"bio"`
		ProfilePhoto string `json:"profilePhoto"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	user, err := uc.Users.UpdateProfile(c.Request.Context(), currentUser.UserID, services.UpdateProfileInput{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Bio:          input.Bio,
		ProfilePhoto: input.ProfilePhoto,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": userSummary(user)})
}

// UpdatePassword godoc
// @Summary Update own password
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /me/password [put]
func (uc *UserController) UpdatePassword(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}

	if err := uc.Users.UpdatePassword(c.Request.Context(), currentUser.UserID, string(hashed)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}

// DeleteAccount godoc
// @Summary Delete own account
// @Description Removes the account with all posts, comments, categories and graph edges
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /me [delete]
func (uc *UserController) DeleteAccount(c *gin.Context) {
	currentUser := utils.GetUser(c)

	if err := uc.Users.Delete(c.Request.Context(), currentUser.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted successfully"})
}

// AdminBlockUser godoc
// @Summary Admin: suspend a user
// @Description Suspension is sticky and survives engagement recomputes
// @Tags admin
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/users/{userId}/block [post]
func (uc *UserController) AdminBlockUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := uc.Users.AdminBlock(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User blocked successfully"})
}

// AdminUnblockUser godoc
// @Summary Admin: lift a user suspension
// @Tags admin
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/users/{userId}/block [delete]
func (uc *UserController) AdminUnblockUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := uc.Users.AdminUnblock(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User unblocked successfully"})
}
