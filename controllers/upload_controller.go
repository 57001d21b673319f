package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quillhub/api-go/config"
	"github.com/quillhub/api-go/models"
	"github.com/quillhub/api-go/utils"
)

type UploadController struct {
	DB       *gorm.DB
	R2Client *s3.Client
	R2Config *config.R2Config
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
	Kind        string `json:"kind" binding:"required,oneof=post profile"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

const maxImageSize = 10 * 1024 * 1024 // 10MB

func NewUploadController(db *gorm.DB) *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		DB:       db,
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

// GetPresignedURL godoc
// @Summary Get a presigned upload URL
// @Description Returns a short-lived URL for uploading a post or profile image
// @Tags uploads
// @Accept json
// @Produce json
// @Param upload body PresignedURLRequest true "Upload request"
// @Success 200 {object} PresignedURLResponse
// @Router /upload/presigned-url [post]
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	user := utils.GetUser(c)

	var uploader models.User
	if err := uc.DB.First(&uploader, user.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user", "success": false})
		return
	}
	if uploader.IsBlocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended", "success": false})
		return
	}

	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if !isValidImageType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type", "success": false})
		return
	}
	if req.FileSize <= 0 || req.FileSize > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit", "success": false})
		return
	}

	key := uc.generateFileKey(user.UserID, req.FileName, req.Kind)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		},
	})
}

// DeleteFile godoc
// @Summary Delete an uploaded file
// @Description Only the uploader may delete their file
// @Tags uploads
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} map[string]interface{}
// @Router /upload/file [delete]
func (uc *UploadController) DeleteFile(c *gin.Context) {
	user := utils.GetUser(c)

	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Object key is required", "success": false})
		return
	}
	if !verifyFileOwnership(key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this file", "success": false})
		return
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	}
	if _, err := uc.R2Client.DeleteObject(c.Request.Context(), input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}

func isValidImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}

func (uc *UploadController) generateFileKey(userID uint, fileName, kind string) string {
	ext := filepath.Ext(fileName)
	timestamp := time.Now().Unix()
	id := uuid.New().String()
	return fmt.Sprintf("uploads/%s/%d/%d_%s%s", kind, userID, timestamp, id, ext)
}

func (uc *UploadController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// verifyFileOwnership checks the user id embedded in the key format
// uploads/{kind}/{userID}/{timestamp}_{uuid}.{ext}.
func verifyFileOwnership(key string, userID uint) bool {
	parts := strings.Split(key, "/")
	if len(parts) < 3 {
		return false
	}
	return fmt.Sprintf("%d", userID) == parts[2]
}
