package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quillhub/api-go/config"
	"github.com/quillhub/api-go/models"
	"github.com/quillhub/api-go/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.MigrateModels(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, blocked bool) *models.User {
	t.Helper()

	user := models.User{
		FirstName: name,
		LastName:  "Tester",
		Email:     fmt.Sprintf("%s@example.com", name),
		Password:  "not-a-real-hash",
		IsBlocked: blocked,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return &user
}

// newAuthedContext builds a gin context carrying the given user's claims
// and a JSON request body, the way the auth middleware would leave it.
func newAuthedContext(t *testing.T, user *models.User, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(string(utils.UserContextKey), &utils.UserClaims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	})
	return c, w
}
