package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodbook/backend/internal/database"
	"github.com/foodbook/backend/internal/models"
	"github.com/foodbook/backend/internal/service"
	"github.com/foodbook/backend/internal/types"
)

// TestEnv holds the router and everything needed to drive it in tests.
type TestEnv struct {
	Router      *gin.Engine
	DB          *gorm.DB
	AuthService *service.AuthService
}

func setupTestEnv(t *testing.T) *TestEnv {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// In-memory sqlite is per-connection; a pool of one keeps the schema
	// visible to every query.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))

	router := gin.New()
	router.Use(gin.Recovery())
	SetupAPI(router, db, nil, "test-secret")

	return &TestEnv{
		Router:      router,
		DB:          db,
		AuthService: service.NewAuthService(db, "test-secret"),
	}
}

// createTestUserAndToken creates a user with a profile and returns their
// id and a valid JWT token.
func createTestUserAndToken(t *testing.T, env *TestEnv, username string) (uuid.UUID, string) {
	userID := uuid.New()
	user := models.User{
		ID:           userID,
		Name:         "Test User",
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, env.DB.Create(&user).Error)

	profile := models.UserProfile{
		UserID:   userID,
		Username: username,
	}
	require.NoError(t, env.DB.Create(&profile).Error)

	token, err := env.AuthService.GenerateToken(&types.TokenClaims{UserID: userID, Username: username})
	require.NoError(t, err)
	return userID, token
}

func createTestRecipe(t *testing.T, env *TestEnv, creatorID uuid.UUID, title string) uuid.UUID {
	recipe := models.Recipe{
		UserID:       creatorID,
		Title:        title,
		Ingredients:  "flour, water",
		Instructions: "mix and bake",
	}
	require.NoError(t, env.DB.Create(&recipe).Error)
	return recipe.ID
}

// performRequest makes an HTTP request against the test router. A non-empty
// token is sent as a bearer credential.
func performRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
