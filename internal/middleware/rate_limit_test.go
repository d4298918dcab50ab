package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterFailsOpenWhenRedisUnreachable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// A client pointed at a closed port makes every pipeline call fail.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	limiter := NewInteractionRateLimiter(client)

	router := gin.New()
	router.POST("/interact", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Next()
	}, limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"detail": "Interaction recorded"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/interact", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimiterRequiresAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	limiter := NewInteractionRateLimiter(client)

	router := gin.New()
	router.POST("/interact", limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/interact", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
