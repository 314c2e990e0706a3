package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// unreachableRedis returns a client whose commands fail fast, so the
// middleware takes the miss path without a server
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func cacheTestRouter(client *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CacheWithTTL(client, time.Minute))
	r.GET("/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/content", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	return r
}

func TestCache_MissHeaderReachesClient(t *testing.T) {
	r := cacheTestRouter(unreachableRedis())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/content", nil))

	// Result() snapshots headers as they were when the body was written;
	// the MISS marker must already be set by then
	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestCache_SkipsNonGET(t *testing.T) {
	r := cacheTestRouter(unreachableRedis())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/content", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Result().Header.Get("X-Cache"))
}

func TestCache_NilClientPassesThrough(t *testing.T) {
	r := cacheTestRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/content", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Header.Get("X-Cache"))
}
