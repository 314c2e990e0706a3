package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func serveWithLevel(t *testing.T, mw gin.HandlerFunc, level int, setLevel bool) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	if setLevel {
		r.Use(func(c *gin.Context) {
			c.Set("level", level)
			c.Next()
		})
	}
	r.Use(mw)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	c.Request, _ = http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, c.Request)
	return w
}

func TestRequireAdmin_Allowed(t *testing.T) {
	w := serveWithLevel(t, RequireAdmin(), LevelAdmin, true)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequireAdmin_EditorDenied(t *testing.T) {
	w := serveWithLevel(t, RequireAdmin(), LevelEditor, true)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequireAdmin_NoLevel(t *testing.T) {
	w := serveWithLevel(t, RequireAdmin(), 0, false)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequireEditor_Allowed(t *testing.T) {
	w := serveWithLevel(t, RequireEditor(), LevelEditor, true)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequireEditor_AdminAllowed(t *testing.T) {
	w := serveWithLevel(t, RequireEditor(), LevelAdmin, true)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequireEditor_Denied(t *testing.T) {
	w := serveWithLevel(t, RequireEditor(), 1, true)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}
