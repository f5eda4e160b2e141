package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/lcconsulting/consulting_backend/middlewares"
	"bitbucket.org/lcconsulting/consulting_backend/utils"
	"github.com/gin-gonic/gin"
)

func newAuthRouter(permission string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{middlewares.AuthMiddleware()}
	if permission != "" {
		handlers = append(handlers, middlewares.RequirePermission(permission))
	}
	handlers = append(handlers, func(c *gin.Context) {
		subject, _ := utils.GetSubjectFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"success": true, "subject": subject})
	})
	r.GET("/probe", handlers...)
	return r
}

func doProbe(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w := doProbe(t, newAuthRouter(""), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r := newAuthRouter("")
	for _, header := range []string{"garbage", "Basic abc", "Bearer"} {
		if w := doProbe(t, r, header); w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	w := doProbe(t, newAuthRouter(""), "Bearer not.a.token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := utils.JwtGenerate("auth0|tester", []string{"read:reports"})
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}
	w := doProbe(t, newAuthRouter(""), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestRequirePermission(t *testing.T) {
	token, err := utils.JwtGenerate("auth0|tester", []string{"read:reports"})
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	if w := doProbe(t, newAuthRouter("read:reports"), "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("granted scope: status = %d, want 200", w.Code)
	}
	if w := doProbe(t, newAuthRouter("delete:reports"), "Bearer "+token); w.Code != http.StatusForbidden {
		t.Errorf("missing scope: status = %d, want 403", w.Code)
	}
}
