package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// The detailed flag is validated before any store access, so this needs no
// database behind the handler.
func TestGetReportRejectsUnknownDetailedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/reports/:id", getReportHandler())

	for _, value := range []string{"2", "-1", "yes", "01"} {
		req := httptest.NewRequest(http.MethodGet, "/api/reports/1?detailed="+value, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("detailed=%s: status = %d, want 400", value, w.Code)
		}
		if !strings.Contains(w.Body.String(), msgBadRequest) {
			t.Errorf("detailed=%s: body = %s", value, w.Body.String())
		}
	}
}
