package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bitbucket.org/lcconsulting/consulting_backend/models"
	"bitbucket.org/lcconsulting/consulting_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func recordError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, "responses_test", "recordError", err)
	return w
}

func TestRespondErrorInvalidInput(t *testing.T) {
	err := fmt.Errorf("%w: report_status must be one of the known statuses", utils.ErrorInvalidInput)
	w := recordError(err)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "report_status") {
		t.Errorf("body should carry the validation detail, got %s", w.Body.String())
	}
}

func TestRespondErrorNotFound(t *testing.T) {
	for _, err := range []error{gorm.ErrRecordNotFound, utils.ErrorRecordNotFound} {
		w := recordError(err)
		if w.Code != http.StatusNotFound {
			t.Errorf("%v: status = %d, want 404", err, w.Code)
		}
		if !strings.Contains(w.Body.String(), msgNotFound) {
			t.Errorf("%v: body = %s", err, w.Body.String())
		}
	}
}

func TestRespondErrorConstraintViolations(t *testing.T) {
	for _, number := range []uint16{1062, 1451, 1452, 3819} {
		w := recordError(&mysql.MySQLError{Number: number, Message: "constraint"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("mysql %d: status = %d, want 400", number, w.Code)
		}
	}
}

func TestRespondErrorUnexpected(t *testing.T) {
	w := recordError(fmt.Errorf("driver: bad connection"))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), msgServerError) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRespondBindErrorStableMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Several required fields fail at once; the reported field must not
	// depend on map iteration order.
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		c.Request.Header.Set("Content-Type", "application/json")

		var input models.NewClient
		err := c.ShouldBindJSON(&input)
		if err == nil {
			t.Fatal("expected binding to fail for an empty body")
		}
		respondBindError(c, err)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Field Abbreviation failed validation: required") {
			t.Errorf("body = %s, want the first field in name order", w.Body.String())
		}
	}
}
