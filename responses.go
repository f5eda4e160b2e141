package main

import (
	"errors"
	"net/http"
	"sort"

	"bitbucket.org/lcconsulting/consulting_backend/config"
	"bitbucket.org/lcconsulting/consulting_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Canonical failure messages, matching the shared response envelope: every
// failure is {success:false, message, error_code} so clients can branch on
// success alone.
const (
	msgBadRequest  = "The submitted request is invalid and cannot be processed"
	msgNotFound    = "The resource you requested could not be found"
	msgNotAllowed  = "The action you have tried to perform on the requested resource is not allowed"
	msgServerError = "An error occurred on the server while trying to process your request"
)

func jsonSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func jsonSuccessMessage(c *gin.Context, message string, data any) {
	if data == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": message,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func jsonPage(c *gin.Context, data any, page, pages int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"page":    page,
		"pages":   pages,
		"data":    data,
	})
}

func jsonError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":    false,
		"message":    message,
		"error_code": status,
	})
}

// respondError maps engine errors onto the error taxonomy. Store constraint
// violations count as bad input, not server faults; 500 is reserved for the
// truly unanticipated.
func respondError(c *gin.Context, moduleName, funcName string, err error) {
	if errors.Is(err, utils.ErrorInvalidInput) {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, utils.ErrorRecordNotFound) {
		jsonError(c, http.StatusNotFound, msgNotFound)
		return
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062, 1451, 1452, 3819: // duplicate key, FK violations, check constraint
			jsonError(c, http.StatusBadRequest, msgBadRequest)
			return
		}
	}

	cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
	config.LogError(config.GetLogger(), moduleName, funcName, "unexpected error", map[string]string{"correlation_id": cid}, err)
	jsonError(c, http.StatusInternalServerError, msgServerError)
}

// respondBindError handles request-body binding failures: a missing body and
// failed field validation are both request-validation failures.
func respondBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := utils.ProcessValidationErrors(validationErrors)
		names := make([]string, 0, len(fields))
		for field := range fields {
			names = append(names, field)
		}
		sort.Strings(names)
		message := msgBadRequest
		if len(names) > 0 {
			// the first field in name order, so the message is stable when
			// several fields fail at once
			message = "Field " + names[0] + " failed validation: " + fields[names[0]]
		}
		jsonError(c, http.StatusBadRequest, message)
		return
	}
	jsonError(c, http.StatusBadRequest, msgBadRequest)
}
