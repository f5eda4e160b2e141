package main

import (
	"net/http"

	"bitbucket.org/lcconsulting/consulting_backend/models"
	"bitbucket.org/lcconsulting/consulting_backend/utils"
	"github.com/gin-gonic/gin"
)

func getReportsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := models.ReportFilters{
			ClientId:     utils.ParsePositiveInt(c.Query("client_id"), 0),
			ConsultantId: utils.ParsePositiveInt(c.Query("consultant_id"), 0),
			FromDate:     c.Query("from_date"),
			ToDate:       c.Query("to_date"),
		}

		reports, page, pages, err := models.ListReports(c.Request.Context(), filters, pageArgs(c))
		if err != nil {
			respondError(c, "reports.go", "getReportsHandler", err)
			return
		}
		jsonPage(c, reports, page, pages)
	}
}

func getReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		switch c.DefaultQuery("detailed", "0") {
		case "0":
			report, err := models.GetReport(c.Request.Context(), id)
			if err != nil {
				respondError(c, "reports.go", "getReportHandler", err)
				return
			}
			jsonSuccess(c, report.Format())
		case "1":
			report, err := models.GetDetailedReport(c.Request.Context(), id)
			if err != nil {
				respondError(c, "reports.go", "getReportHandler", err)
				return
			}
			jsonSuccess(c, report)
		default:
			jsonError(c, http.StatusBadRequest, msgBadRequest)
		}
	}
}

func addReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewReport
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		report, err := models.CreateReport(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "reports.go", "addReportHandler", err)
			return
		}
		jsonSuccessMessage(c, "The report has been successfully saved", report)
	}
}

func updateReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		var input models.NewReport
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		report, err := models.UpdateReport(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, "reports.go", "updateReportHandler", err)
			return
		}
		jsonSuccessMessage(c, "The report has been successfully saved", report)
	}
}

func deleteReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		if err := models.DeleteReport(c.Request.Context(), id); err != nil {
			respondError(c, "reports.go", "deleteReportHandler", err)
			return
		}
		jsonSuccessMessage(c, "The report has been successfully deleted", nil)
	}
}
