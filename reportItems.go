package main

import (
	"bitbucket.org/lcconsulting/consulting_backend/models"
	"github.com/gin-gonic/gin"
)

func getReportItemsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, ok := pathID(c, "id")
		if !ok {
			return
		}

		items, err := models.ListReportItems(c.Request.Context(), reportID)
		if err != nil {
			respondError(c, "reportItems.go", "getReportItemsHandler", err)
			return
		}
		jsonSuccess(c, items)
	}
}

func getReportItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, ok := pathID(c, "id")
		if !ok {
			return
		}
		itemNbr, ok := pathID(c, "item_nbr")
		if !ok {
			return
		}

		item, err := models.GetReportItem(c.Request.Context(), reportID, itemNbr)
		if err != nil {
			respondError(c, "reportItems.go", "getReportItemHandler", err)
			return
		}
		jsonSuccess(c, item)
	}
}

func addReportItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, ok := pathID(c, "id")
		if !ok {
			return
		}

		var input models.NewStandaloneReportItem
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		item, err := models.CreateReportItem(c.Request.Context(), reportID, &input)
		if err != nil {
			respondError(c, "reportItems.go", "addReportItemHandler", err)
			return
		}
		jsonSuccessMessage(c, "The report item has been successfully saved", item)
	}
}

func updateReportItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, ok := pathID(c, "id")
		if !ok {
			return
		}
		itemNbr, ok := pathID(c, "item_nbr")
		if !ok {
			return
		}

		var input models.NewStandaloneReportItem
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		item, err := models.UpdateReportItem(c.Request.Context(), reportID, itemNbr, &input)
		if err != nil {
			respondError(c, "reportItems.go", "updateReportItemHandler", err)
			return
		}
		jsonSuccessMessage(c, "The report item has been successfully updated", item)
	}
}

func deleteReportItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, ok := pathID(c, "id")
		if !ok {
			return
		}
		itemNbr, ok := pathID(c, "item_nbr")
		if !ok {
			return
		}

		if err := models.DeleteReportItem(c.Request.Context(), reportID, itemNbr); err != nil {
			respondError(c, "reportItems.go", "deleteReportItemHandler", err)
			return
		}
		jsonSuccessMessage(c, "The report item has been successfully deleted", nil)
	}
}
