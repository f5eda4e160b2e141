package main

import (
	"net/http"
	"strconv"

	"bitbucket.org/lcconsulting/consulting_backend/models"
	"bitbucket.org/lcconsulting/consulting_backend/utils"
	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		jsonError(c, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}

func pageArgs(c *gin.Context) models.Pagination {
	return models.Pagination{
		Page:     utils.ParsePositiveInt(c.Query("page"), 1),
		PageSize: utils.ParsePositiveInt(c.Query("page_size"), models.DefaultPageSize),
	}
}

func getClientsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clients, page, pages, err := models.ListClients(c.Request.Context(), c.Query("search"), pageArgs(c))
		if err != nil {
			respondError(c, "clients.go", "getClientsHandler", err)
			return
		}
		jsonPage(c, clients, page, pages)
	}
}

func addClientHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewClient
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		client, err := models.CreateClient(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "clients.go", "addClientHandler", err)
			return
		}
		jsonSuccessMessage(c, "The client has been successfully saved", client)
	}
}

func getClientHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		client, err := models.GetClient(c.Request.Context(), id)
		if err != nil {
			respondError(c, "clients.go", "getClientHandler", err)
			return
		}
		jsonSuccess(c, client)
	}
}

func updateClientHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		var input models.NewClient
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		client, err := models.UpdateClient(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, "clients.go", "updateClientHandler", err)
			return
		}
		jsonSuccessMessage(c, "The client has been successfully saved", client)
	}
}

func deleteClientHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		if err := models.DeleteClient(c.Request.Context(), id); err != nil {
			respondError(c, "clients.go", "deleteClientHandler", err)
			return
		}
		jsonSuccessMessage(c, "The client has been successfully deleted", nil)
	}
}

func getClientContactsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := pathID(c, "id")
		if !ok {
			return
		}

		contacts, page, pages, err := models.ListClientContacts(c.Request.Context(), clientID, pageArgs(c))
		if err != nil {
			respondError(c, "clients.go", "getClientContactsHandler", err)
			return
		}
		jsonPage(c, contacts, page, pages)
	}
}

func addClientContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := pathID(c, "id")
		if !ok {
			return
		}

		var input models.NewClientContact
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		contact, err := models.CreateClientContact(c.Request.Context(), clientID, &input)
		if err != nil {
			respondError(c, "clients.go", "addClientContactHandler", err)
			return
		}
		jsonSuccessMessage(c, "The client contact has been successfully saved", contact)
	}
}

func getClientContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := pathID(c, "id")
		if !ok {
			return
		}
		contactID, ok := pathID(c, "contact_id")
		if !ok {
			return
		}

		contact, err := models.GetClientContact(c.Request.Context(), clientID, contactID)
		if err != nil {
			respondError(c, "clients.go", "getClientContactHandler", err)
			return
		}
		jsonSuccess(c, contact)
	}
}

func updateClientContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := pathID(c, "id")
		if !ok {
			return
		}
		contactID, ok := pathID(c, "contact_id")
		if !ok {
			return
		}

		var input models.NewClientContact
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		contact, err := models.UpdateClientContact(c.Request.Context(), clientID, contactID, &input)
		if err != nil {
			respondError(c, "clients.go", "updateClientContactHandler", err)
			return
		}
		jsonSuccessMessage(c, "The client contact has been successfully saved", contact)
	}
}

func deleteClientContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := pathID(c, "id")
		if !ok {
			return
		}
		contactID, ok := pathID(c, "contact_id")
		if !ok {
			return
		}

		if err := models.DeleteClientContact(c.Request.Context(), clientID, contactID); err != nil {
			respondError(c, "clients.go", "deleteClientContactHandler", err)
			return
		}
		jsonSuccessMessage(c, "The client contact has been successfully deleted", nil)
	}
}
