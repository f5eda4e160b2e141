package main

import (
	"bitbucket.org/lcconsulting/consulting_backend/models"
	"github.com/gin-gonic/gin"
)

func getContactsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		contacts, page, pages, err := models.ListContacts(
			c.Request.Context(),
			c.Query("contact_type"),
			c.Query("search"),
			pageArgs(c),
		)
		if err != nil {
			respondError(c, "contacts.go", "getContactsHandler", err)
			return
		}
		jsonPage(c, contacts, page, pages)
	}
}

func addContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewContact
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		contact, err := models.CreateContact(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "contacts.go", "addContactHandler", err)
			return
		}
		jsonSuccessMessage(c, "The contact has been successfully saved", contact)
	}
}

func getContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		contact, err := models.GetContact(c.Request.Context(), id)
		if err != nil {
			respondError(c, "contacts.go", "getContactHandler", err)
			return
		}
		jsonSuccess(c, contact)
	}
}

func updateContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		var input models.NewContact
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		contact, err := models.UpdateContact(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, "contacts.go", "updateContactHandler", err)
			return
		}
		jsonSuccessMessage(c, "The contact has been successfully saved", contact)
	}
}

func deleteContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		if err := models.DeleteContact(c.Request.Context(), id); err != nil {
			respondError(c, "contacts.go", "deleteContactHandler", err)
			return
		}
		jsonSuccessMessage(c, "The contact has been successfully deleted", nil)
	}
}
