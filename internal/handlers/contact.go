package handlers

import (
	"errors"
	"net/http"

	"acting-office/internal/middleware"
	"acting-office/internal/models"
	"acting-office/internal/services"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contacts   *services.ContactService
	businesses *services.BusinessService
}

func NewContactHandler(contacts *services.ContactService, businesses *services.BusinessService) *ContactHandler {
	return &ContactHandler{contacts: contacts, businesses: businesses}
}

type contactInput struct {
	Name        string            `json:"name" binding:"required"`
	Type        string            `json:"type"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	Designation string            `json:"designation"`
	Story       string            `json:"story"`
	Businesses  []businessRefItem `json:"businesses"`
}

type businessRefItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toRefs(items []businessRefItem) []models.BusinessRef {
	refs := make([]models.BusinessRef, 0, len(items))
	for _, it := range items {
		refs = append(refs, models.BusinessRef{BusinessID: it.ID, Name: it.Name})
	}
	return refs
}

func (h *ContactHandler) Create(c *gin.Context) {
	var input contactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid data", "error": err.Error()})
		return
	}

	email, _ := middleware.Identity(c)

	contact := models.Contact{
		Name:        input.Name,
		Type:        input.Type,
		Phone:       input.Phone,
		Email:       input.Email,
		Designation: input.Designation,
		Story:       input.Story,
		Businesses:  toRefs(input.Businesses),
	}

	if err := h.contacts.CreateWithHistory(&contact, email); err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact created successfully", "contact": contact})
}

func (h *ContactHandler) List(c *gin.Context) {
	// ?businessId= сужает список до контактов этого бизнеса
	if businessID := c.Query("businessId"); businessID != "" {
		contacts, err := h.contacts.ByBusiness(businessID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
			return
		}
		c.JSON(http.StatusOK, contacts)
		return
	}

	contacts, err := h.contacts.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) GetByID(c *gin.Context) {
	contact, err := h.contacts.ByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "contact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) LinkBusinesses(c *gin.Context) {
	contactID := c.Param("id")
	if contactID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid contact id"})
		return
	}

	var items []businessRefItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid data", "error": err.Error()})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no businesses provided to link"})
		return
	}

	added, err := h.contacts.LinkBusinesses(contactID, toRefs(items))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "contact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	if added == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "All provided businesses are already linked", "added": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Businesses linked successfully", "added": added})
}

// Details — контакт вместе с полными записями привязанных бизнесов
func (h *ContactHandler) Details(c *gin.Context) {
	contact, err := h.contacts.ByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "contact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	seen := make(map[string]struct{}, len(contact.Businesses))
	var ids []string
	for _, ref := range contact.Businesses {
		if ref.BusinessID == "" {
			continue
		}
		if _, ok := seen[ref.BusinessID]; ok {
			continue
		}
		seen[ref.BusinessID] = struct{}{}
		ids = append(ids, ref.BusinessID)
	}

	businesses, err := h.businesses.ByIDs(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact, "businesses": businesses})
}

func (h *ContactHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var input contactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid data", "error": err.Error()})
		return
	}

	err := h.contacts.UpdateDetails(models.Contact{
		ID:          id,
		Email:       input.Email,
		Phone:       input.Phone,
		Designation: input.Designation,
		Type:        input.Type,
		Story:       input.Story,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "contact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact updated successfully"})
}
