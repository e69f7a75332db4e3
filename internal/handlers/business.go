package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"acting-office/internal/middleware"
	"acting-office/internal/models"
	"acting-office/internal/services"

	"github.com/gin-gonic/gin"
)

type BusinessHandler struct {
	businesses *services.BusinessService
}

func NewBusinessHandler(businesses *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{businesses: businesses}
}

type businessInput struct {
	BusinessName    string `json:"businessName" binding:"required"`
	Type            string `json:"type"`
	ContactPerson   string `json:"contactPerson"`
	Team            string `json:"team"`
	Manager         string `json:"manager"`
	FirstResponse   string `json:"firstResponse"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	LinkedContactID string `json:"linkedContactId"`
}

func (h *BusinessHandler) List(c *gin.Context) {
	email, role := middleware.Identity(c)

	status := c.DefaultQuery("status", "active")
	businessType := c.Query("type")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	items, total, err := h.businesses.GetFiltered(status, role, email, businessType, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCount":  total,
		"currentPage": page,
		"pageSize":    pageSize,
		"data":        items,
	})
}

// ListAllActive — все активные без пагинации (для выпадающих списков)
func (h *BusinessHandler) ListAllActive(c *gin.Context) {
	email, role := middleware.Identity(c)

	items, _, err := h.businesses.GetFiltered("active", role, email, "", 1, int(^uint(0)>>1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *BusinessHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	b, err := h.businesses.ByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BusinessHandler) Create(c *gin.Context) {
	var input businessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid data", "error": err.Error()})
		return
	}

	email, _ := middleware.Identity(c)

	b := models.Business{
		BusinessName:    input.BusinessName,
		Type:            input.Type,
		ContactPerson:   input.ContactPerson,
		Team:            input.Team,
		Manager:         input.Manager,
		FirstResponse:   input.FirstResponse,
		Email:           input.Email,
		PhoneNumber:     input.PhoneNumber,
		LinkedContactID: input.LinkedContactID,
		CreatedBy:       email,
		Status:          models.StatusActive,
	}

	if err := h.businesses.Create(&b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Data added successfully",
		"id":       b.ID,
		"clientId": b.ClientID,
	})
}

func (h *BusinessHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var input businessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}

	email, _ := middleware.Identity(c)

	existing, err := h.businesses.ByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	// статус и автор с границы не принимаются
	updated := models.Business{
		BusinessName:    input.BusinessName,
		Type:            input.Type,
		ContactPerson:   input.ContactPerson,
		Team:            input.Team,
		Manager:         input.Manager,
		FirstResponse:   input.FirstResponse,
		Email:           input.Email,
		PhoneNumber:     input.PhoneNumber,
		LinkedContactID: input.LinkedContactID,
		Status:          existing.Status,
		CreatedBy:       existing.CreatedBy,
	}

	if _, err := h.businesses.Update(id, updated, email); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Business updated successfully"})
}

func (h *BusinessHandler) SoftDelete(c *gin.Context) {
	id := c.Param("id")
	email, _ := middleware.Identity(c)

	if err := h.businesses.SoftDelete(id, email); err != nil {
		writeTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data marked as inactive"})
}

func (h *BusinessHandler) Restore(c *gin.Context) {
	id := c.Param("id")
	email, _ := middleware.Identity(c)

	if err := h.businesses.Restore(id, email); err != nil {
		writeTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Business restored successfully"})
}

func (h *BusinessHandler) ToggleStatus(c *gin.Context) {
	id := c.Param("id")

	status, err := h.businesses.ToggleStatus(id)
	if err != nil {
		writeTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status toggled successfully", "status": status})
}

func (h *BusinessHandler) ByClientID(c *gin.Context) {
	clientID := c.Param("clientId")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing clientId"})
		return
	}

	items, err := h.businesses.ByClientID(clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// WithClient — проекция всех бизнесов клиента, включая неактивные
func (h *BusinessHandler) WithClient(c *gin.Context) {
	clientID := c.Query("clientId")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing clientId"})
		return
	}

	items, err := h.businesses.ByClientIDAll(clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	result := make([]gin.H, 0, len(items))
	for _, b := range items {
		result = append(result, gin.H{
			"id":           b.ID,
			"sno":          b.Sno,
			"clientId":     b.ClientID,
			"businessName": b.BusinessName,
			"type":         b.Type,
			"status":       b.Status,
			"designation":  b.Designation,
		})
	}
	c.JSON(http.StatusOK, result)
}

func (h *BusinessHandler) ByContactID(c *gin.Context) {
	contactID := c.Query("contactId")
	if contactID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing contactId"})
		return
	}

	items, err := h.businesses.ByContactID(contactID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func writeTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "business not found"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"message": "status transition not allowed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
	}
}
