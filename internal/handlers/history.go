package handlers

import (
	"net/http"

	"acting-office/internal/services"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	history *services.HistoryService
}

func NewHistoryHandler(history *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List отдаёт журнал бизнеса, свежие записи первыми
func (h *HistoryHandler) List(c *gin.Context) {
	businessID := c.Query("businessId")
	if businessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "business id is required"})
		return
	}

	entries, err := h.history.ByBusiness(businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
