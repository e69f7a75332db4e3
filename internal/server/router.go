package server

import (
	"net/http"

	"acting-office/internal/config"
	"acting-office/internal/handlers"
	"acting-office/internal/middleware"
	"acting-office/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.Default()

	historySvc := services.NewHistoryService(db)
	businessSvc := services.NewBusinessService(db, historySvc)
	contactSvc := services.NewContactService(db, historySvc)

	businessH := handlers.NewBusinessHandler(businessSvc)
	contactH := handlers.NewContactHandler(contactSvc, businessSvc)
	historyH := handlers.NewHistoryHandler(historySvc)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(cfg.JWTSecret))

	// БИЗНЕСЫ
	api.GET("/businessdata", businessH.List)
	api.GET("/businessdata/all", businessH.ListAllActive)
	api.GET("/businessdata/with-contact", businessH.ByContactID)
	api.GET("/businessdata/with-client", businessH.WithClient)
	api.GET("/businessdata/client/:clientId", businessH.ByClientID)
	api.GET("/businessdata/:id", businessH.GetByID)
	api.POST("/businessdata", businessH.Create)
	api.POST("/businessdata/update/:id", businessH.Update)
	api.POST("/businessdata/delete/:id", businessH.SoftDelete)
	api.POST("/businessdata/restore/:id", businessH.Restore)
	api.POST("/businessdata/status/:id", businessH.ToggleStatus)

	// КОНТАКТЫ
	api.GET("/contacts", contactH.List)
	api.GET("/contacts/:id", contactH.GetByID)
	api.GET("/contacts/:id/details", contactH.Details)
	api.POST("/contacts", contactH.Create)
	api.POST("/contacts/update/:id", contactH.Update)
	api.POST("/contacts/:id/link-businesses", contactH.LinkBusinesses)

	// ЖУРНАЛ
	api.GET("/history", historyH.List)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
