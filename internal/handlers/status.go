package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/statushub-dev/statushub/internal/incident"
	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/overview"
	"gorm.io/gorm"
)

type StatusHandler struct {
	db        *gorm.DB
	view      *overview.View
	incidents *incident.Engine
}

func NewStatusHandler(conn *gorm.DB, view *overview.View, incidents *incident.Engine) *StatusHandler {
	return &StatusHandler{db: conn, view: view, incidents: incidents}
}

// PublicStatus is the public status page payload.
func (h *StatusHandler) PublicStatus(ctx *gin.Context) {
	snapshot, err := h.view.PublicSnapshot()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, snapshot)
}

// Dashboard is the authenticated operator view with the 24h incident feed.
func (h *StatusHandler) Dashboard(ctx *gin.Context) {
	snapshot, err := h.view.Dashboard(h.incidents)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, snapshot)
}

// ServicesStatus is the lightweight public per-service status list.
func (h *StatusHandler) ServicesStatus(ctx *gin.Context) {
	var services []models.Service

	if err := h.db.Find(&services).Error; err != nil {
		respondError(ctx, err)
		return
	}

	data := make([]gin.H, 0, len(services))
	for _, service := range services {
		data = append(data, gin.H{
			"id":         service.ID,
			"name":       service.Name,
			"status":     service.Status,
			"updated_at": service.UpdatedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

func (h *StatusHandler) ServiceStatus(ctx *gin.Context) {
	var service models.Service

	if err := h.db.First(&service, "id = ?", ctx.Param("id")).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"id":         service.ID,
			"name":       service.Name,
			"status":     service.Status,
			"updated_at": service.UpdatedAt,
		},
	})
}
