package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/status"
	"github.com/statushub-dev/statushub/internal/types"
	"github.com/statushub-dev/statushub/internal/utils"
)

type ServiceHandler struct {
	engine *status.Engine
}

func NewServiceHandler(engine *status.Engine) *ServiceHandler {
	return &ServiceHandler{engine: engine}
}

type CreateServiceRequest struct {
	Name           string `json:"name" binding:"required"`
	OrganizationID uint   `json:"organization_id" binding:"required"`
	Status         string `json:"status"`
}

type UpdateServiceRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

type ServiceResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Status           string    `json:"status"`
	OrganizationID   uint      `json:"organization_id"`
	UptimePercentage float64   `json:"uptime_percentage"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type HistoryEntryResponse struct {
	ID        uint      `json:"id"`
	ServiceID uint      `json:"service_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	// UptimeValue is the graph weight derived from the status.
	UptimeValue int `json:"uptime_value"`
}

func serviceResponse(service *models.Service) ServiceResponse {
	return ServiceResponse{
		ID:               service.ID,
		Name:             service.Name,
		Status:           service.Status,
		OrganizationID:   service.OrganizationID,
		UptimePercentage: service.UptimePercentage,
		CreatedAt:        service.CreatedAt,
		UpdatedAt:        service.UpdatedAt,
	}
}

func historyResponse(entries []models.StatusHistory) []HistoryEntryResponse {
	response := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, HistoryEntryResponse{
			ID:          entry.ID,
			ServiceID:   entry.ServiceID,
			Status:      entry.Status,
			Timestamp:   entry.Timestamp,
			UptimeValue: uptimeValue(entry.Status),
		})
	}
	return response
}

func uptimeValue(status string) int {
	switch status {
	case types.StatusOperational:
		return 100
	case types.StatusDegraded:
		return 50
	default:
		return 0
	}
}

func (h *ServiceHandler) List(ctx *gin.Context) {
	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	services, err := h.engine.ListServices(actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]ServiceResponse, 0, len(services))
	for i := range services {
		response = append(response, serviceResponse(&services[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *ServiceHandler) Create(ctx *gin.Context) {
	var req CreateServiceRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	service, err := h.engine.CreateService(req.Name, req.OrganizationID, req.Status, actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, serviceResponse(service))
}

func (h *ServiceHandler) Get(ctx *gin.Context) {
	serviceID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	service, err := h.engine.GetService(serviceID, actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, serviceResponse(service))
}

func (h *ServiceHandler) Update(ctx *gin.Context) {
	serviceID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateServiceRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	service, err := h.engine.UpdateService(serviceID, status.ServicePatch{
		Name:   req.Name,
		Status: req.Status,
	}, actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, serviceResponse(service))
}

func (h *ServiceHandler) Delete(ctx *gin.Context) {
	serviceID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.engine.DeleteService(serviceID, actor); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ServiceHandler) History(ctx *gin.Context) {
	serviceID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	history, err := h.engine.History(serviceID, actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, historyResponse(history))
}

// Uptime is the public 30-day window feed, ascending.
func (h *ServiceHandler) Uptime(ctx *gin.Context) {
	serviceID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history, err := h.engine.UptimeWindow(serviceID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, historyResponse(history))
}
