package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/statushub-dev/statushub/internal/incident"
	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/utils"
)

type IncidentHandler struct {
	engine *incident.Engine
}

func NewIncidentHandler(engine *incident.Engine) *IncidentHandler {
	return &IncidentHandler{engine: engine}
}

type CreateIncidentRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status" binding:"required"`
	Resolved    bool   `json:"resolved"`
}

type UpdateIncidentRequest struct {
	Status      *string `json:"status"`
	Description *string `json:"description"`
	Resolved    *bool   `json:"resolved"`
}

type IncidentResponse struct {
	ID          uint      `json:"id"`
	ServiceID   uint      `json:"service_id"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Resolved    bool      `json:"resolved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func incidentResponse(record *models.Incident) IncidentResponse {
	return IncidentResponse{
		ID:          record.ID,
		ServiceID:   record.ServiceID,
		Status:      record.Status,
		Description: record.Description,
		Resolved:    record.Resolved,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func incidentListResponse(records []models.Incident) []IncidentResponse {
	response := make([]IncidentResponse, 0, len(records))
	for i := range records {
		response = append(response, incidentResponse(&records[i]))
	}
	return response
}

func (h *IncidentHandler) List(ctx *gin.Context) {
	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	incidents, err := h.engine.ListAll(actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incidentListResponse(incidents))
}

func (h *IncidentHandler) Create(ctx *gin.Context) {
	var req CreateIncidentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	record, err := h.engine.Create(req.ServiceID, req.Description, req.Status, req.Resolved, actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, incidentResponse(record))
}

func (h *IncidentHandler) Get(ctx *gin.Context) {
	incidentID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	record, err := h.engine.Get(incidentID, actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incidentResponse(record))
}

func (h *IncidentHandler) Update(ctx *gin.Context) {
	incidentID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateIncidentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	record, err := h.engine.Update(incidentID, incident.Patch{
		Status:      req.Status,
		Description: req.Description,
		Resolved:    req.Resolved,
	}, actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incidentResponse(record))
}

func (h *IncidentHandler) Delete(ctx *gin.Context) {
	incidentID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.engine.Delete(incidentID, actor); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListForService serves any authenticated caller, not only admins.
func (h *IncidentHandler) ListForService(ctx *gin.Context) {
	serviceID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidents, err := h.engine.ListForService(serviceID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incidentListResponse(incidents))
}
