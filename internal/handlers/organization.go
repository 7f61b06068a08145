package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/statushub-dev/statushub/internal/status"
	"github.com/statushub-dev/statushub/internal/utils"
)

type OrganizationHandler struct {
	engine *status.Engine
}

func NewOrganizationHandler(engine *status.Engine) *OrganizationHandler {
	return &OrganizationHandler{engine: engine}
}

type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

type OrganizationResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *OrganizationHandler) Create(ctx *gin.Context) {
	var req CreateOrganizationRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	organization, err := h.engine.CreateOrganization(req.Name, actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, OrganizationResponse{
		ID:        organization.ID,
		Name:      organization.Name,
		CreatedAt: organization.CreatedAt,
		UpdatedAt: organization.UpdatedAt,
	})
}

func (h *OrganizationHandler) List(ctx *gin.Context) {
	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	organizations, err := h.engine.ListOrganizations(actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]OrganizationResponse, 0, len(organizations))
	for _, organization := range organizations {
		response = append(response, OrganizationResponse{
			ID:        organization.ID,
			Name:      organization.Name,
			CreatedAt: organization.CreatedAt,
			UpdatedAt: organization.UpdatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *OrganizationHandler) Delete(ctx *gin.Context) {
	organizationID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.engine.DeleteOrganization(organizationID, actor); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
