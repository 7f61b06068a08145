package incident

import (
	"errors"
	"time"

	"github.com/statushub-dev/statushub/internal/apperr"
	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/types"
	"gorm.io/gorm"
)

// RecentWindow bounds the incident feed shown on the dashboard view.
const RecentWindow = 24 * time.Hour

type Engine struct {
	db *gorm.DB
}

func NewEngine(conn *gorm.DB) *Engine {
	return &Engine{db: conn}
}

// Patch carries a partial update; only non-nil fields are applied. Status and
// Resolved are deliberately never correlated with each other.
type Patch struct {
	Status      *string
	Description *string
	Resolved    *bool
}

func (e *Engine) Create(serviceID uint, description, status string, resolved bool, actor types.Actor) (*models.Incident, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	if description == "" {
		return nil, apperr.Validation("Incident description is required")
	}

	if status == "" {
		status = types.IncidentOngoing
	}

	if !types.ValidIncidentStatus(status) {
		return nil, apperr.Validation("Invalid incident status. Must be one of %v", types.IncidentStatuses)
	}

	var service models.Service

	if err := e.db.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("Invalid service_id")
		}
		return nil, err
	}

	record := models.Incident{
		ServiceID:   serviceID,
		Status:      status,
		Description: description,
		Resolved:    resolved,
	}

	if err := e.db.Create(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (e *Engine) Get(incidentID uint, actor types.Actor) (*models.Incident, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	return e.findIncident(incidentID)
}

func (e *Engine) Update(incidentID uint, patch Patch, actor types.Actor) (*models.Incident, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	if patch.Status != nil && !types.ValidIncidentStatus(*patch.Status) {
		return nil, apperr.Validation("Invalid incident status. Must be one of %v", types.IncidentStatuses)
	}

	record, err := e.findIncident(incidentID)

	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		record.Status = *patch.Status
	}

	if patch.Description != nil {
		record.Description = *patch.Description
	}

	if patch.Resolved != nil {
		record.Resolved = *patch.Resolved
	}

	record.UpdatedAt = time.Now().UTC()

	if err := e.db.Save(record).Error; err != nil {
		return nil, err
	}

	return record, nil
}

func (e *Engine) Delete(incidentID uint, actor types.Actor) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("Admin access required")
	}

	record, err := e.findIncident(incidentID)

	if err != nil {
		return err
	}

	return e.db.Delete(record).Error
}

func (e *Engine) ListAll(actor types.Actor) ([]models.Incident, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	var incidents []models.Incident

	if err := e.db.Find(&incidents).Error; err != nil {
		return nil, err
	}

	return incidents, nil
}

// ListForService is open to any authenticated caller.
func (e *Engine) ListForService(serviceID uint) ([]models.Incident, error) {
	var incidents []models.Incident

	if err := e.db.Where("service_id = ?", serviceID).Find(&incidents).Error; err != nil {
		return nil, err
	}

	return incidents, nil
}

// ListRecent returns incidents created inside the window, newest first.
func (e *Engine) ListRecent(window time.Duration) ([]models.Incident, error) {
	since := time.Now().UTC().Add(-window)

	var incidents []models.Incident

	err := e.db.Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&incidents).Error

	if err != nil {
		return nil, err
	}

	return incidents, nil
}

func (e *Engine) findIncident(incidentID uint) (*models.Incident, error) {
	var record models.Incident

	if err := e.db.First(&record, incidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Incident")
		}
		return nil, err
	}

	return &record, nil
}
