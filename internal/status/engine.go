package status

import (
	"errors"
	"log"
	"time"

	"github.com/statushub-dev/statushub/internal/apperr"
	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/types"
	"gorm.io/gorm"
)

// Notifier receives committed status changes. Implementations are best-effort;
// the engine never inspects their outcome.
type Notifier interface {
	StatusChanged(service models.Service, oldStatus, newStatus string)
}

// Engine owns service lifecycle: CRUD, guarded status transitions, the
// status-history log and the uptime computation derived from it.
type Engine struct {
	db       *gorm.DB
	notifier Notifier
}

func NewEngine(conn *gorm.DB, notifier Notifier) *Engine {
	return &Engine{db: conn, notifier: notifier}
}

type ServicePatch struct {
	Name   *string
	Status *string
}

func (e *Engine) CreateService(name string, organizationID uint, status string, actor types.Actor) (*models.Service, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	if name == "" {
		return nil, apperr.Validation("Service name is required")
	}

	if organizationID == 0 {
		return nil, apperr.Validation("Organization ID is required")
	}

	if status == "" {
		status = types.StatusOperational
	}

	if !types.ValidServiceStatus(status) {
		return nil, apperr.Validation("Invalid service status. Must be one of %v", types.ServiceStatuses)
	}

	var organization models.Organization

	if err := e.db.First(&organization, organizationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("Invalid organization_id")
		}
		return nil, err
	}

	service := models.Service{
		Name:             name,
		Status:           status,
		OrganizationID:   organizationID,
		UptimePercentage: 100.0,
		LastUptimeCheck:  time.Now().UTC(),
	}

	if err := e.db.Create(&service).Error; err != nil {
		return nil, err
	}

	return &service, nil
}

func (e *Engine) GetService(serviceID uint, actor types.Actor) (*models.Service, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	return e.findService(serviceID)
}

func (e *Engine) ListServices(actor types.Actor) ([]models.Service, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	var services []models.Service

	if err := e.db.Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

// UpdateService applies a partial update. A status change appends exactly one
// history row and notifies subscribers after the commit; setting the current
// status again is an idempotent no-op. A rename travels in the same
// transaction but on its own never touches history or notifications.
func (e *Engine) UpdateService(serviceID uint, patch ServicePatch, actor types.Actor) (*models.Service, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	if patch.Status != nil && !types.ValidServiceStatus(*patch.Status) {
		return nil, apperr.Validation("Invalid service status. Must be one of %v", types.ServiceStatuses)
	}

	service, err := e.findService(serviceID)

	if err != nil {
		return nil, err
	}

	oldStatus := service.Status
	statusChanged := patch.Status != nil && *patch.Status != service.Status

	err = e.db.Transaction(func(tx *gorm.DB) error {
		if patch.Name != nil {
			if *patch.Name == "" {
				return apperr.Validation("Service name is required")
			}
			log.Printf("Service name changed from %q to %q (ID: %d)", service.Name, *patch.Name, service.ID)
			service.Name = *patch.Name
		}

		if statusChanged {
			history := models.StatusHistory{
				ServiceID: service.ID,
				Status:    *patch.Status,
				Timestamp: time.Now().UTC(),
			}

			if err := tx.Create(&history).Error; err != nil {
				return err
			}

			service.Status = *patch.Status
			log.Printf("Service status changed from %q to %q for %s (ID: %d)", oldStatus, service.Status, service.Name, service.ID)
		}

		return tx.Save(service).Error
	})

	if err != nil {
		return nil, err
	}

	if statusChanged && e.notifier != nil {
		e.notifier.StatusChanged(*service, oldStatus, service.Status)
	}

	return service, nil
}

// DeleteService hard-deletes the service together with its history and
// incidents in one transaction.
func (e *Engine) DeleteService(serviceID uint, actor types.Actor) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("Admin access required")
	}

	service, err := e.findService(serviceID)

	if err != nil {
		return err
	}

	log.Printf("Deleting service: %s (ID: %d)", service.Name, service.ID)

	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", service.ID).Delete(&models.StatusHistory{}).Error; err != nil {
			return err
		}

		if err := tx.Where("service_id = ?", service.ID).Delete(&models.Incident{}).Error; err != nil {
			return err
		}

		return tx.Delete(service).Error
	})
}

// History returns the 30 newest history entries for a service.
func (e *Engine) History(serviceID uint, actor types.Actor) ([]models.StatusHistory, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	var history []models.StatusHistory

	err := e.db.Where("service_id = ?", serviceID).
		Order("timestamp DESC").
		Limit(30).
		Find(&history).Error

	if err != nil {
		return nil, err
	}

	return history, nil
}

// UptimeWindow returns the 30-day history window in ascending order, as
// rendered by the public uptime graph.
func (e *Engine) UptimeWindow(serviceID uint) ([]models.StatusHistory, error) {
	windowStart := time.Now().UTC().Add(-uptimeWindow)

	var history []models.StatusHistory

	err := e.db.Where("service_id = ? AND timestamp >= ?", serviceID, windowStart).
		Order("timestamp ASC").
		Find(&history).Error

	if err != nil {
		return nil, err
	}

	return history, nil
}

func (e *Engine) CreateOrganization(name string, actor types.Actor) (*models.Organization, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	if name == "" {
		return nil, apperr.Validation("Organization name is required")
	}

	organization := models.Organization{Name: name}

	if err := e.db.Create(&organization).Error; err != nil {
		return nil, err
	}

	return &organization, nil
}

func (e *Engine) ListOrganizations(actor types.Actor) ([]models.Organization, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Admin access required")
	}

	var organizations []models.Organization

	if err := e.db.Find(&organizations).Error; err != nil {
		return nil, err
	}

	return organizations, nil
}

// DeleteOrganization cascades to the organization's services and, through
// them, their history and incidents.
func (e *Engine) DeleteOrganization(organizationID uint, actor types.Actor) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("Admin access required")
	}

	var organization models.Organization

	if err := e.db.First(&organization, organizationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Organization")
		}
		return err
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		var services []models.Service

		if err := tx.Where("organization_id = ?", organization.ID).Find(&services).Error; err != nil {
			return err
		}

		for _, service := range services {
			if err := tx.Where("service_id = ?", service.ID).Delete(&models.StatusHistory{}).Error; err != nil {
				return err
			}

			if err := tx.Where("service_id = ?", service.ID).Delete(&models.Incident{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("organization_id = ?", organization.ID).Delete(&models.Service{}).Error; err != nil {
			return err
		}

		return tx.Delete(&organization).Error
	})
}

func (e *Engine) findService(serviceID uint) (*models.Service, error) {
	var service models.Service

	if err := e.db.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Service")
		}
		return nil, err
	}

	return &service, nil
}
