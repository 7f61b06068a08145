package refresher

import (
	"context"
	"log"
	"time"

	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/status"
	"gorm.io/gorm"
)

// Refresher periodically recomputes every service's uptime figure from its
// history window. It runs for the life of the process; a broken tick is
// logged and the loop sleeps into the next one.
type Refresher struct {
	db       *gorm.DB
	engine   *status.Engine
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(conn *gorm.DB, engine *status.Engine, interval time.Duration) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Refresher{
		db:       conn,
		engine:   engine,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (r *Refresher) Start() {
	log.Printf("Starting uptime refresher with interval %s", r.interval)
	go r.run()
}

func (r *Refresher) Stop() {
	r.cancel()
}

func (r *Refresher) run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			log.Println("Uptime refresher stopped")
			return
		case <-ticker.C:
			if err := r.RefreshAll(); err != nil {
				log.Printf("Error updating uptimes: %v", err)
			}
		}
	}
}

// RefreshAll recomputes uptime for every service and commits the whole tick
// in one transaction. A service that fails to compute is skipped so the rest
// of the tick still lands.
func (r *Refresher) RefreshAll() error {
	var services []models.Service

	if err := r.db.Find(&services).Error; err != nil {
		return err
	}

	now := time.Now().UTC()

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, service := range services {
			uptime, err := r.engine.CalculateUptime(service.ID, now)

			if err != nil {
				log.Printf("Failed to compute uptime for service %d (%s): %v", service.ID, service.Name, err)
				continue
			}

			err = tx.Model(&models.Service{}).Where("id = ?", service.ID).Updates(map[string]interface{}{
				"uptime_percentage": uptime,
				"last_uptime_check": now,
			}).Error

			if err != nil {
				return err
			}
		}

		return nil
	})
}
