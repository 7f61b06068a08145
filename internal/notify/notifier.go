package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/types"
	"gorm.io/gorm"
)

// Broadcaster pushes an event to every connected dashboard client.
type Broadcaster interface {
	Broadcast(event string, payload map[string]interface{})
}

// Mailer delivers one message to a recipient list.
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}

// Notifier fans a committed status change out to the realtime room and to
// verified email subscribers. Both effects are best-effort: the status-change
// transaction has already committed, so failures here are logged and dropped.
type Notifier struct {
	db     *gorm.DB
	hub    Broadcaster
	mailer Mailer
}

func NewNotifier(conn *gorm.DB, hub Broadcaster, mailer Mailer) *Notifier {
	return &Notifier{db: conn, hub: hub, mailer: mailer}
}

const StatusChangedEvent = "service_status_changed"

func (n *Notifier) StatusChanged(service models.Service, oldStatus, newStatus string) {
	if n.hub != nil {
		n.hub.Broadcast(StatusChangedEvent, map[string]interface{}{
			"service_id": service.ID,
			"name":       service.Name,
			"status":     newStatus,
			"old_status": oldStatus,
		})
	}

	// Mail delivery is blocking I/O; it runs off the request goroutine and
	// well outside the status-change transaction.
	go func() {
		if err := n.EmailSubscribers(service, newStatus); err != nil {
			log.Printf("Failed to send notification emails for service %s: %v", service.Name, err)
		}
	}()
}

// EmailSubscribers sends one status-update message addressed to every
// verified subscriber. An empty subscriber set is a silent success.
func (n *Notifier) EmailSubscribers(service models.Service, newStatus string) error {
	var subscribers []models.EmailSubscriber

	if err := n.db.Where("is_verified = ?", true).Find(&subscribers).Error; err != nil {
		return err
	}

	if len(subscribers) == 0 {
		log.Println("No verified subscribers found")
		return nil
	}

	log.Printf("Sending status update notifications for service %s to %d subscribers", service.Name, len(subscribers))

	recipients := make([]string, 0, len(subscribers))
	for _, subscriber := range subscribers {
		recipients = append(recipients, subscriber.Email)
	}

	subject := fmt.Sprintf("Service Status Update: %s", service.Name)
	body := statusEmailBody(service.Name, newStatus, time.Now().UTC())

	if n.mailer == nil {
		return fmt.Errorf("no mailer configured")
	}

	return n.mailer.Send(recipients, subject, body)
}

func statusColor(status string) string {
	switch status {
	case types.StatusOperational:
		return "#2FB344"
	case types.StatusDegraded:
		return "#DE9B3A"
	default:
		return "#DC3545"
	}
}

func statusEmailBody(serviceName, newStatus string, at time.Time) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #f8f9fa; padding: 20px; border-bottom: 3px solid #dee2e6; }
        .content { padding: 20px; }
        .status { font-weight: bold; padding: 8px 16px; border-radius: 4px; display: inline-block; }
        .footer { margin-top: 20px; padding-top: 20px; border-top: 1px solid #dee2e6; font-size: 12px; color: #6c757d; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h2 style="margin: 0; color: #212529;">Service Status Update</h2>
        </div>
        <div class="content">
            <p>Hello,</p>
            <p>We're writing to inform you that the status of <strong>%s</strong> has been updated.</p>
            <p>
                Current Status:
                <span class="status" style="background-color: %s; color: white;">%s</span>
            </p>
            <p>This status update was recorded at %s.</p>
            <p>You can view more details about this service's status by visiting our status page.</p>
        </div>
        <div class="footer">
            <p>This is an automated message. Please do not reply to this email.</p>
            <p>You're receiving this because you subscribed to status updates.
               To unsubscribe, please visit our status page.</p>
        </div>
    </div>
</body>
</html>`, serviceName, statusColor(newStatus), newStatus, at.Format("January 02, 2006 15:04:05 UTC"))
}
