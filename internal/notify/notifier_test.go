package notify_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/notify"
	"github.com/statushub-dev/statushub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeHub struct {
	events   []string
	payloads []map[string]interface{}
}

func (h *fakeHub) Broadcast(event string, payload map[string]interface{}) {
	h.events = append(h.events, event)
	h.payloads = append(h.payloads, payload)
}

type fakeMailer struct {
	err  error
	sent chan []string
}

func newFakeMailer(err error) *fakeMailer {
	return &fakeMailer{err: err, sent: make(chan []string, 1)}
}

func (m *fakeMailer) Send(to []string, subject, htmlBody string) error {
	m.sent <- to
	return m.err
}

func setupNotifier(t *testing.T, mailer notify.Mailer) (*gorm.DB, *fakeHub, *notify.Notifier) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.EmailSubscriber{}))

	hub := &fakeHub{}
	return conn, hub, notify.NewNotifier(conn, hub, mailer)
}

func testService() models.Service {
	return models.Service{
		BaseModel: models.BaseModel{ID: 7},
		Name:      "API",
		Status:    types.StatusOutage,
	}
}

func TestStatusChanged_BroadcastsPayload(t *testing.T) {
	mailer := newFakeMailer(nil)
	_, hub, notifier := setupNotifier(t, mailer)

	notifier.StatusChanged(testService(), types.StatusOperational, types.StatusOutage)

	require.Len(t, hub.events, 1)
	assert.Equal(t, notify.StatusChangedEvent, hub.events[0])
	assert.Equal(t, uint(7), hub.payloads[0]["service_id"])
	assert.Equal(t, "API", hub.payloads[0]["name"])
	assert.Equal(t, types.StatusOutage, hub.payloads[0]["status"])
	assert.Equal(t, types.StatusOperational, hub.payloads[0]["old_status"])
}

func TestEmailSubscribers_OnlyVerifiedRecipients(t *testing.T) {
	mailer := newFakeMailer(nil)
	conn, _, notifier := setupNotifier(t, mailer)

	require.NoError(t, conn.Create(&models.EmailSubscriber{Email: "a@example.com", IsVerified: true, VerificationToken: "t1"}).Error)
	require.NoError(t, conn.Create(&models.EmailSubscriber{Email: "b@example.com", IsVerified: false, VerificationToken: "t2"}).Error)

	require.NoError(t, notifier.EmailSubscribers(testService(), types.StatusOutage))

	select {
	case to := <-mailer.sent:
		assert.Equal(t, []string{"a@example.com"}, to)
	case <-time.After(time.Second):
		t.Fatal("mailer was not invoked")
	}
}

func TestEmailSubscribers_NoVerifiedSubscribersIsASilentSkip(t *testing.T) {
	mailer := newFakeMailer(nil)
	conn, _, notifier := setupNotifier(t, mailer)

	require.NoError(t, conn.Create(&models.EmailSubscriber{Email: "b@example.com", IsVerified: false, VerificationToken: "t2"}).Error)

	require.NoError(t, notifier.EmailSubscribers(testService(), types.StatusOutage))

	select {
	case <-mailer.sent:
		t.Fatal("mailer should not be invoked with no verified subscribers")
	default:
	}
}

// A failing mail sink never reaches the caller of StatusChanged: the
// broadcast still happens and the failure is only logged.
func TestStatusChanged_MailFailureIsContained(t *testing.T) {
	mailer := newFakeMailer(errors.New("smtp: connection refused"))
	conn, hub, notifier := setupNotifier(t, mailer)

	require.NoError(t, conn.Create(&models.EmailSubscriber{Email: "a@example.com", IsVerified: true, VerificationToken: "t1"}).Error)

	notifier.StatusChanged(testService(), types.StatusOperational, types.StatusOutage)

	select {
	case <-mailer.sent:
	case <-time.After(time.Second):
		t.Fatal("mail delivery was never attempted")
	}

	assert.Len(t, hub.events, 1)
}
