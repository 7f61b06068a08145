package incident_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/statushub-dev/statushub/internal/apperr"
	"github.com/statushub-dev/statushub/internal/incident"
	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	adminActor = types.Actor{ID: 1, Email: "admin@example.com", Roles: []string{"admin"}}
	userActor  = types.Actor{ID: 2, Email: "user@example.com", Roles: []string{"user"}}
)

type testKit struct {
	db      *gorm.DB
	engine  *incident.Engine
	service models.Service
}

func setupEngine(t *testing.T) *testKit {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.Organization{},
		&models.Service{},
		&models.Incident{},
	))

	organization := models.Organization{Name: "Acme"}
	require.NoError(t, conn.Create(&organization).Error)

	service := models.Service{
		Name:           "API",
		Status:         types.StatusOperational,
		OrganizationID: organization.ID,
	}
	require.NoError(t, conn.Create(&service).Error)

	return &testKit{
		db:      conn,
		engine:  incident.NewEngine(conn),
		service: service,
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreate(t *testing.T) {
	kit := setupEngine(t)

	record, err := kit.engine.Create(kit.service.ID, "Elevated error rates", types.IncidentOngoing, false, adminActor)
	require.NoError(t, err)

	assert.Equal(t, types.IncidentOngoing, record.Status)
	assert.Equal(t, "Elevated error rates", record.Description)
	assert.False(t, record.Resolved)
}

func TestCreate_InvalidStatusPersistsNothing(t *testing.T) {
	kit := setupEngine(t)

	_, err := kit.engine.Create(kit.service.ID, "Elevated error rates", "Exploded", false, adminActor)
	require.Error(t, err)
	assert.IsType(t, &apperr.ValidationError{}, err)

	var count int64
	require.NoError(t, kit.db.Model(&models.Incident{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreate_UnknownService(t *testing.T) {
	kit := setupEngine(t)

	_, err := kit.engine.Create(9999, "Elevated error rates", types.IncidentOngoing, false, adminActor)
	require.Error(t, err)
	assert.IsType(t, &apperr.ValidationError{}, err)
}

func TestCreate_RequiresAdmin(t *testing.T) {
	kit := setupEngine(t)

	_, err := kit.engine.Create(kit.service.ID, "Elevated error rates", types.IncidentOngoing, false, userActor)
	require.Error(t, err)
	assert.IsType(t, &apperr.AuthorizationError{}, err)
}

func TestUpdate_PartialPatch(t *testing.T) {
	kit := setupEngine(t)

	record, err := kit.engine.Create(kit.service.ID, "Elevated error rates", types.IncidentOngoing, false, adminActor)
	require.NoError(t, err)

	updated, err := kit.engine.Update(record.ID, incident.Patch{Description: strPtr("Root cause identified")}, adminActor)
	require.NoError(t, err)

	assert.Equal(t, "Root cause identified", updated.Description)
	// Untouched fields survive a partial patch.
	assert.Equal(t, types.IncidentOngoing, updated.Status)
	assert.False(t, updated.Resolved)
}

// Status and Resolved are independent: marking the status Resolved does not
// flip the boolean, and the engine stores the pair exactly as given.
func TestUpdate_StatusAndResolvedStayIndependent(t *testing.T) {
	kit := setupEngine(t)

	record, err := kit.engine.Create(kit.service.ID, "Elevated error rates", types.IncidentOngoing, false, adminActor)
	require.NoError(t, err)

	updated, err := kit.engine.Update(record.ID, incident.Patch{Status: strPtr(types.IncidentResolved)}, adminActor)
	require.NoError(t, err)

	assert.Equal(t, types.IncidentResolved, updated.Status)
	assert.False(t, updated.Resolved)

	updated, err = kit.engine.Update(record.ID, incident.Patch{Resolved: boolPtr(true)}, adminActor)
	require.NoError(t, err)
	assert.True(t, updated.Resolved)
	assert.Equal(t, types.IncidentResolved, updated.Status)
}

func TestUpdate_InvalidStatus(t *testing.T) {
	kit := setupEngine(t)

	record, err := kit.engine.Create(kit.service.ID, "Elevated error rates", types.IncidentOngoing, false, adminActor)
	require.NoError(t, err)

	_, err = kit.engine.Update(record.ID, incident.Patch{Status: strPtr("Exploded")}, adminActor)
	require.Error(t, err)
	assert.IsType(t, &apperr.ValidationError{}, err)
}

func TestUpdate_NotFound(t *testing.T) {
	kit := setupEngine(t)

	_, err := kit.engine.Update(9999, incident.Patch{Resolved: boolPtr(true)}, adminActor)
	require.Error(t, err)
	assert.IsType(t, &apperr.NotFoundError{}, err)
}

func TestDelete(t *testing.T) {
	kit := setupEngine(t)

	record, err := kit.engine.Create(kit.service.ID, "Elevated error rates", types.IncidentOngoing, false, adminActor)
	require.NoError(t, err)

	require.NoError(t, kit.engine.Delete(record.ID, adminActor))

	_, err = kit.engine.Get(record.ID, adminActor)
	assert.IsType(t, &apperr.NotFoundError{}, err)
}

func TestListForService_OpenToAnyAuthenticatedCaller(t *testing.T) {
	kit := setupEngine(t)

	_, err := kit.engine.Create(kit.service.ID, "Elevated error rates", types.IncidentOngoing, false, adminActor)
	require.NoError(t, err)

	incidents, err := kit.engine.ListForService(kit.service.ID)
	require.NoError(t, err)
	assert.Len(t, incidents, 1)
}

func TestListAll_RequiresAdmin(t *testing.T) {
	kit := setupEngine(t)

	_, err := kit.engine.ListAll(userActor)
	require.Error(t, err)
	assert.IsType(t, &apperr.AuthorizationError{}, err)
}

func TestListRecent_FiltersByWindow(t *testing.T) {
	kit := setupEngine(t)

	recent, err := kit.engine.Create(kit.service.ID, "Fresh incident", types.IncidentOngoing, false, adminActor)
	require.NoError(t, err)

	stale, err := kit.engine.Create(kit.service.ID, "Stale incident", types.IncidentResolved, true, adminActor)
	require.NoError(t, err)

	// Age the second incident out of the window.
	twoDaysAgo := time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, kit.db.Model(&models.Incident{}).Where("id = ?", stale.ID).
		Update("created_at", twoDaysAgo).Error)

	incidents, err := kit.engine.ListRecent(incident.RecentWindow)
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, recent.ID, incidents[0].ID)
}
