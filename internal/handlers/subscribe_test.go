package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/statushub-dev/statushub/internal/handlers"
	"github.com/statushub-dev/statushub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSubscribe(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.EmailSubscriber{}))

	r := gin.New()
	r.POST("/api/notifications/subscribe", handlers.NewSubscribeHandler(conn).Subscribe)
	return conn, r
}

func postSubscribe(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubscribe_CreatesVerifiedSubscriber(t *testing.T) {
	conn, r := setupSubscribe(t)

	w := postSubscribe(r, `{"email":"reader@example.com"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var subscriber models.EmailSubscriber
	require.NoError(t, conn.Where("email = ?", "reader@example.com").First(&subscriber).Error)
	assert.True(t, subscriber.IsVerified)
	assert.NotEmpty(t, subscriber.VerificationToken)
}

func TestSubscribe_DuplicateIsIdempotent(t *testing.T) {
	conn, r := setupSubscribe(t)

	require.Equal(t, http.StatusCreated, postSubscribe(r, `{"email":"reader@example.com"}`).Code)

	w := postSubscribe(r, `{"email":"reader@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "You are already subscribed to status updates", body["message"])
	assert.Equal(t, true, body["isSubscribed"])

	var count int64
	require.NoError(t, conn.Model(&models.EmailSubscriber{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubscribe_MissingEmail(t *testing.T) {
	_, r := setupSubscribe(t)

	w := postSubscribe(r, `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Email is required", body["error"])
}

func TestSubscribe_MalformedEmail(t *testing.T) {
	_, r := setupSubscribe(t)

	w := postSubscribe(r, `{"email":"not-an-address"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
