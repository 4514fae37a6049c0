package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/acailability/acaibot/config"
	"github.com/acailability/acaibot/models"
	"github.com/acailability/acaibot/router"
	"github.com/acailability/acaibot/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const (
	operatorChatID = int64(900)
	relayToken     = "relay-secret"
)

type fakeMessenger struct {
	mu   sync.Mutex
	sent map[int64][]string
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{sent: make(map[int64][]string)}
}

func (f *fakeMessenger) Send(_ context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}

func setupRouter(t *testing.T) (*gin.Engine, *fakeMessenger, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Setting{}, &models.Order{}, &models.OrderItem{}, &models.Operator{}))

	hashed, err := bcrypt.GenerateFromPassword([]byte("melvin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Operator{
		Name:     "Melvin",
		Email:    "melvin@acailability.test",
		Password: string(hashed),
		ChatID:   operatorChatID,
	}).Error)

	cfg := config.App{
		AdminIDs:   []int64{operatorChatID},
		RelayToken: relayToken,
	}
	messenger := newFakeMessenger()
	return router.SetupRouter(db, cfg, messenger), messenger, db
}

func postEvent(t *testing.T, r *gin.Engine, customerID int64, name string, event map[string]interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(map[string]interface{}{
		"customer_id":   customerID,
		"customer_name": name,
		"event":         event,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Relay-Token", relayToken)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func repliesOf(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	var body struct {
		Data struct {
			Replies []map[string]interface{} `json:"replies"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data.Replies
}

func TestEventsRequireRelayToken(t *testing.T) {
	r, _, _ := setupRouter(t)

	payload := []byte(`{"customer_id":101,"event":{"kind":"start"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStartEventReturnsMenu(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := postEvent(t, r, 101, "alice", map[string]interface{}{"kind": "start"})
	require.Equal(t, http.StatusOK, w.Code)

	replies := repliesOf(t, w)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0]["text"], "welcome to Acailability")
}

func TestOperatorCommandDeniedForCustomers(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := postEvent(t, r, 101, "alice", map[string]interface{}{"kind": "queue_request"})
	require.Equal(t, http.StatusOK, w.Code)

	replies := repliesOf(t, w)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0]["text"], "Access Denied")
}

func TestToggleShopViaChat(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := postEvent(t, r, operatorChatID, "melvin", map[string]interface{}{"kind": "toggle_shop"})
	replies := repliesOf(t, w)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0]["text"], "CLOSED")

	// Customers now hit the closed gate at entry.
	w = postEvent(t, r, 101, "alice", map[string]interface{}{"kind": "start"})
	replies = repliesOf(t, w)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0]["text"], "CLOSED")
}

func login(t *testing.T, r *gin.Engine, email, password string) (string, int) {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		return "", w.Code
	}

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data.Token, w.Code
}

func TestLogin(t *testing.T) {
	r, _, _ := setupRouter(t)

	_, code := login(t, r, "melvin@acailability.test", "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)

	token, code := login(t, r, "melvin@acailability.test", "melvin123")
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, token)
}

func TestQueueRequiresAuth(t *testing.T) {
	r, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/queue", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDashboardServeFlow(t *testing.T) {
	r, messenger, _ := setupRouter(t)

	// Customer places an order through the chat gateway.
	postEvent(t, r, 101, "alice", map[string]interface{}{"kind": "start"})
	postEvent(t, r, 101, "alice", map[string]interface{}{"kind": "menu_pick", "item_key": "banana"})
	w := postEvent(t, r, 101, "alice", map[string]interface{}{"kind": "checkout"})
	require.Equal(t, http.StatusOK, w.Code)

	token, code := login(t, r, "melvin@acailability.test", "melvin123")
	require.Equal(t, http.StatusOK, code)

	// The queue shows the pending order.
	req := httptest.NewRequest(http.MethodGet, "/api/queue", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	qw := httptest.NewRecorder()
	r.ServeHTTP(qw, req)
	require.Equal(t, http.StatusOK, qw.Code)

	var queueBody struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(qw.Body.Bytes(), &queueBody))
	require.Len(t, queueBody.Data, 1)
	order := queueBody.Data[0]
	assert.Equal(t, "alice", order.CustomerName)
	assert.Equal(t, 7.00, order.Total)

	// Serve it from the dashboard.
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/orders/%s/serve", order.Ref), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	sw := httptest.NewRecorder()
	r.ServeHTTP(sw, req)
	require.Equal(t, http.StatusOK, sw.Code)

	messenger.mu.Lock()
	customerMsgs := messenger.sent[101]
	messenger.mu.Unlock()
	require.NotEmpty(t, customerMsgs)
	assert.Contains(t, customerMsgs[len(customerMsgs)-1], "is ready!")

	// Queue is empty afterwards.
	req = httptest.NewRequest(http.MethodGet, "/api/queue", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	qw = httptest.NewRecorder()
	r.ServeHTTP(qw, req)
	require.NoError(t, json.Unmarshal(qw.Body.Bytes(), &queueBody))
	assert.Empty(t, queueBody.Data)
}
