package queue

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/acailability/acaibot/models"
	"github.com/acailability/acaibot/notify"
	"github.com/acailability/acaibot/store"
	"github.com/acailability/acaibot/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

type recordingMessenger struct {
	mu   sync.Mutex
	sent map[int64][]string
}

func newRecordingMessenger() *recordingMessenger {
	return &recordingMessenger{sent: make(map[int64][]string)}
}

func (r *recordingMessenger) Send(_ context.Context, chatID int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[chatID] = append(r.sent[chatID], text)
	return nil
}

func (r *recordingMessenger) sentTo(chatID int64) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent[chatID]...)
}

const operatorID = int64(900)

func setupPresenter(t *testing.T) (*Presenter, *recordingMessenger, *store.OrderStore) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Setting{}, &models.Order{}, &models.OrderItem{}))

	messenger := newRecordingMessenger()
	orders := store.NewOrderStore(db)
	dispatcher := notify.NewDispatcher(messenger, []int64{operatorID})
	return NewPresenter(orders, dispatcher), messenger, orders
}

func TestViewEmptyQueue(t *testing.T) {
	p, _, _ := setupPresenter(t)

	view, err := p.View()
	require.NoError(t, err)
	assert.Contains(t, view.Text, "queue is empty")
	assert.Empty(t, view.Actions)
}

func TestViewRendersOrders(t *testing.T) {
	p, _, orders := setupPresenter(t)

	order, err := orders.Create(101, "alice", []models.OrderItem{
		{Name: "Classic Acai Bowl (Maple, Honey Drizzle)", Price: 6.00, Note: "no banana"},
	})
	require.NoError(t, err)

	view, err := p.View()
	require.NoError(t, err)
	assert.Contains(t, view.Text, "#"+order.Ref)
	assert.Contains(t, view.Text, "alice")
	assert.Contains(t, view.Text, "Classic Acai Bowl (Maple, Honey Drizzle)")
	assert.Contains(t, view.Text, "Note: no banana")
	assert.Contains(t, view.Text, "Total: $6.00")

	require.Len(t, view.Actions, 2)
	assert.Equal(t, "serve_"+order.Ref, view.Actions[0].Data)
	assert.Equal(t, "refresh_queue", view.Actions[1].Data)
}

func TestServeNotifiesAndRerenders(t *testing.T) {
	p, messenger, orders := setupPresenter(t)

	order, err := orders.Create(101, "alice", []models.OrderItem{{Name: "Classic Acai Bowl", Price: 6.00}})
	require.NoError(t, err)

	view, err := p.Serve(context.Background(), order.Ref)
	require.NoError(t, err)
	assert.Contains(t, view.Text, "queue is empty")

	customerMsgs := messenger.sentTo(101)
	require.Len(t, customerMsgs, 1)
	assert.Contains(t, customerMsgs[0], "Order #"+order.Ref+" is ready!")

	operatorMsgs := messenger.sentTo(operatorID)
	require.Len(t, operatorMsgs, 1)
	assert.Contains(t, operatorMsgs[0], "marked served")

	got, err := orders.GetByRef(order.Ref)
	require.NoError(t, err)
	assert.Equal(t, models.StatusServed, got.Status)
}

func TestServeUnknownRefJustRerenders(t *testing.T) {
	p, messenger, _ := setupPresenter(t)

	view, err := p.Serve(context.Background(), "zzzzz")
	require.NoError(t, err)
	assert.Contains(t, view.Text, "queue is empty")
	assert.Empty(t, messenger.sentTo(operatorID))
}

func TestConcurrentServesNotifyCustomerOnce(t *testing.T) {
	p, messenger, orders := setupPresenter(t)

	order, err := orders.Create(101, "alice", []models.OrderItem{{Name: "Classic Acai Bowl", Price: 6.00}})
	require.NoError(t, err)

	const operators = 6
	var wg sync.WaitGroup
	for i := 0; i < operators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Serve(context.Background(), order.Ref)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Exactly one transition won, so exactly one ready message went out.
	customerMsgs := messenger.sentTo(101)
	assert.Len(t, customerMsgs, 1)

	ready := 0
	for _, msg := range messenger.sentTo(operatorID) {
		if strings.Contains(msg, "marked served") {
			ready++
		}
	}
	assert.Equal(t, 1, ready)
}
