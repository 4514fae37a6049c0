// Package store persists orders and the shop-open flag. It is the only
// writer of order status and owns the exactly-once pending->served
// transition that the serve flow depends on.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acailability/acaibot/models"
)

var (
	ErrEmptyItems    = errors.New("order has no items")
	ErrOrderNotFound = errors.New("order not found")
)

// refLen keeps order refs short enough to read out loud. Low order volume
// makes the ~1M namespace acceptable; collisions are checked, not assumed
// away.
const (
	refLen         = 5
	refMaxAttempts = 5
)

type OrderStore struct {
	DB *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{DB: db}
}

// Create freezes items into a new pending order. The insert is a single
// transaction so readers never observe an order without its items or total.
func (s *OrderStore) Create(customerID int64, customerName string, items []models.OrderItem) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrEmptyItems
	}

	var total float64
	for _, it := range items {
		total += it.Price
	}

	now := time.Now()
	order := models.Order{
		CustomerID:   customerID,
		CustomerName: customerName,
		Status:       models.StatusPending,
		Total:        total,
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for attempt := 0; attempt < refMaxAttempts; attempt++ {
		ref := newRef()

		var count int64
		if err := s.DB.Model(&models.Order{}).Where("ref = ?", ref).Count(&count).Error; err != nil {
			return models.Order{}, err
		}
		if count > 0 {
			continue
		}

		order.Ref = ref
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&order).Error
		})
		if err != nil {
			// A concurrent checkout may have claimed the same ref between
			// the count and the insert; regenerate and retry.
			if isDuplicateKey(err) {
				order.Ref = ""
				continue
			}
			return models.Order{}, err
		}
		return order, nil
	}

	return models.Order{}, fmt.Errorf("could not allocate a unique order ref after %d attempts", refMaxAttempts)
}

// ListPending returns pending orders in insertion order, items preloaded.
// Operators serve the queue top to bottom, so the ordering is part of the
// contract.
func (s *OrderStore) ListPending() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("Items").
		Where("status = ?", models.StatusPending).
		Order("created_at asc").
		Find(&orders).Error
	return orders, err
}

// GetByRef fetches one order with its items.
func (s *OrderStore) GetByRef(ref string) (models.Order, error) {
	var order models.Order
	err := s.DB.Preload("Items").Where("ref = ?", ref).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	return order, err
}

// MarkServed transitions an order pending -> served. The guarded update is
// the whole point: under concurrent serves exactly one caller sees
// transitioned=true, and only that caller should notify the customer.
// Unknown or already-served refs report (false, nil).
func (s *OrderStore) MarkServed(ref string) (bool, error) {
	res := s.DB.Model(&models.Order{}).
		Where("ref = ? AND status = ?", ref, models.StatusPending).
		Updates(map[string]interface{}{
			"status":     models.StatusServed,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func newRef() string {
	return uuid.NewString()[:refLen]
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// The sqlite driver reports the raw constraint error unless the
	// connection was opened with error translation.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
