package store

import (
	"gorm.io/gorm"

	"github.com/acailability/acaibot/models"
)

// ShopGate reads and writes the global shop-open flag. Conversations take a
// snapshot at entry only; toggling never touches an in-flight conversation
// or orders already queued.
type ShopGate struct {
	DB *gorm.DB
}

func NewShopGate(db *gorm.DB) *ShopGate {
	return &ShopGate{DB: db}
}

// IsOpen reports the shop flag. A missing row means open, matching the
// seeded default.
func (g *ShopGate) IsOpen() bool {
	// Struct-style condition so the driver quotes the column; `key` is a
	// reserved word on mysql.
	var setting models.Setting
	err := g.DB.Where(models.Setting{Key: models.SettingShopOpen}).First(&setting).Error
	if err != nil {
		return true
	}
	return setting.Value == "1"
}

// SetOpen upserts the shop flag. Only the operator toggle action calls this.
func (g *ShopGate) SetOpen(open bool) error {
	value := "0"
	if open {
		value = "1"
	}
	var setting models.Setting
	return g.DB.Where(models.Setting{Key: models.SettingShopOpen}).
		Assign(models.Setting{Value: value}).
		FirstOrCreate(&setting).Error
}
