package models

// Setting is a single key/value row. The shop-open flag lives here so it
// survives restarts.
type Setting struct {
	Key   string `gorm:"primaryKey;type:varchar(50)" json:"key"`
	Value string `gorm:"type:varchar(255);not null" json:"value"`
}

const SettingShopOpen = "shop_open"
