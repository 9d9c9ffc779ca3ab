package entity

import "time"

// StockMovement 台账移动方向
const (
	StockMovementIn  = "IN"
	StockMovementOut = "OUT"
)

// StockReferenceType 台账来源单据类型
const (
	StockRefManufacturingOrder = "MO"
	StockRefAdjustment         = "ADJUST"
)

// StockLevel 产品库存水平
type StockLevel struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid"`
	ProductID    string     `json:"product_id" gorm:"type:uuid;not null;uniqueIndex"`
	ProductSKU   string     `json:"product_sku" gorm:"size:64"`
	ProductName  string     `json:"product_name" gorm:"size:128"`
	Quantity     float64    `json:"quantity" gorm:"type:decimal(12,4);not null;default:0"`
	AvailableQty float64    `json:"available_qty" gorm:"type:decimal(12,4);not null;default:0"`
	Unit         string     `json:"unit" gorm:"size:16;not null;default:pcs"`
	LastMovedAt  *time.Time `json:"last_moved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (StockLevel) TableName() string {
	return "stock_levels"
}

// StockEntry 库存台账行，只追加
type StockEntry struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid"`
	ProductID     string    `json:"product_id" gorm:"type:uuid;not null;index"`
	ProductSKU    string    `json:"product_sku" gorm:"size:64"`
	ProductName   string    `json:"product_name" gorm:"size:128"`
	Movement      string    `json:"movement" gorm:"size:8;not null"`
	Quantity      float64   `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Unit          string    `json:"unit" gorm:"size:16;not null;default:pcs"`
	ReferenceType string    `json:"reference_type" gorm:"size:16;not null"`
	ReferenceID   string    `json:"reference_id" gorm:"size:36"`
	ReferenceCode string    `json:"reference_code" gorm:"size:32;index"`
	CreatedBy     string    `json:"created_by" gorm:"size:36"`
	CreatedAt     time.Time `json:"created_at"`
}

func (StockEntry) TableName() string {
	return "stock_entries"
}
