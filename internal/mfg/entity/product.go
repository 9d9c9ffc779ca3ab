package entity

import "time"

// ProductCategory 产品类别
const (
	CategoryRawMaterial  = "raw_material"
	CategoryFinishedGood = "finished_good"
)

// ProductStatus 产品状态
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product 产品实体（原材料 / 成品）
type Product struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid"`
	SKU          string     `json:"sku" gorm:"size:64;not null;uniqueIndex"`
	Name         string     `json:"name" gorm:"size:128;not null;index"`
	Category     string     `json:"category" gorm:"size:20;not null;default:raw_material;index"`
	Unit         string     `json:"unit" gorm:"size:16;not null;default:pcs"`
	Description  string     `json:"description,omitempty" gorm:"type:text"`
	StandardCost float64    `json:"standard_cost" gorm:"type:decimal(15,4);default:0"`
	Status       string     `json:"status" gorm:"size:16;not null;default:active"`
	CreatedBy    string     `json:"created_by" gorm:"size:36"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	BOMs []BillOfMaterial `json:"boms,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}
