package entity

import "time"

// BOMStatus BOM状态
const (
	BOMStatusActive   = "active"
	BOMStatusArchived = "archived"
)

// BillOfMaterial BOM头表，归属唯一成品
type BillOfMaterial struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid"`
	Reference string     `json:"reference" gorm:"size:64;not null;uniqueIndex"`
	ProductID string     `json:"product_id" gorm:"type:uuid;not null;index"`
	Version   string     `json:"version" gorm:"size:16;not null;default:v1"`
	Status    string     `json:"status" gorm:"size:16;not null;default:active"`
	Notes     string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy string     `json:"created_by" gorm:"size:36"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Product    *Product       `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Components []BOMComponent `json:"components,omitempty" gorm:"foreignKey:BOMID"`
	Operations []BOMOperation `json:"operations,omitempty" gorm:"foreignKey:BOMID"`
}

func (BillOfMaterial) TableName() string {
	return "bill_of_materials"
}

// BOMComponent BOM组件行，quantity为单件用量
type BOMComponent struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid"`
	BOMID         string    `json:"bom_id" gorm:"type:uuid;not null;index"`
	ComponentID   string    `json:"component_id" gorm:"type:uuid;not null"`
	ComponentSKU  string    `json:"component_sku" gorm:"size:64"`
	ComponentName string    `json:"component_name" gorm:"size:128"`
	Quantity      float64   `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Unit          string    `json:"unit" gorm:"size:16;not null;default:pcs"`
	Sequence      int       `json:"sequence" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Component *Product `json:"component,omitempty" gorm:"foreignKey:ComponentID"`
}

func (BOMComponent) TableName() string {
	return "bom_components"
}

// BOMOperation BOM工序行，确认工单时据此生成作业工单
type BOMOperation struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	BOMID           string    `json:"bom_id" gorm:"type:uuid;not null;index"`
	Name            string    `json:"name" gorm:"size:128;not null"`
	Workstation     string    `json:"workstation" gorm:"size:64"`
	DurationMinutes int       `json:"duration_minutes" gorm:"not null;default:0"`
	Sequence        int       `json:"sequence" gorm:"not null;default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (BOMOperation) TableName() string {
	return "bom_operations"
}
