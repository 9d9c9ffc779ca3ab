package entity

import "time"

// OrderStatus 制造订单状态
const (
	OrderStatusDraft      = "draft"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusInProgress = "in_progress"
	OrderStatusToClose    = "to_close"
	OrderStatusDone       = "done"
	OrderStatusCancelled  = "cancelled"
)

// OrderPriority 订单优先级
const (
	OrderPriorityLow    = "low"
	OrderPriorityNormal = "normal"
	OrderPriorityHigh   = "high"
	OrderPriorityUrgent = "urgent"
)

// ManufacturingOrder 制造订单
type ManufacturingOrder struct {
	ID               string     `json:"id" gorm:"primaryKey;type:uuid"`
	Reference        string     `json:"reference" gorm:"size:32;not null;uniqueIndex"`
	ProductID        string     `json:"product_id" gorm:"type:uuid;not null;index"`
	ProductSKU       string     `json:"product_sku" gorm:"size:64"`
	ProductName      string     `json:"product_name" gorm:"size:128"`
	BOMID            string     `json:"bom_id" gorm:"type:uuid;not null"`
	BOMVersion       string     `json:"bom_version" gorm:"size:16"`
	Quantity         float64    `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Status           string     `json:"status" gorm:"size:20;not null;default:draft;index"`
	Priority         string     `json:"priority" gorm:"size:16;not null;default:normal"`
	Description      string     `json:"description,omitempty" gorm:"type:text"`
	PlannedStartDate time.Time  `json:"planned_start_date" gorm:"not null"`
	PlannedEndDate   time.Time  `json:"planned_end_date" gorm:"not null"`
	ActualStart      *time.Time `json:"actual_start,omitempty"`
	ActualEnd        *time.Time `json:"actual_end,omitempty"`
	CreatedBy        string     `json:"created_by" gorm:"size:36;not null"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Product    *Product         `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Components []OrderComponent `json:"components,omitempty" gorm:"foreignKey:OrderID"`
	WorkOrders []WorkOrder      `json:"work_orders,omitempty" gorm:"foreignKey:OrderID"`
}

func (ManufacturingOrder) TableName() string {
	return "manufacturing_orders"
}

// OrderComponent 订单组件需求行，结构与来源BOM组件一一对应
type OrderComponent struct {
	ID               string    `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID          string    `json:"order_id" gorm:"type:uuid;not null;index"`
	ComponentID      string    `json:"component_id" gorm:"type:uuid;not null"`
	ComponentSKU     string    `json:"component_sku" gorm:"size:64"`
	ComponentName    string    `json:"component_name" gorm:"size:128"`
	QuantityRequired float64   `json:"quantity_required" gorm:"type:decimal(12,4);not null"`
	QuantityConsumed float64   `json:"quantity_consumed" gorm:"type:decimal(12,4);default:0"`
	Unit             string    `json:"unit" gorm:"size:16;not null;default:pcs"`
	Sequence         int       `json:"sequence" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (OrderComponent) TableName() string {
	return "order_components"
}

// WorkOrderStatus 作业工单状态
const (
	WorkOrderStatusPending    = "pending"
	WorkOrderStatusInProgress = "in_progress"
	WorkOrderStatusDone       = "done"
)

// WorkOrder 作业工单，按BOM工序在订单确认时生成
type WorkOrder struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID         string     `json:"order_id" gorm:"type:uuid;not null;index"`
	Operation       string     `json:"operation" gorm:"size:128;not null"`
	Workstation     string     `json:"workstation" gorm:"size:64"`
	DurationMinutes int        `json:"duration_minutes" gorm:"not null;default:0"`
	Sequence        int        `json:"sequence" gorm:"not null;default:0"`
	Status          string     `json:"status" gorm:"size:20;not null;default:pending"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}
