package entity

import "time"

// AuditAction 审计动作
const (
	AuditActionCreate       = "create"
	AuditActionStatusChange = "status_change"
	AuditActionCancel       = "cancel"
)

// AuditLog 审计日志，只追加
type AuditLog struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	ActorID    string    `json:"actor_id" gorm:"size:36;not null;index"`
	ActorName  string    `json:"actor_name" gorm:"size:128"`
	Action     string    `json:"action" gorm:"size:32;not null"`
	EntityType string    `json:"entity_type" gorm:"size:32;not null;index"`
	EntityID   string    `json:"entity_id" gorm:"size:36;not null"`
	Detail     string    `json:"detail,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
