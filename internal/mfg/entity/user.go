package entity

import "time"

// UserStatus 用户状态
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User 系统用户（外部认证，仅用于归属与审计）
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid"`
	Username  string     `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Name      string     `json:"name" gorm:"size:128;not null"`
	Email     string     `json:"email" gorm:"size:128"`
	Role      string     `json:"role" gorm:"size:32;not null;default:operator"`
	Status    string     `json:"status" gorm:"size:16;not null;default:active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
