package models

import (
	"layananwarga-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

type Admin struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Password  string     `gorm:"not null" json:"-"`
	Email     string     `gorm:"index" json:"email"`
	Role      string     `gorm:"type:varchar(20);not null;default:'ADMIN'" json:"role"` // ADMIN or SUPER_ADMIN
	IsActive  bool       `gorm:"column:is_active;default:true" json:"is_active"`
	LastLogin *time.Time `gorm:"column:last_login" json:"last_login"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// Hash password and assign the UUID before creating
func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return err
	}
	a.Password = hashed
	return
}
