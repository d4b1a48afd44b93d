package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/samotors/vehicle-backend/pkg/enums"
	"gorm.io/gorm"
)

// User represents the canonical identity entity. PasswordHash must never be
// serialized on any read path; transport projections live in internal/users.
type User struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string          `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	FirstName    string          `gorm:"column:first_name;not null"`
	LastName     string          `gorm:"column:last_name;not null"`
	Phone        *string         `gorm:"column:phone"`
	UserLevel    enums.UserLevel `gorm:"column:user_level;not null;default:user"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an id when the database default is unavailable (sqlite).
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
