package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the authentication row: email + bcrypt hash.
type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate sets the UUID for DBs without gen_random_uuid (SQLite tests).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile is the public-facing metadata, one-to-one with a user.
type Profile struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"column:username;not null;uniqueIndex" json:"username"`
	FullName  string    `gorm:"column:full_name;not null" json:"full_name"`
	AvatarURL *string   `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
