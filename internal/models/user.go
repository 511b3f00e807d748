package models

import "time"

// User represents a registered student account.
//
// The password column stores a bcrypt hash and is never serialized:
// every API response that carries a user relies on the json:"-" tag
// to keep the hash out of the payload.
type User struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Username   string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	FirstName  string    `gorm:"size:120;not null" json:"firstName"`
	LastName   string    `gorm:"size:120;not null" json:"lastName"`
	University string    `gorm:"size:255;not null" json:"university"`
	Major      string    `gorm:"size:255" json:"major"`
	Year       string    `gorm:"size:32" json:"year"`
	Bio        string    `gorm:"type:text" json:"bio"`
	Avatar     string    `gorm:"size:512" json:"avatar"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// UserPatch carries a partial profile update. Nil fields are left
// untouched. The password hash is deliberately not patchable here.
type UserPatch struct {
	Username   *string `json:"username"`
	Email      *string `json:"email"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	University *string `json:"university"`
	Major      *string `json:"major"`
	Year       *string `json:"year"`
	Bio        *string `json:"bio"`
	Avatar     *string `json:"avatar"`
}
