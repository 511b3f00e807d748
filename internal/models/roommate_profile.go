package models

import (
	"time"

	"gorm.io/datatypes"
)

// RoommateProfile advertises a user looking for housing or a roommate.
// Each user has at most one profile, enforced by the unique index on
// user_id in addition to the pre-check in the service layer.
type RoommateProfile struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	UserID      string                      `gorm:"size:36;not null;uniqueIndex" json:"userId"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Preferences datatypes.JSONSlice[string] `json:"preferences"`
	Budget      *int                        `json:"budget"`
	MoveInDate  string                      `gorm:"size:64" json:"moveInDate"`
	Location    string                      `gorm:"size:255" json:"location"`
	ContactInfo string                      `gorm:"size:255" json:"contactInfo"`
	IsActive    bool                        `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time                   `json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (RoommateProfile) TableName() string {
	return "roommate_profiles"
}

// RoommatePatch carries a partial roommate profile update. Nil fields
// are left untouched.
type RoommatePatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Preferences *[]string `json:"preferences"`
	Budget      *int      `json:"budget"`
	MoveInDate  *string   `json:"moveInDate"`
	Location    *string   `json:"location"`
	ContactInfo *string   `json:"contactInfo"`
	IsActive    *bool     `json:"isActive"`
}
