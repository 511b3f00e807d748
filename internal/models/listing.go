package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Listing categories. Stored and matched in canonical lowercase.
const (
	CategoryTextbooks   = "textbooks"
	CategoryElectronics = "electronics"
	CategoryNotes       = "notes"
	CategoryFurniture   = "furniture"
	CategoryClothing    = "clothing"
	CategoryOther       = "other"
)

// Listing conditions. The like-new value is spelled with a hyphen on
// the wire.
const (
	ConditionNew     = "new"
	ConditionLikeNew = "like-new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionPoor    = "poor"
)

// ListingCategories enumerates the accepted category values.
var ListingCategories = []string{
	CategoryTextbooks,
	CategoryElectronics,
	CategoryNotes,
	CategoryFurniture,
	CategoryClothing,
	CategoryOther,
}

// ListingConditions enumerates the accepted condition values.
var ListingConditions = []string{
	ConditionNew,
	ConditionLikeNew,
	ConditionGood,
	ConditionFair,
	ConditionPoor,
}

// NormalizeCategory maps user input onto the canonical lowercase form.
func NormalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeCondition maps user input onto the canonical hyphenated
// form, so "Like_New" and "like-new" both store as "like-new".
func NormalizeCondition(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
}

// Listing represents an item offered for sale on the marketplace.
// Price is whole currency units.
type Listing struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Price       int                         `gorm:"not null" json:"price"`
	Category    string                      `gorm:"size:64;not null;index" json:"category"`
	Condition   string                      `gorm:"size:32;not null" json:"condition"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	UserID      string                      `gorm:"size:36;not null;index" json:"userId"`
	University  string                      `gorm:"size:255;not null;index" json:"university"`
	IsActive    bool                        `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time                   `json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Listing) TableName() string {
	return "listings"
}

// ListingPatch carries a partial listing update. Nil fields are left
// untouched.
type ListingPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *int      `json:"price"`
	Category    *string   `json:"category"`
	Condition   *string   `json:"condition"`
	Images      *[]string `json:"images"`
	University  *string   `json:"university"`
	IsActive    *bool     `json:"isActive"`
}
