package models

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus values accepted for listings.status.
const (
	StatusActive = "active"
	StatusSold   = "sold"
	StatusHidden = "hidden"
)

// Listing is the sellable item row. Owner and timestamps are system-assigned;
// latitude/longitude are always both populated on a persisted row.
type Listing struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Owner       uuid.UUID `gorm:"column:owner;type:uuid;not null;index" json:"owner"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description;not null" json:"description"`
	PriceCents  int64     `gorm:"column:price_cents;not null" json:"price_cents"`
	CategoryID  *int64    `gorm:"column:category_id" json:"category_id"`
	Status      string    `gorm:"column:status;type:varchar(20);not null;default:'active'" json:"status"`
	Country     string    `gorm:"column:country;not null" json:"country"`
	Region      string    `gorm:"column:region;not null" json:"region"`
	City        string    `gorm:"column:city;not null" json:"city"`
	Latitude    float64   `gorm:"column:latitude;not null" json:"latitude"`
	Longitude   float64   `gorm:"column:longitude;not null" json:"longitude"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	Images []ListingImage `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Listing) TableName() string {
	return "listings"
}

// ListingImage associates a listing with a storage path. Insertion order
// (the id sequence) is the display order.
type ListingImage struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ListingID int64  `gorm:"column:listing_id;not null;index" json:"listing_id"`
	Path      string `gorm:"column:path;not null" json:"path"`
}

func (ListingImage) TableName() string {
	return "listing_images"
}

// MaxListingImages caps images per listing.
const MaxListingImages = 10
