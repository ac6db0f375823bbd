package models

import "time"

// UserProduct is an item on a user's product shelf.
type UserProduct struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:36;index;not null" json:"userId"`
	ProductName string    `gorm:"size:255;not null" json:"productName"`
	ProductType string    `gorm:"size:64;not null" json:"productType"`
	Brand       string    `gorm:"size:128" json:"brand"`
	OpenedDate  *string   `gorm:"size:10" json:"openedDate"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
