package models

import "time"

// CartItem is a single add-to-cart record owned by a user.
type CartItem struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"index;type:varchar(36)"`
	ProductID int       `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartItemAddedEvent is published after an item was added to a cart.
type CartItemAddedEvent struct {
	UserID    string    `json:"userId"`
	ProductID int       `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}
