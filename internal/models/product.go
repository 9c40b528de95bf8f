package models

// Product represents a book in the catalog.
//
// ID is the store's own record identifier, LegacyID is the human-assigned
// numeric id the storefront links to. Both are exposed to clients.
type Product struct {
	ID                 string  `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	LegacyID           int     `json:"id" gorm:"column:legacy_id;index"`
	Title              string  `json:"title"`
	Author             string  `json:"author"`
	Genre              string  `json:"genre"`
	Price              float64 `json:"price"`
	Image              string  `json:"image"`
	AvailableInventory int     `json:"AvailableInventory" gorm:"column:available_inventory"`
	Description        string  `json:"description"`
}
