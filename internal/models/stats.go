package models

// Stats holds the aggregate counts shown on the admin dashboard.
type Stats struct {
	Users        int64  `json:"users"`
	Products     int64  `json:"products"`
	ServerStatus string `json:"serverStatus"`
}
