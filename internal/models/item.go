package models

import "time"

const (
	ItemTypeFolder = "folder"
	ItemTypeNote   = "note"
)

// Item is a synced client object (folder or note). Clients generate the
// external id; the bigserial id is internal and never leaves the server
// except through share metadata.
type Item struct {
	ID               int64     `json:"-"`
	ExternalID       string    `json:"id"`
	OwnerID          int64     `json:"-"`
	ItemType         string    `json:"type"`
	Title            string    `json:"title"`
	ParentExternalID *string   `json:"parent_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
