package models

import "time"

type ShareType string

const (
	// ShareTypeFolder grants access to a whole folder subtree.
	ShareTypeFolder ShareType = "folder"
	// ShareTypeLink grants anonymous access to a single note to anyone
	// who knows the share id.
	ShareTypeLink ShareType = "link"
	// ShareTypeApp is reserved for internal use and cannot be created
	// through the API.
	ShareTypeApp ShareType = "app"
)

// Share grants access to one item. The type fixes which of the external id
// fields is meaningful: folder_id for folder shares, note_id for link
// shares. Both are echo-back values from creation time; lookups after
// creation go through item_id.
type Share struct {
	ID        string    `json:"id"`
	Type      ShareType `json:"type"`
	ItemID    int64     `json:"item_id"`
	OwnerID   int64     `json:"owner_id"`
	FolderID  *string   `json:"folder_id,omitempty"`
	NoteID    *string   `json:"note_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ShareUser is an invitation of a single user to a share.
type ShareUser struct {
	ID         int64     `json:"id"`
	ShareID    string    `json:"share_id"`
	UserID     int64     `json:"user_id"`
	IsAccepted bool      `json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
}
