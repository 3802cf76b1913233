package model

import (
	"time"
)

type SessionStatus string

const (
	SessionStatusDraft     SessionStatus = "draft"
	SessionStatusPublished SessionStatus = "published"
)

// Session is a user-authored wellness media item. Not an HTTP session.
type Session struct {
	ID          string        `db:"id" json:"id"`
	OwnerID     string        `db:"owner_id" json:"ownerId"`
	OwnerEmail  string        `db:"owner_email" json:"ownerEmail"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Tags        TagList       `db:"tags" json:"tags"`
	VideoURL    string        `db:"video_url" json:"video_url"`
	Thumbnail   string        `db:"thumbnail" json:"thumbnail"`
	Duration    string        `db:"duration" json:"duration"`
	Status      SessionStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}

// SaveSessionParams carries the writable fields for the shared
// draft/publish save path. Optional fields are stored as empty strings,
// never NULL.
type SaveSessionParams struct {
	Title       string
	Description string
	Tags        TagList
	VideoURL    string
	Thumbnail   string
	Duration    string
	Status      SessionStatus
}
