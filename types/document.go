package types

import "time"

// Document is the extracted text of an uploaded file held for follow-up
// questions until ExpiresAt.
type Document struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

func (d *Document) Expired(now time.Time) bool {
	return !d.ExpiresAt.After(now)
}
