package models

import "time"

// Artwork is one piece in a user's personal collection. MuseumObjectID links
// back to the Met Museum object the piece was imported from, when it was.
type Artwork struct {
	ID             int64     `json:"id"`
	UserID         int       `json:"user_id"`
	MuseumObjectID int64     `json:"museum_object_id,omitempty"`
	Title          string    `json:"title"`
	Artist         string    `json:"artist"`
	ObjectDate     string    `json:"object_date,omitempty"`
	Medium         string    `json:"medium,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
