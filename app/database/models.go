package database

import (
	"time"
)

// Settings is the single channel settings row (id is fixed at 1).
type Settings struct {
	ID             int64     `json:"-"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Link           string    `json:"link"`
	Language       string    `json:"language"`
	Copyright      string    `json:"copyright"`
	ManagingEditor string    `json:"managingEditor"`
	Webmaster      string    `json:"webmaster"`
	Generator      string    `json:"generator"`
	ImageURL       string    `json:"imageUrl"`
	ImageTitle     string    `json:"imageTitle"`
	ImageLink      string    `json:"imageLink"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Item is a single feed item record.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Link        string    `json:"link"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	GUID        string    `json:"guid"`
	PubDate     time.Time `json:"pubDate"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DefaultSettings returns the channel settings seeded on first start.
func DefaultSettings() Settings {
	return Settings{
		ID:          1,
		Title:       "PolySend Notifications",
		Description: "Notifications and announcements from PolySend",
		Link:        "https://polysend.io",
		Language:    "en",
		Generator:   "notifeed",
	}
}
