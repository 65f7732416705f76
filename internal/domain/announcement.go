package domain

import "time"

// Announcement is a notice published to residents.
type Announcement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsUrgent    bool      `json:"isUrgent"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Validate checks required announcement fields.
func (a Announcement) Validate() error {
	return requireFields(map[string]string{
		"title":   a.Title,
		"content": a.Content,
	})
}
