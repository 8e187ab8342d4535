package domain

import "time"

// Pin is a geotagged memory posted by a user.
type Pin struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Comments  []Comment `json:"comments"`
	Date      time.Time `json:"date"`
}

// Comment is a user comment attached to a pin, newest first.
type Comment struct {
	ID       string    `json:"id"`
	PinID    string    `json:"pinId"`
	AuthorID string    `json:"author"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Text     string    `json:"text"`
	Date     time.Time `json:"date"`
}
