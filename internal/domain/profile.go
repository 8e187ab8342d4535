package domain

import "time"

// FriendRef is one entry in a profile's friends or friendRequests list.
type FriendRef struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Profile holds the bio fields and relationship lists for one user.
// Friendship is symmetric: if B appears in A's Friends, A appears in B's.
type Profile struct {
	UserID         string      `json:"user"`
	Location       string      `json:"location,omitempty"`
	Image          string      `json:"image,omitempty"`
	School         string      `json:"school,omitempty"`
	Profession     string      `json:"profession,omitempty"`
	Bio            string      `json:"bio,omitempty"`
	Facebook       string      `json:"facebook,omitempty"`
	Instagram      string      `json:"instagram,omitempty"`
	LoginCount     int         `json:"loginCount"`
	Friends        []FriendRef `json:"friends"`
	FriendRequests []FriendRef `json:"friendRequests"`
	Date           time.Time   `json:"date"`
}
