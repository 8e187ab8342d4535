package models

import (
	"time"
)

type User struct {
	ID       string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name     string    `json:"name" gorm:"type:text;uniqueIndex"`
	Email    string    `json:"email" gorm:"type:text;uniqueIndex"`
	Password string    `json:"-" gorm:"type:text"`
	Avatar   string    `json:"avatar" gorm:"type:text"`
	CDate    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Profile struct {
	UserID     string    `json:"user" gorm:"primaryKey;type:uuid"`
	User       User      `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Location   string    `json:"location" gorm:"type:text"`
	Image      string    `json:"image" gorm:"type:text"`
	School     string    `json:"school" gorm:"type:text"`
	Profession string    `json:"profession" gorm:"type:text"`
	Bio        string    `json:"bio" gorm:"type:text"`
	Facebook   string    `json:"facebook" gorm:"type:text"`
	Instagram  string    `json:"instagram" gorm:"type:text"`
	LoginCount int       `json:"loginCount" gorm:"not null;default:0"`
	CDate      time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// FriendLink is one entry in the owner's friends list. Friendship is two
// mirrored rows; both are written in the same transaction.
type FriendLink struct {
	OwnerID string    `json:"ownerId" gorm:"type:uuid;primaryKey"`
	Owner   User      `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Name    string    `json:"name" gorm:"type:text;primaryKey"`
	Avatar  string    `json:"avatar" gorm:"type:text"`
	CDate   time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// FriendRequest is one entry in the owner's incoming requests list,
// keyed by the sender's name.
type FriendRequest struct {
	OwnerID string    `json:"ownerId" gorm:"type:uuid;primaryKey"`
	Owner   User      `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Name    string    `json:"name" gorm:"type:text;primaryKey"`
	Avatar  string    `json:"avatar" gorm:"type:text"`
	CDate   time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Pin struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Author    string    `json:"author" gorm:"type:text;index"`
	Title     string    `json:"title" gorm:"type:text"`
	Content   string    `json:"content" gorm:"type:text"`
	Image     string    `json:"image" gorm:"type:text"`
	Latitude  float64   `json:"latitude" gorm:"type:double precision"`
	Longitude float64   `json:"longitude" gorm:"type:double precision"`
	CDate     time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Comment struct {
	ID       string    `json:"id" gorm:"primaryKey;type:uuid"`
	PinID    string    `json:"pinId" gorm:"type:uuid;index"`
	Pin      Pin       `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	AuthorID string    `json:"author" gorm:"type:uuid"`
	Name     string    `json:"name" gorm:"type:text"`
	Avatar   string    `json:"avatar" gorm:"type:text"`
	Text     string    `json:"text" gorm:"type:text"`
	CDate    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
