package usecase

import (
	"context"
	"time"

	"github.com/mapmemo/mapmemo/internal/domain"
)

// UserRepository defines persistence/lookup for identities.
type UserRepository interface {
	Create(ctx context.Context, user domain.User, passwordHash string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByName(ctx context.Context, name string) (domain.User, error)
	GetCredentials(ctx context.Context, email string) (domain.User, string, error)
	UpdateAvatar(ctx context.Context, id string, avatar string) error
	Delete(ctx context.Context, id string) error
}

// ProfileRepository defines persistence for profiles and their friend sets.
// Add/remove operations are conditional at the storage layer (add-if-absent,
// remove-if-present); AcceptRequest and Unfriend write both sides atomically.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (domain.Profile, error)
	Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error)
	IncrementLoginCount(ctx context.Context, userID string) error
	ListFriends(ctx context.Context, userID string) ([]domain.FriendRef, error)
	ListRequests(ctx context.Context, userID string) ([]domain.FriendRef, error)
	HasFriend(ctx context.Context, userID string, name string) (bool, error)
	HasRequest(ctx context.Context, userID string, name string) (bool, error)
	AddRequest(ctx context.Context, userID string, ref domain.FriendRef) error
	RemoveRequest(ctx context.Context, userID string, name string) error
	AcceptRequest(ctx context.Context, caller domain.User, requester domain.User) error
	Unfriend(ctx context.Context, caller domain.User, friend domain.User) error
}

// PinRepository defines storage operations for pins and comments.
type PinRepository interface {
	Create(ctx context.Context, pin domain.Pin) (domain.Pin, error)
	GetByID(ctx context.Context, id string) (domain.Pin, error)
	ListAll(ctx context.Context) ([]domain.Pin, error)
	ListByAuthor(ctx context.Context, author string) ([]domain.Pin, error)
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	DeleteComment(ctx context.Context, pinID string, commentID string) error
}

// SessionStore tracks live token sessions.
type SessionStore interface {
	Put(ctx context.Context, jti string, userID string, ttl time.Duration) error
	Get(ctx context.Context, jti string) (string, error)
	Delete(ctx context.Context, jti string) error
}

// PasswordHasher abstracts password hashing.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(user domain.User) (token string, jti string, err error)
	TTL() time.Duration
}
