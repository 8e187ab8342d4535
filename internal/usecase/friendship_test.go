package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mapmemo/mapmemo/internal/domain"
)

// --- mocks ---

type mockUserRepo struct {
	users  map[string]domain.User // by id
	hashes map[string]string      // by email
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  map[string]domain.User{},
		hashes: map[string]string{},
	}
}

func (m *mockUserRepo) add(user domain.User) domain.User {
	m.users[user.ID] = user
	return user
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User, passwordHash string) (domain.User, error) {
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.User{}, domain.ErrDuplicateEmail
		}
		if u.Name == user.Name {
			return domain.User{}, domain.ErrDuplicateName
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("u%d", m.nextID)
	m.users[user.ID] = user
	m.hashes[user.Email] = passwordHash
	return user, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return user, nil
}

func (m *mockUserRepo) GetByName(ctx context.Context, name string) (domain.User, error) {
	for _, u := range m.users {
		if u.Name == name {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

func (m *mockUserRepo) GetCredentials(ctx context.Context, email string) (domain.User, string, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, m.hashes[email], nil
		}
	}
	return domain.User{}, "", domain.NotFoundError{Resource: "user"}
}

func (m *mockUserRepo) UpdateAvatar(ctx context.Context, id string, avatar string) error {
	user, ok := m.users[id]
	if !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	user.Avatar = avatar
	m.users[id] = user
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	delete(m.users, id)
	return nil
}

type mockProfileRepo struct {
	friends    map[string][]domain.FriendRef // by owner id
	requests   map[string][]domain.FriendRef // by owner id
	loginCount map[string]int
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{
		friends:    map[string][]domain.FriendRef{},
		requests:   map[string][]domain.FriendRef{},
		loginCount: map[string]int{},
	}
}

func contains(refs []domain.FriendRef, name string) bool {
	for _, ref := range refs {
		if ref.Name == name {
			return true
		}
	}
	return false
}

func remove(refs []domain.FriendRef, name string) []domain.FriendRef {
	out := []domain.FriendRef{}
	for _, ref := range refs {
		if ref.Name != name {
			out = append(out, ref)
		}
	}
	return out
}

func (m *mockProfileRepo) Get(ctx context.Context, userID string) (domain.Profile, error) {
	return domain.Profile{
		UserID:         userID,
		Friends:        append([]domain.FriendRef{}, m.friends[userID]...),
		FriendRequests: append([]domain.FriendRef{}, m.requests[userID]...),
	}, nil
}

func (m *mockProfileRepo) Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	return m.Get(ctx, p.UserID)
}

func (m *mockProfileRepo) IncrementLoginCount(ctx context.Context, userID string) error {
	m.loginCount[userID]++
	return nil
}

func (m *mockProfileRepo) ListFriends(ctx context.Context, userID string) ([]domain.FriendRef, error) {
	return append([]domain.FriendRef{}, m.friends[userID]...), nil
}

func (m *mockProfileRepo) ListRequests(ctx context.Context, userID string) ([]domain.FriendRef, error) {
	return append([]domain.FriendRef{}, m.requests[userID]...), nil
}

func (m *mockProfileRepo) HasFriend(ctx context.Context, userID string, name string) (bool, error) {
	return contains(m.friends[userID], name), nil
}

func (m *mockProfileRepo) HasRequest(ctx context.Context, userID string, name string) (bool, error) {
	return contains(m.requests[userID], name), nil
}

func (m *mockProfileRepo) AddRequest(ctx context.Context, userID string, ref domain.FriendRef) error {
	if !contains(m.requests[userID], ref.Name) {
		m.requests[userID] = append(m.requests[userID], ref)
	}
	return nil
}

func (m *mockProfileRepo) RemoveRequest(ctx context.Context, userID string, name string) error {
	m.requests[userID] = remove(m.requests[userID], name)
	return nil
}

func (m *mockProfileRepo) AcceptRequest(ctx context.Context, caller domain.User, requester domain.User) error {
	if !contains(m.requests[caller.ID], requester.Name) {
		return domain.ErrNoSuchRequest
	}
	m.requests[caller.ID] = remove(m.requests[caller.ID], requester.Name)
	if !contains(m.friends[caller.ID], requester.Name) {
		m.friends[caller.ID] = append(m.friends[caller.ID], domain.FriendRef{Name: requester.Name, Avatar: requester.Avatar})
	}
	if !contains(m.friends[requester.ID], caller.Name) {
		m.friends[requester.ID] = append(m.friends[requester.ID], domain.FriendRef{Name: caller.Name, Avatar: caller.Avatar})
	}
	return nil
}

func (m *mockProfileRepo) Unfriend(ctx context.Context, caller domain.User, friend domain.User) error {
	m.friends[caller.ID] = remove(m.friends[caller.ID], friend.Name)
	m.friends[friend.ID] = remove(m.friends[friend.ID], caller.Name)
	return nil
}

type mockSessionStore struct {
	sessions map[string]string
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: map[string]string{}}
}

func (m *mockSessionStore) Put(ctx context.Context, jti string, userID string, ttl time.Duration) error {
	m.sessions[jti] = userID
	return nil
}

func (m *mockSessionStore) Get(ctx context.Context, jti string) (string, error) {
	userID, ok := m.sessions[jti]
	if !ok {
		return "", domain.NotFoundError{Resource: "session"}
	}
	return userID, nil
}

func (m *mockSessionStore) Delete(ctx context.Context, jti string) error {
	delete(m.sessions, jti)
	return nil
}

// --- fixtures ---

type friendshipFixture struct {
	users    *mockUserRepo
	profiles *mockProfileRepo
	uc       *FriendshipUsecase
	alice    domain.Requester
	bob      domain.Requester
}

func newFriendshipFixture() *friendshipFixture {
	users := newMockUserRepo()
	profiles := newMockProfileRepo()

	users.add(domain.User{ID: "u1", Name: "alice", Email: "alice@example.com", Avatar: "alice.png"})
	users.add(domain.User{ID: "u2", Name: "bob", Email: "bob@example.com", Avatar: "bob.png"})

	return &friendshipFixture{
		users:    users,
		profiles: profiles,
		uc:       NewFriendshipUsecase(users, profiles),
		alice:    domain.Requester{ID: "u1", Name: "alice", Avatar: "alice.png"},
		bob:      domain.Requester{ID: "u2", Name: "bob", Avatar: "bob.png"},
	}
}

// --- tests ---

func TestSendRequest(t *testing.T) {
	f := newFriendshipFixture()
	ctx := context.Background()

	requests, err := f.uc.SendRequest(ctx, f.alice, "bob")
	if err != nil {
		t.Fatalf("send request failed: %v", err)
	}
	if len(requests) != 1 || requests[0].Name != "alice" {
		t.Fatalf("expected bob's requests to contain alice, got %v", requests)
	}
	if requests[0].Avatar != "alice.png" {
		t.Fatalf("expected sender avatar to be carried, got %q", requests[0].Avatar)
	}

	_, err = f.uc.SendRequest(ctx, f.alice, "bob")
	if !errors.Is(err, domain.ErrAlreadyRequested) {
		t.Fatalf("expected ErrAlreadyRequested got %v", err)
	}
}

func TestSendRequestToSelf(t *testing.T) {
	f := newFriendshipFixture()

	_, err := f.uc.SendRequest(context.Background(), f.alice, "alice")
	if !errors.Is(err, domain.ErrSelfRequest) {
		t.Fatalf("expected ErrSelfRequest got %v", err)
	}
}

func TestSendRequestUnknownTarget(t *testing.T) {
	f := newFriendshipFixture()

	_, err := f.uc.SendRequest(context.Background(), f.alice, "nonexistent-user")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound got %v", err)
	}
}

func TestSendRequestAlreadyFriends(t *testing.T) {
	f := newFriendshipFixture()
	ctx := context.Background()

	if _, err := f.uc.SendRequest(ctx, f.alice, "bob"); err != nil {
		t.Fatalf("send request failed: %v", err)
	}
	if _, err := f.uc.AcceptRequest(ctx, f.bob, "alice"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	_, err := f.uc.SendRequest(ctx, f.alice, "bob")
	if !errors.Is(err, domain.ErrAlreadyFriends) {
		t.Fatalf("expected ErrAlreadyFriends got %v", err)
	}
}

func TestAcceptRequest(t *testing.T) {
	f := newFriendshipFixture()
	ctx := context.Background()

	if _, err := f.uc.SendRequest(ctx, f.alice, "bob"); err != nil {
		t.Fatalf("send request failed: %v", err)
	}

	profile, err := f.uc.AcceptRequest(ctx, f.bob, "alice")
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if !contains(profile.Friends, "alice") {
		t.Fatalf("expected alice in bob's friends, got %v", profile.Friends)
	}
	if contains(profile.FriendRequests, "alice") {
		t.Fatalf("expected alice's request to be consumed, got %v", profile.FriendRequests)
	}

	// friendship must be symmetric
	aliceFriends, _ := f.uc.Friends(ctx, f.alice)
	if !contains(aliceFriends, "bob") {
		t.Fatalf("expected bob in alice's friends, got %v", aliceFriends)
	}
}

func TestAcceptRequestWithoutPending(t *testing.T) {
	f := newFriendshipFixture()

	_, err := f.uc.AcceptRequest(context.Background(), f.bob, "alice")
	if !errors.Is(err, domain.ErrNoSuchRequest) {
		t.Fatalf("expected ErrNoSuchRequest got %v", err)
	}
}

// wrappedNoSuchRequestRepo wraps the sentinel the way a storage layer
// adding context would.
type wrappedNoSuchRequestRepo struct {
	*mockProfileRepo
}

func (m *wrappedNoSuchRequestRepo) AcceptRequest(ctx context.Context, caller domain.User, requester domain.User) error {
	err := m.mockProfileRepo.AcceptRequest(ctx, caller, requester)
	if err != nil {
		return fmt.Errorf("accept request: %w", err)
	}
	return nil
}

func TestAcceptRequestWrappedSentinel(t *testing.T) {
	f := newFriendshipFixture()
	uc := NewFriendshipUsecase(f.users, &wrappedNoSuchRequestRepo{f.profiles})

	_, err := uc.AcceptRequest(context.Background(), f.bob, "alice")
	if !errors.Is(err, domain.ErrNoSuchRequest) {
		t.Fatalf("expected ErrNoSuchRequest through the wrap, got %v", err)
	}
}

func TestAcceptRequestUnknownUser(t *testing.T) {
	f := newFriendshipFixture()

	_, err := f.uc.AcceptRequest(context.Background(), f.bob, "nonexistent-user")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound got %v", err)
	}
}

func TestCancelRequestRoundTrip(t *testing.T) {
	f := newFriendshipFixture()
	ctx := context.Background()

	before, _ := f.uc.RequestsOf(ctx, "bob")

	if _, err := f.uc.SendRequest(ctx, f.alice, "bob"); err != nil {
		t.Fatalf("send request failed: %v", err)
	}

	after, err := f.uc.CancelRequest(ctx, f.alice, "bob")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("expected cancel to restore pre-request state, got %v", after)
	}

	// idempotent: cancelling again yields the same list
	again, err := f.uc.CancelRequest(ctx, f.alice, "bob")
	if err != nil {
		t.Fatalf("second cancel failed: %v", err)
	}
	if len(again) != len(after) {
		t.Fatalf("expected idempotent cancel, got %v", again)
	}
}

func TestDeclineRequestIdempotent(t *testing.T) {
	f := newFriendshipFixture()
	ctx := context.Background()

	if _, err := f.uc.SendRequest(ctx, f.alice, "bob"); err != nil {
		t.Fatalf("send request failed: %v", err)
	}

	requests, err := f.uc.DeclineRequest(ctx, f.bob, "alice")
	if err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if contains(requests, "alice") {
		t.Fatalf("expected alice removed from bob's requests, got %v", requests)
	}

	again, err := f.uc.DeclineRequest(ctx, f.bob, "alice")
	if err != nil {
		t.Fatalf("second decline failed: %v", err)
	}
	if len(again) != len(requests) {
		t.Fatalf("expected idempotent decline, got %v", again)
	}

	// declined is not friends
	bobFriends, _ := f.uc.Friends(ctx, f.bob)
	if contains(bobFriends, "alice") {
		t.Fatalf("decline must not create a friendship")
	}
}

func TestUnfriend(t *testing.T) {
	f := newFriendshipFixture()
	ctx := context.Background()

	if _, err := f.uc.SendRequest(ctx, f.alice, "bob"); err != nil {
		t.Fatalf("send request failed: %v", err)
	}
	if _, err := f.uc.AcceptRequest(ctx, f.bob, "alice"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	profile, err := f.uc.Unfriend(ctx, f.alice, "bob")
	if err != nil {
		t.Fatalf("unfriend failed: %v", err)
	}
	if contains(profile.Friends, "bob") {
		t.Fatalf("expected bob removed from alice's friends, got %v", profile.Friends)
	}

	// both sides must be cleared
	bobFriends, _ := f.uc.Friends(ctx, f.bob)
	if contains(bobFriends, "alice") {
		t.Fatalf("expected alice removed from bob's friends, got %v", bobFriends)
	}

	// idempotent
	if _, err := f.uc.Unfriend(ctx, f.alice, "bob"); err != nil {
		t.Fatalf("second unfriend failed: %v", err)
	}
}

func TestMutualPendingRequests(t *testing.T) {
	f := newFriendshipFixture()
	ctx := context.Background()

	// both directions pending at once is representable
	if _, err := f.uc.SendRequest(ctx, f.alice, "bob"); err != nil {
		t.Fatalf("send request failed: %v", err)
	}
	if _, err := f.uc.SendRequest(ctx, f.bob, "alice"); err != nil {
		t.Fatalf("mutual send request failed: %v", err)
	}

	// whichever side accepts first wins; the result is a single symmetric friendship
	if _, err := f.uc.AcceptRequest(ctx, f.bob, "alice"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	aliceFriends, _ := f.uc.Friends(ctx, f.alice)
	bobFriends, _ := f.uc.Friends(ctx, f.bob)
	if !contains(aliceFriends, "bob") || !contains(bobFriends, "alice") {
		t.Fatalf("expected symmetric friendship, got %v / %v", aliceFriends, bobFriends)
	}
}
