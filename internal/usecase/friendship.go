package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mapmemo/mapmemo/internal/domain"
)

// FriendshipUsecase implements the friend-relationship operations over the
// profile store. Per ordered pair (A, B) the reachable states are:
// unrelated, A→B pending, B→A pending, friends. There is no direct
// unrelated→friends transition; acceptance always consumes a pending row.
type FriendshipUsecase struct {
	users    UserRepository
	profiles ProfileRepository
}

func NewFriendshipUsecase(users UserRepository, profiles ProfileRepository) *FriendshipUsecase {
	return &FriendshipUsecase{users: users, profiles: profiles}
}

// SendRequest appends the caller to targetName's incoming requests and
// returns the target's updated request list.
func (uc *FriendshipUsecase) SendRequest(ctx context.Context, caller domain.Requester, targetName string) ([]domain.FriendRef, error) {
	if targetName == caller.Name {
		return nil, domain.ErrSelfRequest
	}

	target, err := uc.users.GetByName(ctx, targetName)
	if err != nil {
		return nil, err
	}

	isFriend, err := uc.profiles.HasFriend(ctx, target.ID, caller.Name)
	if err != nil {
		return nil, errors.Wrap(err, "FriendshipUsecase.SendRequest: friend lookup failed")
	}
	if isFriend {
		return nil, domain.ErrAlreadyFriends
	}

	isRequested, err := uc.profiles.HasRequest(ctx, target.ID, caller.Name)
	if err != nil {
		return nil, errors.Wrap(err, "FriendshipUsecase.SendRequest: request lookup failed")
	}
	if isRequested {
		return nil, domain.ErrAlreadyRequested
	}

	err = uc.profiles.AddRequest(ctx, target.ID, domain.FriendRef{Name: caller.Name, Avatar: caller.Avatar})
	if err != nil {
		return nil, errors.Wrap(err, "FriendshipUsecase.SendRequest: add request failed")
	}

	return uc.profiles.ListRequests(ctx, target.ID)
}

// CancelRequest removes the caller's previously sent request from
// targetName's incoming list. Idempotent.
func (uc *FriendshipUsecase) CancelRequest(ctx context.Context, caller domain.Requester, targetName string) ([]domain.FriendRef, error) {
	target, err := uc.users.GetByName(ctx, targetName)
	if err != nil {
		return nil, err
	}

	err = uc.profiles.RemoveRequest(ctx, target.ID, caller.Name)
	if err != nil {
		return nil, errors.Wrap(err, "FriendshipUsecase.CancelRequest: remove request failed")
	}

	return uc.profiles.ListRequests(ctx, target.ID)
}

// DeclineRequest removes requesterName from the caller's own incoming
// list. Idempotent.
func (uc *FriendshipUsecase) DeclineRequest(ctx context.Context, caller domain.Requester, requesterName string) ([]domain.FriendRef, error) {
	err := uc.profiles.RemoveRequest(ctx, caller.ID, requesterName)
	if err != nil {
		return nil, errors.Wrap(err, "FriendshipUsecase.DeclineRequest: remove request failed")
	}

	return uc.profiles.ListRequests(ctx, caller.ID)
}

// AcceptRequest turns a pending request from requesterName into a mutual
// friendship and returns the caller's updated profile. Accepting a name
// with no pending request fails with ErrNoSuchRequest.
func (uc *FriendshipUsecase) AcceptRequest(ctx context.Context, caller domain.Requester, requesterName string) (domain.Profile, error) {
	requester, err := uc.users.GetByName(ctx, requesterName)
	if err != nil {
		return domain.Profile{}, err
	}

	callerUser, err := uc.users.GetByID(ctx, caller.ID)
	if err != nil {
		return domain.Profile{}, err
	}

	err = uc.profiles.AcceptRequest(ctx, callerUser, requester)
	if err != nil {
		if errors.Is(err, domain.ErrNoSuchRequest) {
			return domain.Profile{}, err
		}
		return domain.Profile{}, errors.Wrap(err, "FriendshipUsecase.AcceptRequest: accept failed")
	}

	return uc.profiles.Get(ctx, caller.ID)
}

// Unfriend removes the friendship in both directions and returns the
// caller's updated profile. Idempotent.
func (uc *FriendshipUsecase) Unfriend(ctx context.Context, caller domain.Requester, friendName string) (domain.Profile, error) {
	friend, err := uc.users.GetByName(ctx, friendName)
	if err != nil {
		return domain.Profile{}, err
	}

	callerUser, err := uc.users.GetByID(ctx, caller.ID)
	if err != nil {
		return domain.Profile{}, err
	}

	err = uc.profiles.Unfriend(ctx, callerUser, friend)
	if err != nil {
		return domain.Profile{}, errors.Wrap(err, "FriendshipUsecase.Unfriend: unfriend failed")
	}

	return uc.profiles.Get(ctx, caller.ID)
}

// Requests lists the caller's incoming friend requests.
func (uc *FriendshipUsecase) Requests(ctx context.Context, caller domain.Requester) ([]domain.FriendRef, error) {
	return uc.profiles.ListRequests(ctx, caller.ID)
}

// RequestsOf lists the incoming friend requests of a user by name.
func (uc *FriendshipUsecase) RequestsOf(ctx context.Context, name string) ([]domain.FriendRef, error) {
	user, err := uc.users.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return uc.profiles.ListRequests(ctx, user.ID)
}

// Friends lists the caller's friends.
func (uc *FriendshipUsecase) Friends(ctx context.Context, caller domain.Requester) ([]domain.FriendRef, error) {
	return uc.profiles.ListFriends(ctx, caller.ID)
}
