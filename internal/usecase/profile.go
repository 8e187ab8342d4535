package usecase

import (
	"context"

	"github.com/mapmemo/mapmemo/internal/domain"
)

// ProfileInput carries the editable bio fields of a profile.
type ProfileInput struct {
	Location   string
	Image      string
	School     string
	Profession string
	Bio        string
	Facebook   string
	Instagram  string
}

type ProfileUsecase struct {
	users    UserRepository
	profiles ProfileRepository
}

func NewProfileUsecase(users UserRepository, profiles ProfileRepository) *ProfileUsecase {
	return &ProfileUsecase{users: users, profiles: profiles}
}

// GetOwn returns the caller's profile.
func (uc *ProfileUsecase) GetOwn(ctx context.Context, caller domain.Requester) (domain.Profile, error) {
	return uc.profiles.Get(ctx, caller.ID)
}

// GetByUserID returns a profile by its owner's id.
func (uc *ProfileUsecase) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	return uc.profiles.Get(ctx, userID)
}

// GetByName returns a profile by its owner's name (friend profile lookup).
func (uc *ProfileUsecase) GetByName(ctx context.Context, name string) (domain.Profile, error) {
	user, err := uc.users.GetByName(ctx, name)
	if err != nil {
		return domain.Profile{}, err
	}
	return uc.profiles.Get(ctx, user.ID)
}

// Upsert creates or updates the caller's profile. A new image also
// becomes the user's avatar.
func (uc *ProfileUsecase) Upsert(ctx context.Context, caller domain.Requester, input ProfileInput) (domain.Profile, error) {
	if input.Image != "" {
		if err := uc.users.UpdateAvatar(ctx, caller.ID, input.Image); err != nil {
			return domain.Profile{}, err
		}
	}

	return uc.profiles.Upsert(ctx, domain.Profile{
		UserID:     caller.ID,
		Location:   input.Location,
		Image:      input.Image,
		School:     input.School,
		Profession: input.Profession,
		Bio:        input.Bio,
		Facebook:   input.Facebook,
		Instagram:  input.Instagram,
	})
}
