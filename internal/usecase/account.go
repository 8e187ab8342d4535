package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mapmemo/mapmemo/internal/domain"
)

// RegisterInput is the validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Avatar   string
}

type AccountUsecase struct {
	users    UserRepository
	profiles ProfileRepository
	sessions SessionStore
	hasher   PasswordHasher
	tokens   TokenIssuer
}

func NewAccountUsecase(
	users UserRepository,
	profiles ProfileRepository,
	sessions SessionStore,
	hasher PasswordHasher,
	tokens TokenIssuer,
) *AccountUsecase {
	return &AccountUsecase{
		users:    users,
		profiles: profiles,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates the identity and its empty profile.
func (uc *AccountUsecase) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, errors.Wrap(err, "AccountUsecase.Register: hashing failed")
	}

	user := domain.User{
		Name:   input.Name,
		Email:  input.Email,
		Avatar: input.Avatar,
	}

	return uc.users.Create(ctx, user, hash)
}

// Login verifies the credentials and returns a bearer token. The token's
// session is recorded so logout can revoke it before expiry.
func (uc *AccountUsecase) Login(ctx context.Context, email string, password string) (string, error) {
	user, hash, err := uc.users.GetCredentials(ctx, email)
	if err != nil {
		return "", err
	}

	if err := uc.hasher.Compare(hash, password); err != nil {
		return "", domain.ErrBadCredentials
	}

	token, jti, err := uc.tokens.Issue(user)
	if err != nil {
		return "", errors.Wrap(err, "AccountUsecase.Login: token issue failed")
	}

	if err := uc.sessions.Put(ctx, jti, user.ID, uc.tokens.TTL()); err != nil {
		return "", errors.Wrap(err, "AccountUsecase.Login: session store failed")
	}

	// login bookkeeping only; a failure here does not fail the login
	uc.profiles.IncrementLoginCount(ctx, user.ID)

	return token, nil
}

// Logout revokes the caller's session.
func (uc *AccountUsecase) Logout(ctx context.Context, caller domain.Requester) error {
	return uc.sessions.Delete(ctx, caller.JTI)
}

// Current returns the identity of the caller.
func (uc *AccountUsecase) Current(ctx context.Context, caller domain.Requester) (domain.User, error) {
	return uc.users.GetByID(ctx, caller.ID)
}

// GetByName looks up a user by name.
func (uc *AccountUsecase) GetByName(ctx context.Context, name string) (domain.User, error) {
	return uc.users.GetByName(ctx, name)
}

// Delete removes the caller's account, profile and sessions.
func (uc *AccountUsecase) Delete(ctx context.Context, caller domain.Requester) error {
	if err := uc.users.Delete(ctx, caller.ID); err != nil {
		return err
	}
	return uc.sessions.Delete(ctx, caller.JTI)
}
