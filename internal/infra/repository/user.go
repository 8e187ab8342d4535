package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mapmemo/mapmemo/internal/domain"
	"github.com/mapmemo/mapmemo/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and its empty profile in one transaction.
// Email and name uniqueness are checked first so the caller gets a
// distinct error per field.
func (r *UserRepository) Create(ctx context.Context, user domain.User, passwordHash string) (domain.User, error) {

	var existing models.User
	err := r.db.WithContext(ctx).Where("email = ?", user.Email).Take(&existing).Error
	if err == nil {
		return domain.User{}, domain.ErrDuplicateEmail
	}
	if err != gorm.ErrRecordNotFound {
		return domain.User{}, err
	}

	err = r.db.WithContext(ctx).Where("name = ?", user.Name).Take(&existing).Error
	if err == nil {
		return domain.User{}, domain.ErrDuplicateName
	}
	if err != gorm.ErrRecordNotFound {
		return domain.User{}, err
	}

	model := models.User{
		ID:       uuid.New().String(),
		Name:     user.Name,
		Email:    user.Email,
		Password: passwordHash,
		Avatar:   user.Avatar,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		profile := models.Profile{
			UserID: model.ID,
			Image:  model.Avatar,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return domain.User{}, domain.ErrDuplicateName
		}
		return domain.User{}, err
	}

	return toDomainUser(model), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error
	if err != nil {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return toDomainUser(user), nil
}

func (r *UserRepository) GetByName(ctx context.Context, name string) (domain.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("name = ?", name).Take(&user).Error
	if err != nil {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return toDomainUser(user), nil
}

// GetCredentials returns the identity together with the stored password
// hash, for login verification only.
func (r *UserRepository) GetCredentials(ctx context.Context, email string) (domain.User, string, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	if err != nil {
		return domain.User{}, "", domain.NotFoundError{Resource: "user"}
	}
	return toDomainUser(user), user.Password, nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id string, avatar string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("avatar", avatar).Error
}

// Delete removes the user and everything hanging off it. The profile,
// comments and friend rows owned by the user cascade; mirrored rows in
// other users' lists reference the name, so those are swept explicitly.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error
	if err != nil {
		return domain.NotFoundError{Resource: "user"}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.FriendLink{}, "name = ?", user.Name).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.FriendRequest{}, "name = ?", user.Name).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}

func toDomainUser(m models.User) domain.User {
	return domain.User{
		ID:     m.ID,
		Name:   m.Name,
		Email:  m.Email,
		Avatar: m.Avatar,
	}
}
