package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mapmemo/mapmemo/internal/domain"
	"github.com/mapmemo/mapmemo/internal/infra/database/models"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get assembles the profile row plus the friends and friendRequests sets.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (domain.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&profile).Error
	if err != nil {
		return domain.Profile{}, domain.NotFoundError{Resource: "profile"}
	}

	friends, err := r.ListFriends(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	requests, err := r.ListRequests(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	return domain.Profile{
		UserID:         profile.UserID,
		Location:       profile.Location,
		Image:          profile.Image,
		School:         profile.School,
		Profession:     profile.Profession,
		Bio:            profile.Bio,
		Facebook:       profile.Facebook,
		Instagram:      profile.Instagram,
		LoginCount:     profile.LoginCount,
		Friends:        friends,
		FriendRequests: requests,
		Date:           profile.CDate,
	}, nil
}

// Upsert creates or updates the bio fields of a profile. The relationship
// sets are not touched here; they belong to the friendship operations.
func (r *ProfileRepository) Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	model := models.Profile{
		UserID:     p.UserID,
		Location:   p.Location,
		Image:      p.Image,
		School:     p.School,
		Profession: p.Profession,
		Bio:        p.Bio,
		Facebook:   p.Facebook,
		Instagram:  p.Instagram,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"location", "image", "school", "profession", "bio", "facebook", "instagram"}),
	}).Create(&model).Error
	if err != nil {
		return domain.Profile{}, err
	}

	return r.Get(ctx, p.UserID)
}

func (r *ProfileRepository) IncrementLoginCount(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("login_count", gorm.Expr("login_count + 1")).Error
}

func (r *ProfileRepository) ListFriends(ctx context.Context, userID string) ([]domain.FriendRef, error) {
	var links []models.FriendLink
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("c_date asc").
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	refs := []domain.FriendRef{}
	for _, link := range links {
		refs = append(refs, domain.FriendRef{Name: link.Name, Avatar: link.Avatar})
	}
	return refs, nil
}

func (r *ProfileRepository) ListRequests(ctx context.Context, userID string) ([]domain.FriendRef, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("c_date asc").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	refs := []domain.FriendRef{}
	for _, req := range requests {
		refs = append(refs, domain.FriendRef{Name: req.Name, Avatar: req.Avatar})
	}
	return refs, nil
}

func (r *ProfileRepository) HasFriend(ctx context.Context, userID string, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FriendLink{}).
		Where("owner_id = ? AND name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *ProfileRepository) HasRequest(ctx context.Context, userID string, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FriendRequest{}).
		Where("owner_id = ? AND name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}

// AddRequest is add-if-absent on the owner's incoming requests set.
func (r *ProfileRepository) AddRequest(ctx context.Context, userID string, ref domain.FriendRef) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoNothing: true,
	}).Create(&models.FriendRequest{
		OwnerID: userID,
		Name:    ref.Name,
		Avatar:  ref.Avatar,
	}).Error
}

// RemoveRequest is remove-if-present; removing a missing row is not an error.
func (r *ProfileRepository) RemoveRequest(ctx context.Context, userID string, name string) error {
	return r.db.WithContext(ctx).
		Delete(&models.FriendRequest{}, "owner_id = ? AND name = ?", userID, name).Error
}

// AcceptRequest consumes the pending request and writes both sides of the
// friendship in a single transaction, so no asymmetric state can survive
// a crash. Returns ErrNoSuchRequest when no pending row exists.
func (r *ProfileRepository) AcceptRequest(ctx context.Context, caller domain.User, requester domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		res := tx.Delete(&models.FriendRequest{}, "owner_id = ? AND name = ?", caller.ID, requester.Name)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNoSuchRequest
		}

		err := tx.Clauses(clause.OnConflict{
			DoNothing: true,
		}).Create(&models.FriendLink{
			OwnerID: caller.ID,
			Name:    requester.Name,
			Avatar:  requester.Avatar,
		}).Error
		if err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			DoNothing: true,
		}).Create(&models.FriendLink{
			OwnerID: requester.ID,
			Name:    caller.Name,
			Avatar:  caller.Avatar,
		}).Error
	})
}

// Unfriend removes both directions in one transaction. Idempotent.
func (r *ProfileRepository) Unfriend(ctx context.Context, caller domain.User, friend domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.FriendLink{}, "owner_id = ? AND name = ?", caller.ID, friend.Name).Error; err != nil {
			return err
		}
		return tx.Delete(&models.FriendLink{}, "owner_id = ? AND name = ?", friend.ID, caller.Name).Error
	})
}
