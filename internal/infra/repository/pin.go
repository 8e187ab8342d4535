package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
	"gorm.io/gorm"

	"github.com/mapmemo/mapmemo/internal/domain"
	"github.com/mapmemo/mapmemo/internal/infra/database/models"
)

const feedCacheTTL = 60 // seconds

type PinRepository struct {
	db *gorm.DB
	mc *memcache.Client
}

func NewPinRepository(db *gorm.DB, mc *memcache.Client) *PinRepository {
	return &PinRepository{db: db, mc: mc}
}

// feedKey hashes the feed selector so arbitrary author names stay within
// memcached key constraints.
func feedKey(selector string) string {
	return fmt.Sprintf("pins:%016x", xxh3.HashString(selector))
}

func (r *PinRepository) Create(ctx context.Context, pin domain.Pin) (domain.Pin, error) {
	model := models.Pin{
		ID:        uuid.New().String(),
		Author:    pin.Author,
		Title:     pin.Title,
		Content:   pin.Content,
		Image:     pin.Image,
		Latitude:  pin.Latitude,
		Longitude: pin.Longitude,
	}

	err := r.db.WithContext(ctx).Create(&model).Error
	if err != nil {
		return domain.Pin{}, err
	}

	r.invalidate(pin.Author)

	return r.GetByID(ctx, model.ID)
}

func (r *PinRepository) GetByID(ctx context.Context, id string) (domain.Pin, error) {
	var model models.Pin
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error
	if err != nil {
		return domain.Pin{}, domain.NotFoundError{Resource: "pin"}
	}

	var comments []models.Comment
	err = r.db.WithContext(ctx).
		Where("pin_id = ?", id).
		Order("c_date desc").
		Find(&comments).Error
	if err != nil {
		return domain.Pin{}, err
	}

	return toDomainPin(model, comments), nil
}

func (r *PinRepository) ListAll(ctx context.Context) ([]domain.Pin, error) {
	return r.list(ctx, "", feedKey("all"))
}

func (r *PinRepository) ListByAuthor(ctx context.Context, author string) ([]domain.Pin, error) {
	return r.list(ctx, author, feedKey("author/"+author))
}

func (r *PinRepository) list(ctx context.Context, author string, key string) ([]domain.Pin, error) {
	if r.mc != nil {
		item, err := r.mc.Get(key)
		if err == nil {
			var cached []domain.Pin
			if err := json.Unmarshal(item.Value, &cached); err == nil {
				return cached, nil
			}
		}
	}

	query := r.db.WithContext(ctx).Order("c_date desc")
	if author != "" {
		query = query.Where("author = ?", author)
	}

	var rows []models.Pin
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	pins := []domain.Pin{}
	for _, row := range rows {
		var comments []models.Comment
		err := r.db.WithContext(ctx).
			Where("pin_id = ?", row.ID).
			Order("c_date desc").
			Find(&comments).Error
		if err != nil {
			return nil, err
		}
		pins = append(pins, toDomainPin(row, comments))
	}

	if r.mc != nil {
		if encoded, err := json.Marshal(pins); err == nil {
			r.mc.Set(&memcache.Item{Key: key, Value: encoded, Expiration: feedCacheTTL})
		}
	}

	return pins, nil
}

func (r *PinRepository) Delete(ctx context.Context, id string) error {
	var model models.Pin
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error
	if err != nil {
		return domain.NotFoundError{Resource: "pin"}
	}

	err = r.db.WithContext(ctx).Delete(&models.Pin{}, "id = ?", id).Error
	if err != nil {
		return err
	}

	r.invalidate(model.Author)
	return nil
}

func (r *PinRepository) AddComment(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	var pin models.Pin
	err := r.db.WithContext(ctx).Where("id = ?", comment.PinID).Take(&pin).Error
	if err != nil {
		return domain.Comment{}, domain.NotFoundError{Resource: "pin"}
	}

	model := models.Comment{
		ID:       uuid.New().String(),
		PinID:    comment.PinID,
		AuthorID: comment.AuthorID,
		Name:     comment.Name,
		Avatar:   comment.Avatar,
		Text:     comment.Text,
	}

	err = r.db.WithContext(ctx).Create(&model).Error
	if err != nil {
		return domain.Comment{}, err
	}

	err = r.db.WithContext(ctx).Where("id = ?", model.ID).Take(&model).Error
	if err != nil {
		return domain.Comment{}, err
	}

	r.invalidate(pin.Author)

	return toDomainComment(model), nil
}

// DeleteComment removes one comment from a pin. Removing a comment that is
// already gone is a no-op.
func (r *PinRepository) DeleteComment(ctx context.Context, pinID string, commentID string) error {
	var pin models.Pin
	err := r.db.WithContext(ctx).Where("id = ?", pinID).Take(&pin).Error
	if err != nil {
		return domain.NotFoundError{Resource: "pin"}
	}

	err = r.db.WithContext(ctx).
		Delete(&models.Comment{}, "id = ? AND pin_id = ?", commentID, pinID).Error
	if err != nil {
		return err
	}

	r.invalidate(pin.Author)
	return nil
}

func (r *PinRepository) invalidate(author string) {
	if r.mc == nil {
		return
	}
	r.mc.Delete(feedKey("all"))
	r.mc.Delete(feedKey("author/" + author))
}

func toDomainPin(m models.Pin, comments []models.Comment) domain.Pin {
	pin := domain.Pin{
		ID:        m.ID,
		Author:    m.Author,
		Title:     m.Title,
		Content:   m.Content,
		Image:     m.Image,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Comments:  []domain.Comment{},
		Date:      m.CDate,
	}
	for _, comment := range comments {
		pin.Comments = append(pin.Comments, toDomainComment(comment))
	}
	return pin
}

func toDomainComment(m models.Comment) domain.Comment {
	return domain.Comment{
		ID:       m.ID,
		PinID:    m.PinID,
		AuthorID: m.AuthorID,
		Name:     m.Name,
		Avatar:   m.Avatar,
		Text:     m.Text,
		Date:     m.CDate,
	}
}
