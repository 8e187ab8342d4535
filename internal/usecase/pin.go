package usecase

import (
	"context"

	"github.com/mapmemo/mapmemo/internal/domain"
)

// PinInput is the validated input for creating a pin.
type PinInput struct {
	Title     string
	Content   string
	Image     string
	Latitude  float64
	Longitude float64
}

// CommentInput is the validated input for commenting on a pin.
type CommentInput struct {
	PinID string
	Text  string
}

type PinUsecase struct {
	pins PinRepository
}

func NewPinUsecase(pins PinRepository) *PinUsecase {
	return &PinUsecase{pins: pins}
}

func (uc *PinUsecase) Create(ctx context.Context, caller domain.Requester, input PinInput) (domain.Pin, error) {
	return uc.pins.Create(ctx, domain.Pin{
		Author:    caller.Name,
		Title:     input.Title,
		Content:   input.Content,
		Image:     input.Image,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	})
}

func (uc *PinUsecase) GetByID(ctx context.Context, id string) (domain.Pin, error) {
	return uc.pins.GetByID(ctx, id)
}

func (uc *PinUsecase) ListAll(ctx context.Context) ([]domain.Pin, error) {
	return uc.pins.ListAll(ctx)
}

func (uc *PinUsecase) ListByAuthor(ctx context.Context, author string) ([]domain.Pin, error) {
	return uc.pins.ListByAuthor(ctx, author)
}

// Delete removes a pin. Only the author may delete it.
func (uc *PinUsecase) Delete(ctx context.Context, caller domain.Requester, id string) error {
	pin, err := uc.pins.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pin.Author != caller.Name {
		return domain.ErrForbidden
	}
	return uc.pins.Delete(ctx, id)
}

// DeleteComment removes a comment from a pin. Only the pin's author may
// remove comments, matching pin moderation rights.
func (uc *PinUsecase) DeleteComment(ctx context.Context, caller domain.Requester, pinID string, commentID string) error {
	pin, err := uc.pins.GetByID(ctx, pinID)
	if err != nil {
		return err
	}
	if pin.Author != caller.Name {
		return domain.ErrForbidden
	}
	return uc.pins.DeleteComment(ctx, pinID, commentID)
}

// AddComment attaches a comment authored by the caller and returns it.
func (uc *PinUsecase) AddComment(ctx context.Context, caller domain.Requester, input CommentInput) (domain.Comment, error) {
	return uc.pins.AddComment(ctx, domain.Comment{
		PinID:    input.PinID,
		AuthorID: caller.ID,
		Name:     caller.Name,
		Avatar:   caller.Avatar,
		Text:     input.Text,
	})
}
