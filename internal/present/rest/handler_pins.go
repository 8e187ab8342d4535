package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/mapmemo/mapmemo/internal/present/rest/presenter"
	"github.com/mapmemo/mapmemo/internal/usecase"
)

type pinRequest struct {
	Title     string  `json:"title" validate:"required,max=100"`
	Content   string  `json:"content" validate:"required,max=2000"`
	Image     string  `json:"image" validate:"omitempty,url"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

type commentRequest struct {
	PinID string `json:"pin_id" validate:"required,uuid"`
	Text  string `json:"text" validate:"required,max=500"`
}

func (h *Handler) handleListPins(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c)
	}

	pins, err := h.pins.ListAll(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, pins)
}

func (h *Handler) handleOwnPins(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	pins, err := h.pins.ListByAuthor(ctx, req.Name)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, pins)
}

func (h *Handler) handleFriendPins(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c)
	}

	pins, err := h.pins.ListByAuthor(ctx, c.Param("friend_name"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, pins)
}

func (h *Handler) handleGetPin(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c)
	}

	pin, err := h.pins.GetByID(ctx, c.Param("pin_id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, pin)
}

func (h *Handler) handleCreatePin(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	var body pinRequest
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	pin, err := h.pins.Create(ctx, req, usecase.PinInput{
		Title:     body.Title,
		Content:   body.Content,
		Image:     body.Image,
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, pin)
}

func (h *Handler) handleCreateComment(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	var body commentRequest
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	comment, err := h.pins.AddComment(ctx, req, usecase.CommentInput{
		PinID: body.PinID,
		Text:  body.Text,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, comment)
}

func (h *Handler) handleDeletePin(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	if err := h.pins.Delete(ctx, req, c.Param("pin_id")); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"success": true})
}

func (h *Handler) handleDeleteComment(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	err := h.pins.DeleteComment(ctx, req, c.Param("pin_id"), c.Param("comment_id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"success": true})
}
