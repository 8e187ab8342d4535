package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/mapmemo/mapmemo/internal/present/rest/presenter"
)

type friendNameRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) handleOwnRequests(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	requests, err := h.friendship.Requests(ctx, req)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, requests)
}

func (h *Handler) handleRequestsOf(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c)
	}

	requests, err := h.friendship.RequestsOf(ctx, c.Param("author"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, requests)
}

func (h *Handler) handleFriends(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	friends, err := h.friendship.Friends(ctx, req)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, friends)
}

func (h *Handler) handleSendRequest(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	var body friendNameRequest
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	requests, err := h.friendship.SendRequest(ctx, req, body.Name)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, requests)
}

func (h *Handler) handleCancelRequest(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	requests, err := h.friendship.CancelRequest(ctx, req, c.Param("name"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, requests)
}

func (h *Handler) handleDeclineRequest(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	requests, err := h.friendship.DeclineRequest(ctx, req, c.Param("name"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, requests)
}

func (h *Handler) handleAcceptRequest(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	var body friendNameRequest
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	profile, err := h.friendship.AcceptRequest(ctx, req, body.Name)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, profile)
}

func (h *Handler) handleUnfriend(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	profile, err := h.friendship.Unfriend(ctx, req, c.Param("name"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, profile)
}
