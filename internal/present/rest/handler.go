package rest

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/mapmemo/mapmemo/internal/domain"
	"github.com/mapmemo/mapmemo/internal/present/rest/presenter"
	"github.com/mapmemo/mapmemo/internal/service"
	"github.com/mapmemo/mapmemo/internal/usecase"
)

type Handler struct {
	account    *usecase.AccountUsecase
	profile    *usecase.ProfileUsecase
	friendship *usecase.FriendshipUsecase
	pins       *usecase.PinUsecase
	auth       *service.AuthService
}

func NewHandler(
	account *usecase.AccountUsecase,
	profile *usecase.ProfileUsecase,
	friendship *usecase.FriendshipUsecase,
	pins *usecase.PinUsecase,
	auth *service.AuthService,
) *Handler {
	return &Handler{
		account:    account,
		profile:    profile,
		friendship: friendship,
		pins:       pins,
		auth:       auth,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/users/register", h.handleRegister)
	e.POST("/users/login", h.handleLogin)
	e.GET("/users/current", h.handleCurrentUser)
	e.DELETE("/users/logout", h.handleLogout)
	e.GET("/users/:name", h.handleGetUser)

	e.GET("/profile", h.handleGetProfile)
	e.POST("/profile", h.handleUpsertProfile)
	e.DELETE("/profile", h.handleDeleteAccount)
	e.GET("/profile/friend/:user_name", h.handleFriendProfile)
	e.GET("/profile/friends/requests", h.handleOwnRequests)
	e.GET("/profile/friends/requests/:author", h.handleRequestsOf)
	e.GET("/profile/friends/all", h.handleFriends)
	e.POST("/profile/friends/requests", h.handleSendRequest)
	e.DELETE("/profile/friends/requests/decline/:name", h.handleDeclineRequest)
	e.DELETE("/profile/friends/requests/:name", h.handleCancelRequest)
	e.POST("/profile/friends", h.handleAcceptRequest)
	e.DELETE("/profile/friends/:name", h.handleUnfriend)
	e.GET("/profile/:user_id", h.handleProfileByID)

	e.GET("/pins/all", h.handleListPins)
	e.GET("/pins/me_pins", h.handleOwnPins)
	e.GET("/pins/friend/:friend_name", h.handleFriendPins)
	e.POST("/pins", h.handleCreatePin)
	e.POST("/pins/comments", h.handleCreateComment)
	e.GET("/pins/:pin_id", h.handleGetPin)
	e.DELETE("/pins/:pin_id", h.handleDeletePin)
	e.DELETE("/pins/:pin_id/:comment_id", h.handleDeleteComment)
}

// requester pulls the identity the auth middleware resolved, if any.
func requester(c echo.Context) (domain.Requester, bool) {
	ctx := c.Request().Context()

	id, ok := ctx.Value(domain.RequesterIDCtxKey).(string)
	if !ok || id == "" {
		return domain.Requester{}, false
	}

	name, _ := ctx.Value(domain.RequesterNameCtxKey).(string)
	avatar, _ := ctx.Value(domain.RequesterAvatarCtxKey).(string)
	jti, _ := ctx.Value(domain.RequesterJTICtxKey).(string)

	return domain.Requester{ID: id, Name: name, Avatar: avatar, JTI: jti}, true
}

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

type registerRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=30"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	user, err := h.account.Register(ctx, usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   service.GravatarURL(req.Email),
	})
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	token, err := h.account.Login(ctx, req.Email, req.Password)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"success": true,
		"token":   "Bearer " + token,
	})
}

func (h *Handler) handleCurrentUser(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	user, err := h.account.Current(ctx, req)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, user)
}

func (h *Handler) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	if err := h.account.Logout(ctx, req); err != nil {
		return presenter.Error(c, err)
	}

	// drop the cached identity so the token dies immediately
	if auth := c.Request().Header.Get("authorization"); len(auth) > 7 {
		h.auth.Revoke(auth[7:])
	}

	return presenter.OK(c, echo.Map{"success": true})
}

func (h *Handler) handleGetUser(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c)
	}

	user, err := h.account.GetByName(ctx, c.Param("name"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, user)
}

func (h *Handler) handleGetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	profile, err := h.profile.GetOwn(ctx, req)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, profile)
}

func (h *Handler) handleProfileByID(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c)
	}

	profile, err := h.profile.GetByUserID(ctx, c.Param("user_id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, profile)
}

func (h *Handler) handleFriendProfile(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := requester(c); !ok {
		return presenter.Unauthorized(c)
	}

	profile, err := h.profile.GetByName(ctx, c.Param("user_name"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, profile)
}

type profileRequest struct {
	Location   string `json:"location" validate:"max=100"`
	Image      string `json:"image" validate:"omitempty,url"`
	School     string `json:"school" validate:"max=100"`
	Profession string `json:"profession" validate:"max=100"`
	Bio        string `json:"bio" validate:"max=500"`
	Facebook   string `json:"facebook" validate:"max=100"`
	Instagram  string `json:"instagram" validate:"max=100"`
}

func (h *Handler) handleUpsertProfile(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	var body profileRequest
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	profile, err := h.profile.Upsert(ctx, req, usecase.ProfileInput{
		Location:   body.Location,
		Image:      body.Image,
		School:     body.School,
		Profession: body.Profession,
		Bio:        body.Bio,
		Facebook:   body.Facebook,
		Instagram:  body.Instagram,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, profile)
}

func (h *Handler) handleDeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()

	req, ok := requester(c)
	if !ok {
		return presenter.Unauthorized(c)
	}

	if err := h.account.Delete(ctx, req); err != nil {
		return presenter.Error(c, err)
	}

	// the identity cache would otherwise honor the token until it expires
	if auth := c.Request().Header.Get("authorization"); len(auth) > 7 {
		h.auth.Revoke(auth[7:])
	}

	return presenter.OK(c, echo.Map{"success": true})
}
