package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/localassist/leads-api/api/http/presenter"
	"github.com/localassist/leads-api/pkg/auth"
	"github.com/localassist/leads-api/pkg/security/jwt"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name"`
}

// Register handles user and business registration.
// @Summary Register a user and business
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.BusinessName) == "" {
		return presenter.Error(c, http.StatusBadRequest, "email, password and business_name are required")
	}

	user, err := h.useCase.Register(c.Context(), req.Email, req.Password, req.BusinessName)
	if err != nil {
		switch err {
		case auth.ErrUserAlreadyExists:
			return presenter.Error(c, http.StatusConflict, "email already registered")
		case auth.ErrInvalidCredentials:
			return presenter.Error(c, http.StatusBadRequest, "email and password are required")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to register user")
		}
	}

	return presenter.JSON(c, http.StatusCreated, userJSON(user))
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login exchanges credentials for a bearer token. The form field is
// named username but carries the account email.
// @Summary Login
// @Tags    auth
// @Accept  x-www-form-urlencoded
// @Produce json
// @Param   username formData string true "account email"
// @Param   password formData string true "password"
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "username and password are required")
	}

	token, err := h.useCase.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			return presenter.Error(c, http.StatusUnauthorized, "incorrect email or password")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to login")
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated user resolved from the bearer token.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	email, _ := c.Locals(jwt.LocalEmail).(string)
	if email == "" {
		return presenter.Error(c, http.StatusUnauthorized, "could not validate credentials")
	}

	user, err := h.useCase.CurrentUser(c.Context(), email)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "could not validate credentials")
	}
	return presenter.JSON(c, http.StatusOK, userJSON(user))
}

// userJSON is the public view of a user; the password hash never leaves
// the service.
func userJSON(u auth.User) fiber.Map {
	return fiber.Map{
		"id":            u.ID,
		"email":         u.Email,
		"business_name": u.BusinessName,
		"business_id":   u.BusinessID,
		"is_active":     u.IsActive,
	}
}
