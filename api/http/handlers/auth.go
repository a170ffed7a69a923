package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dshop/shop/api/http/presenter"
	"github.com/dshop/shop/pkg/auth"
	"github.com/dshop/shop/pkg/metrics"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type authResponse struct {
	Token string          `json:"token"`
	User  auth.PublicUser `json:"user"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} handlers.authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if msg := validateEmail(req.Email); msg != "" {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	if len(req.Password) < 6 {
		return presenter.Error(c, http.StatusBadRequest, "password must be at least 6 characters")
	}

	result, err := h.useCase.Register(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			metrics.Registrations.WithLabelValues("conflict").Inc()
			return presenter.Error(c, http.StatusConflict, "email already registered")
		}
		metrics.Registrations.WithLabelValues("error").Inc()
		return presenter.Error(c, http.StatusInternalServerError, "failed to register user")
	}

	metrics.Registrations.WithLabelValues("ok").Inc()
	return presenter.Created(c, authResponse{Token: result.Token, User: result.User})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} handlers.authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.Logins.WithLabelValues("unauthorized").Inc()
			return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		metrics.Logins.WithLabelValues("error").Inc()
		return presenter.Error(c, http.StatusInternalServerError, "failed to login")
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	return presenter.JSON(c, http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// validateEmail applies the same minimal shape check the original DTO
// did; real deliverability is not this service's business.
func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "email is required"
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return "email is invalid"
	}
	return ""
}
