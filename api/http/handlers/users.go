package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dshop/shop/api/http/presenter"
	"github.com/dshop/shop/pkg/auth"
	"github.com/dshop/shop/pkg/security/jwt"
	"github.com/dshop/shop/pkg/users"
)

type UsersHandler struct {
	useCase users.UseCase
}

func NewUsersHandler(useCase users.UseCase) *UsersHandler {
	return &UsersHandler{useCase: useCase}
}

// Me resolves the authenticated caller's own account.
// @Summary Current user
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.PublicUser
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/me [get]
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	idStr, _ := c.Locals(jwt.LocalUserID).(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token subject")
	}
	return h.respondUser(c, id)
}

// Get returns any account by id. Admin only.
// @Summary Get user by id
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Param   id path string true "user id"
// @Success 200 {object} auth.PublicUser
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/{id} [get]
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid user id")
	}
	return h.respondUser(c, id)
}

func (h *UsersHandler) respondUser(c *fiber.Ctx, id uuid.UUID) error {
	user, err := h.useCase.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "user not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load user")
	}
	return presenter.JSON(c, http.StatusOK, user)
}
