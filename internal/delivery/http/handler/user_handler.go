package handler

import (
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// UserHandler serves the account of the signed-in user.
type UserHandler struct {
	users usecase.UserUsecase
}

func NewUserHandler(users usecase.UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/me", h.Me)
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	p, err := h.users.Profile(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}
