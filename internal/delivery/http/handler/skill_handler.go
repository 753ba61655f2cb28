package handler

import (
	"errors"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/domain/user"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.UserSkillUsecase
}

func NewSkillHandler(uc usecase.UserSkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

// RegisterRoutes expects r to be behind the auth middleware.
func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/upload", h.Upload)
	r.Get("/my", h.MySkills)
	r.Get("/all", middleware.RequireType(user.TypeEmployer), h.AllSkills)
}

func (h *SkillHandler) Upload(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.UploadSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	if req.Skills == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Skills string is required", nil, nil)
	}

	res, err := h.uc.Upload(c.Context(), userID, *req.Skills)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Skills string is required", nil, err)
		}
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Skills uploaded successfully", dto.UploadSkillsResponse{
		Uploaded: res.Uploaded,
		Skills:   res.Skills,
	})
}

func (h *SkillHandler) MySkills(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	skills, err := h.uc.MySkills(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	if skills == nil {
		skills = []string{}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MySkillsResponse{Skills: skills})
}

func (h *SkillHandler) AllSkills(c fiber.Ctx) error {
	recs, err := h.uc.AllSkills(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillRecordResponses(recs))
}
