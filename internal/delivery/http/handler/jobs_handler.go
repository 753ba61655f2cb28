package handler

import (
	"net/url"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/domain/user"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc   usecase.CatalogUsecase
	auth fiber.Handler
}

// NewJobsHandler takes the auth middleware because listing is public while
// writes need an employer account.
func NewJobsHandler(uc usecase.CatalogUsecase, auth fiber.Handler) *JobsHandler {
	return &JobsHandler{uc: uc, auth: auth}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	if h.auth == nil {
		return
	}
	employer := middleware.RequireType(user.TypeEmployer)
	r.Put("/", h.auth, employer, h.Upsert)
	r.Delete("/:title", h.auth, employer, h.Delete)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	jobs, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(jobs))
}

func (h *JobsHandler) Upsert(c fiber.Ctx) error {
	var req dto.UpsertJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, created, err := h.uc.Upsert(c.Context(), usecase.UpsertJobInput{
		Title:            req.Title,
		CourseID:         req.CourseID,
		RequiredSkills:   req.RequiredSkills,
		Company:          req.Company,
		Description:      req.Description,
		Type:             req.JobType,
		ConfidenceNeeded: req.ConfidenceNeeded,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, "", dto.UpsertJobResponse{Job: dto.NewJobResponse(p), Created: created})
}

func (h *JobsHandler) Delete(c fiber.Ctx) error {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil {
		return badRequest(err)
	}
	if err := h.uc.Delete(c.Context(), title); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted", nil)
}
