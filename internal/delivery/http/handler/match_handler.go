package handler

import (
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/domain/matching"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc               usecase.MatchingUsecase
	defaultThreshold int
}

func NewMatchHandler(uc usecase.MatchingUsecase, defaultThreshold int) *MatchHandler {
	return &MatchHandler{uc: uc, defaultThreshold: defaultThreshold}
}

// FindCoursesByMatch serves GET /skills/find-courses-by-match?threshold=N.
func (h *MatchHandler) FindCoursesByMatch(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	threshold, err := usecase.ParseThreshold(c.Query("threshold"), h.defaultThreshold)
	if err != nil {
		return mapUsecaseError(err)
	}

	results, err := h.uc.FindMatches(c.Context(), userID, threshold)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchingCoursesResponse(results))
}

// DemoMatch runs the confidence matcher without an account.
func (h *MatchHandler) DemoMatch(c fiber.Ctx) error {
	var req dto.DemoMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	skills := make([]matching.RatedSkill, 0, len(req.Skills))
	for _, s := range req.Skills {
		skills = append(skills, matching.RatedSkill{Name: s.Name, Confidence: s.Confidence})
	}

	jobs, err := h.uc.DemoMatch(c.Context(), usecase.DemoMatchInput{Skills: skills, JobType: req.JobType})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.DemoMatchResponse{Jobs: dto.NewJobResponses(jobs)})
}
