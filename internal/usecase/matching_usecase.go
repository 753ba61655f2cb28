package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
	"skill-match/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidThreshold = errors.New("threshold must be an integer between 0 and 100")

// CatalogReader yields the job catalog in catalog order.
type CatalogReader interface {
	List(ctx context.Context) ([]job.Posting, error)
}

type DemoMatchInput struct {
	Skills  []matching.RatedSkill
	JobType string
}

type MatchingUsecase interface {
	FindMatches(ctx context.Context, userID uuid.UUID, threshold int) ([]matching.Result, error)
	DemoMatch(ctx context.Context, in DemoMatchInput) ([]job.Posting, error)
}

type Matching struct {
	userSkills repository.UserSkillRepository
	catalog    CatalogReader
}

func NewMatchingUsecase(userSkills repository.UserSkillRepository, catalog CatalogReader) *Matching {
	return &Matching{userSkills: userSkills, catalog: catalog}
}

// ParseThreshold reads a threshold query value. An empty value yields def.
func ParseThreshold(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || !validThreshold(v) {
		return 0, ErrInvalidThreshold
	}
	return v, nil
}

func validThreshold(v int) bool {
	return v >= 0 && v <= 100
}

func (u *Matching) FindMatches(ctx context.Context, userID uuid.UUID, threshold int) ([]matching.Result, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if !validThreshold(threshold) {
		return nil, ErrInvalidThreshold
	}

	var skills []string
	rec, err := u.userSkills.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		skills = rec.Skills
	case errors.Is(err, repository.ErrSkillRecordNotFound):
		return []matching.Result{}, nil
	default:
		return nil, ErrInternal
	}
	if len(skills) == 0 {
		return []matching.Result{}, nil
	}

	jobs, err := u.catalog.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	return matching.Match(skills, jobs, threshold), nil
}

func (u *Matching) DemoMatch(ctx context.Context, in DemoMatchInput) ([]job.Posting, error) {
	jobType := strings.TrimSpace(in.JobType)
	if jobType != "" && !strings.EqualFold(jobType, matching.JobTypeAll) && !job.IsValidType(canonicalJobType(jobType)) {
		return nil, ErrInvalidInput
	}
	for _, s := range in.Skills {
		if strings.TrimSpace(s.Name) == "" || s.Confidence < 0 || s.Confidence > 100 {
			return nil, ErrInvalidInput
		}
	}
	if len(in.Skills) == 0 {
		return []job.Posting{}, nil
	}

	jobs, err := u.catalog.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return matching.MatchConfidence(in.Skills, jobs, jobType), nil
}
