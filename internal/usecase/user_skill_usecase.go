package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/user"
	"skill-match/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// UploadResult holds the labels parsed from one upload and the merged list
// that is now stored for the user.
type UploadResult struct {
	Uploaded []string
	Skills   []string
}

type UserSkillUsecase interface {
	Upload(ctx context.Context, userID uuid.UUID, raw string) (UploadResult, error)
	MySkills(ctx context.Context, userID uuid.UUID) ([]string, error)
	AllSkills(ctx context.Context) ([]user.SkillRecord, error)
}

type UserSkill struct {
	repo repository.UserSkillRepository
}

func NewUserSkillUsecase(repo repository.UserSkillRepository) *UserSkill {
	return &UserSkill{repo: repo}
}

func (u *UserSkill) Upload(ctx context.Context, userID uuid.UUID, raw string) (UploadResult, error) {
	if userID == uuid.Nil {
		return UploadResult{}, ErrUnauthorized
	}
	if strings.TrimSpace(raw) == "" {
		return UploadResult{}, ErrInvalidInput
	}

	uploaded := matching.ParseSkills(raw)
	rec, err := u.repo.Merge(ctx, userID, func(existing []string) []string {
		return matching.MergeLists(existing, uploaded)
	})
	if err != nil {
		return UploadResult{}, ErrInternal
	}

	return UploadResult{Uploaded: uploaded, Skills: rec.Skills}, nil
}

func (u *UserSkill) MySkills(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	rec, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillRecordNotFound) {
			return []string{}, nil
		}
		return nil, ErrInternal
	}
	return rec.Skills, nil
}

func (u *UserSkill) AllSkills(ctx context.Context) ([]user.SkillRecord, error) {
	recs, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return recs, nil
}
