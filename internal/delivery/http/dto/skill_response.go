package dto

import (
	"time"

	"skill-match/internal/domain/user"

	"github.com/google/uuid"
)

type UploadSkillsRequest struct {
	Skills *string `json:"skills"`
}

type UploadSkillsResponse struct {
	Uploaded []string `json:"uploaded"`
	Skills   []string `json:"skills"`
}

type MySkillsResponse struct {
	Skills []string `json:"skills"`
}

type SkillRecordResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Skills    []string  `json:"skills"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSkillRecordResponses(recs []user.SkillRecord) []SkillRecordResponse {
	out := make([]SkillRecordResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, SkillRecordResponse{UserID: r.UserID, Skills: r.Skills, UpdatedAt: r.UpdatedAt})
	}
	return out
}
