package dto

import (
	"time"

	"skill-match/internal/domain/job"
)

type JobResponse struct {
	Title            string    `json:"title"`
	CourseID         string    `json:"courseId"`
	RequiredSkills   []string  `json:"requiredSkills"`
	Company          string    `json:"company"`
	Description      string    `json:"description"`
	JobType          string    `json:"jobType"`
	ConfidenceNeeded int       `json:"confidenceNeeded"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func NewJobResponse(p job.Posting) JobResponse {
	return JobResponse{
		Title:            p.Title,
		CourseID:         p.CourseID,
		RequiredSkills:   nonNil(p.RequiredSkills),
		Company:          p.Company,
		Description:      p.Description,
		JobType:          p.Type,
		ConfidenceNeeded: p.ConfidenceNeeded,
		UpdatedAt:        p.UpdatedAt,
	}
}

func NewJobResponses(ps []job.Posting) []JobResponse {
	out := make([]JobResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewJobResponse(p))
	}
	return out
}

type UpsertJobRequest struct {
	Title            string   `json:"title"`
	CourseID         string   `json:"courseId"`
	RequiredSkills   []string `json:"requiredSkills"`
	Company          string   `json:"company"`
	Description      string   `json:"description"`
	JobType          string   `json:"jobType"`
	ConfidenceNeeded int      `json:"confidenceNeeded"`
}

type UpsertJobResponse struct {
	Job     JobResponse `json:"job"`
	Created bool        `json:"created"`
}
