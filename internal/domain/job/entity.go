package job

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("job not found")

const (
	TypeRemote = "Remote"
	TypeOnSite = "On-site"
	TypeHybrid = "Hybrid"
)

// Posting is one entry of the job catalog. Title is the catalog key.
type Posting struct {
	Title            string    `json:"title"`
	CourseID         string    `json:"courseId"`
	RequiredSkills   []string  `json:"requiredSkills"`
	Company          string    `json:"company,omitempty"`
	Description      string    `json:"description,omitempty"`
	Type             string    `json:"jobType,omitempty"`
	ConfidenceNeeded int       `json:"confidenceNeeded"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func IsValidType(t string) bool {
	switch t {
	case "", TypeRemote, TypeOnSite, TypeHybrid:
		return true
	default:
		return false
	}
}
