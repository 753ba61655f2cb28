package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeStudent  = "student"
	TypeEmployer = "employer"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SkillRecord is the skill list kept for one user.
type SkillRecord struct {
	UserID    uuid.UUID
	Skills    []string
	UpdatedAt time.Time
}

func IsValidType(t string) bool {
	return t == TypeStudent || t == TypeEmployer
}
