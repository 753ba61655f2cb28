package dto

import (
	"time"

	"skill-match/internal/domain/user"
	"skill-match/internal/usecase"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Type: u.Type, CreatedAt: u.CreatedAt}
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	Type         string       `json:"type"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ProfileResponse is the body of GET /users/me.
type ProfileResponse struct {
	UserResponse
	Skills     []string `json:"skills"`
	SkillCount int      `json:"skill_count"`
}

func NewProfileResponse(p usecase.Profile) ProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return ProfileResponse{UserResponse: NewUserResponse(p.User), Skills: skills, SkillCount: len(skills)}
}
