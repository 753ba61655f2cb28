package usecase

import (
	"context"
	"errors"

	"skill-match/internal/domain/user"
	"skill-match/internal/repository"
	ucauth "skill-match/internal/usecase/auth"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

// Profile is the signed-in user together with the skills stored for them.
type Profile struct {
	User   user.User
	Skills []string
}

type UserUsecase interface {
	Profile(ctx context.Context, userID uuid.UUID) (Profile, error)
}

type User struct {
	users  user.Repository
	skills repository.UserSkillRepository
}

func NewUserUsecase(users user.Repository, skills repository.UserSkillRepository) *User {
	return &User{users: users, skills: skills}
}

func (u *User) Profile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	if userID == uuid.Nil {
		return Profile{}, ErrUnauthorized
	}

	usr, err := u.users.GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, user.ErrNotFound):
		return Profile{}, ErrUserNotFound
	case err != nil:
		return Profile{}, ErrInternal
	}

	skills := []string{}
	if u.skills != nil {
		rec, err := u.skills.FindByUserID(ctx, userID)
		switch {
		case errors.Is(err, repository.ErrSkillRecordNotFound):
		case err != nil:
			return Profile{}, ErrInternal
		default:
			skills = append(skills, rec.Skills...)
		}
	}

	return Profile{User: ucauth.Sanitize(usr), Skills: skills}, nil
}
