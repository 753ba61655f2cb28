package auth

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skill-match/internal/domain/user"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 8
	// bcrypt rejects longer input
	maxPasswordLen = 72
)

type RegisterInput struct {
	Username string
	Password string
	Type     string
}

type LoginInput struct {
	Username string
	Password string
}

type Service struct {
	users user.Repository
	cost  int
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	username := normalizeUsername(in.Username)
	if !isValidUsername(username) {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}
	userType := strings.ToLower(strings.TrimSpace(in.Type))
	if !user.IsValidType(userType) {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Type:         userType,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return user.User{}, ErrUsernameTaken
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return Sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	username := normalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return Sanitize(u), nil
}

func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func isValidUsername(username string) bool {
	n := utf8.RuneCountInString(username)
	return n >= minUsernameLen && n <= maxUsernameLen
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= minPasswordLen && len(pw) <= maxPasswordLen
}

// Sanitize strips credential material before a user leaves the usecase layer.
func Sanitize(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
