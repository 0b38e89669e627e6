package application

import (
	"context"
	"errors"
	"strings"

	"github.com/linskybing/formify-go/internal/api/middleware"
	"github.com/linskybing/formify-go/internal/config"
	"github.com/linskybing/formify-go/internal/domain/user"
	"github.com/linskybing/formify-go/internal/repository"
	"github.com/linskybing/formify-go/internal/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPasswordHashFailure = errors.New("failed to hash password")
	ErrEmailTaken          = errors.New("email already registered")
	ErrReservedAdminUser   = errors.New("cannot downgrade the reserved admin user")
	ErrSessionsUnavailable = errors.New("session store not available")
)

type UserService struct {
	Repos    *repository.Repos
	Sessions session.Store
}

func NewUserService(repos *repository.Repos, sessions session.Store) *UserService {
	return &UserService{
		Repos:    repos,
		Sessions: sessions,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) RegisterUser(input user.CreateUserInput) (user.User, error) {
	email := normalizeEmail(input.Email)
	_, err := s.Repos.User.GetUserByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, err
	}
	if err == nil {
		return user.User{}, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrPasswordHashFailure
	}

	usr := user.User{
		Email:    email,
		Name:     strings.TrimSpace(input.Name),
		Password: string(hashed),
		Role:     user.RoleUser,
	}
	if email == normalizeEmail(config.ReservedAdminEmail) {
		usr.Role = user.RoleAdmin
	}
	if err := s.Repos.User.SaveUser(&usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

// LoginUser checks the password, opens a session and signs a token bound to
// it. The token lives at most TokenTTL; the session ends earlier when idle.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (user.User, string, error) {
	usr, err := s.Repos.User.GetUserByEmail(normalizeEmail(email))
	if err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}
	if s.Sessions == nil {
		return user.User{}, "", ErrSessionsUnavailable
	}

	p, err := s.Sessions.Create(ctx, session.Principal{
		UserID: usr.UID,
		Email:  usr.Email,
		Name:   usr.Name,
		Role:   string(usr.Role),
	})
	if err != nil {
		return user.User{}, "", err
	}

	token, err := middleware.GenerateToken(p, config.TokenTTL)
	if err != nil {
		_ = s.Sessions.Revoke(ctx, p.SessionID)
		return user.User{}, "", err
	}

	return usr, token, nil
}

func (s *UserService) Logout(ctx context.Context, p session.Principal) error {
	if s.Sessions == nil || p.SessionID == "" {
		return nil
	}
	return s.Sessions.Revoke(ctx, p.SessionID)
}

func (s *UserService) ListUsers() ([]user.User, error) {
	return s.Repos.User.GetAllUsers()
}

func (s *UserService) ListUserByPaging(page, limit int) ([]user.User, error) {
	return s.Repos.User.ListUsersPaging(page, limit)
}

func (s *UserService) FindUserByID(id uint) (user.User, error) {
	usr, err := s.Repos.User.GetUserByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, ErrUserNotFound
	}
	return usr, err
}

func (s *UserService) UpdateRole(id uint, role user.Role) (user.User, error) {
	usr, err := s.Repos.User.GetUserByID(id)
	if err != nil {
		return user.User{}, ErrUserNotFound
	}

	// Prevent downgrading the reserved admin user
	if usr.Email == normalizeEmail(config.ReservedAdminEmail) && role != user.RoleAdmin {
		return user.User{}, ErrReservedAdminUser
	}

	usr.Role = role
	if err := s.Repos.User.SaveUser(&usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}
