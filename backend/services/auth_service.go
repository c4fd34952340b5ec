package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"examhub/backend/config"
	"examhub/backend/models"
	"examhub/backend/repository"
	"examhub/backend/utils"
)

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=admin teacher student guest"`

	// Student fields
	ClassID     *string    `json:"classId"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	ParentEmail string     `json:"parentEmail"`

	// Teacher fields
	Department string `json:"department"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService struct {
	users    repository.UserRepository
	students repository.StudentRepository
	teachers repository.TeacherRepository
	classes  repository.ClassRepository
	cfg      *config.Config
}

func NewAuthService(
	users repository.UserRepository,
	students repository.StudentRepository,
	teachers repository.TeacherRepository,
	classes repository.ClassRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		users:    users,
		students: students,
		teachers: teachers,
		classes:  classes,
		cfg:      cfg,
	}
}

// Register creates a user and the role record that goes with it. A student
// joining a class bumps that class's student count.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	existing, err := s.users.FindByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     input.Email,
		Password:  string(hash),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	switch input.Role {
	case models.RoleStudent:
		student := &models.Student{
			UserID:      user.ID,
			ClassID:     input.ClassID,
			DateOfBirth: input.DateOfBirth,
			ParentEmail: input.ParentEmail,
		}
		if err := s.students.Create(student); err != nil {
			return nil, err
		}
		if input.ClassID != nil {
			if err := s.classes.AdjustStudentCount(*input.ClassID, 1); err != nil {
				return nil, err
			}
		}
	case models.RoleTeacher:
		teacher := &models.Teacher{
			UserID:     user.ID,
			Department: input.Department,
		}
		if err := s.teachers.Create(teacher); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// Login checks credentials and issues a token pair.
func (s *AuthService) Login(email, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, models.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh trades a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	userID, err := utils.ParseToken(refreshToken, s.cfg.JWTRefreshSecret)
	if err != nil {
		return nil, models.ErrInvalidToken
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	return s.issueTokens(user)
}

func (s *AuthService) CurrentUser(userID string) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	access, refresh, err := utils.GenerateTokenPair(user.ID, user.Role, s.cfg)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
