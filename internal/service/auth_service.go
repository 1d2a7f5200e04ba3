package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/mindfulpath/backend/internal/dto"
	"github.com/mindfulpath/backend/internal/model"
	"github.com/mindfulpath/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(username, password string) (*dto.UserResponse, error)
	GetUser(id uint) (*dto.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.UserResponse, error) {
	_, err := s.userRepo.FindByUsername(req.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Str("username", req.Username).Msg("Register: username lookup failed")
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := model.User{
		Username:  req.Username,
		Password:  string(hashedPassword),
		Name:      req.Name,
		StudentID: req.StudentID,
		Mobile:    req.Mobile,
		Role:      "user",
	}
	if err := s.userRepo.Create(&user); err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// unique index decides the race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Register: failed to create user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return userToResponse(&user)
}

func (s *authService) Login(username, password string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		// Absence is indistinguishable from a bad password to the caller.
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return userToResponse(user)
}

func (s *authService) GetUser(id uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		log.Warn().Err(err).Uint("userID", id).Msg("GetUser: user not found")
		return nil, fmt.Errorf("user not found with ID %d: %w", id, err)
	}
	return userToResponse(user)
}

func userToResponse(user *model.User) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := copier.Copy(&resp, user); err != nil {
		return nil, fmt.Errorf("error preparing user response: %w", err)
	}
	return &resp, nil
}
