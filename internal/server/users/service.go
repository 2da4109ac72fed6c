package users

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/mypage/internal/common"
	"github.com/dmitrijs2005/mypage/internal/server/auth"
	"github.com/dmitrijs2005/mypage/internal/server/config"
	"github.com/dmitrijs2005/mypage/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to new passwords only.
const MinPasswordLength = 8

var (
	ErrWrongPassword = errors.New("current password does not match")
	ErrWeakPassword  = errors.New("new password too short")
)

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	cost                        int
	// dummyHash is compared against when the email is unknown, so that
	// both failure paths cost one bcrypt comparison.
	dummyHash []byte
}

func NewService(repo Repository, cfg *config.Config, cost int) (*Service, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("mypage-dummy-password"), cost)
	if err != nil {
		return nil, err
	}
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.TokenTTL,
		cost:                        cost,
		dummyHash:                   dummy,
	}, nil
}

// Login checks the credentials and issues a token pair. Unknown email and
// wrong password both return common.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.ServerError {
		return nil, common.ErrSimulatedFailure
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	if user.Locked {
		return nil, common.ErrAccountLocked
	}

	accessToken, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTokenValidityDuration / time.Second),
		User: models.AuthUser{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Roles:      user.Roles,
			MFAEnabled: user.MFAEnabled,
		},
	}, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(current)) != nil {
		return ErrWrongPassword
	}
	if utf8.RuneCountInString(next) < MinPasswordLength {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePasswordHash(ctx, userID, hash)
}
