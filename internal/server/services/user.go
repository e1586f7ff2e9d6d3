// Package services contains server-side business logic. This file implements
// UserService, which handles sign-up, sign-in, profile lookup, and issuing
// and refreshing stateless JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/cloudshelf/internal/common"
	"github.com/dmitrijs2005/cloudshelf/internal/server/auth"
	"github.com/dmitrijs2005/cloudshelf/internal/server/config"
	"github.com/dmitrijs2005/cloudshelf/internal/server/models"
	"github.com/dmitrijs2005/cloudshelf/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a longer-lived refresh
// token, plus the refresh token's own expiry for the cookie Max-Age.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// UserService provides authentication-related operations:
//   - SignUp: create users
//   - SignIn: verify credentials and mint a token pair
//   - Refresh: mint a new access token from a valid refresh token
//   - Profile: fetch the caller's own user record
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	jwtSecret       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		jwtSecret:       []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// SignUp hashes the password and persists a new user. A taken email yields
// common.ErrAlreadyExists. The returned user carries the hash; callers must
// not serialize it.
func (s *UserService) SignUp(ctx context.Context, email, name, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Email: email, Name: name, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// SignIn verifies the credentials and mints a token pair. Unknown email and
// wrong password produce the identical ErrInvalidCredentials.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}
	return s.generateTokenPair(user.ID)
}

// Refresh validates the refresh token and issues a new access token only.
// The refresh token is not rotated; it rides until its own expiry.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := auth.GetUserIDFromToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", common.ErrInvalidRefreshToken
	}
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenTTL)
	if err != nil {
		return "", common.ErrInternal
	}
	return access, nil
}

// Profile returns the user's record, or common.ErrNotFound if it vanished.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return user, nil
}

func (s *UserService) generateTokenPair(userID string) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenTTL)
	if err != nil {
		return nil, common.ErrInternal
	}
	refresh, err := auth.GenerateToken(userID, s.jwtSecret, s.refreshTokenTTL)
	if err != nil {
		return nil, common.ErrInternal
	}
	expiry, err := auth.TokenExpiry(refresh, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, RefreshExpiresAt: expiry}, nil
}
