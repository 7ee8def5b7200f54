package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"marketplace-api/internal/models"
	"marketplace-api/internal/repository"
	"marketplace-api/internal/token"
)

type authService struct {
	users    repository.UserRepository
	tokens   *token.Manager
	hashCost int
	log      *zap.SugaredLogger
}

func NewAuthService(users repository.UserRepository, tokens *token.Manager, hashCost int, log *zap.SugaredLogger) AuthService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &authService{users: users, tokens: tokens, hashCost: hashCost, log: log}
}

// Register creates the account and returns it sanitized. No tokens are
// issued; registration does not imply login.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if in.Role == models.RoleAdmin {
		if _, err := s.users.FindAdmin(ctx); err == nil {
			return nil, ErrAdminLimit
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("lookup admin: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUser):
			return nil, ErrDuplicateUser
		case errors.Is(err, repository.ErrAdminExists):
			return nil, ErrAdminLimit
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Infow("user registered", "email", u.Email, "role", u.Role)
	return u.Sanitized(), nil
}

// Login answers identically for an unknown email and a wrong password so
// the response never reveals which emails are registered.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, *AuthTokens, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueAndStore(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u.Sanitized(), tokens, nil
}

// Refresh rotates the presented refresh token: it must verify, its subject
// must still exist, and it must still be in the user's persisted set. The
// removal is a compare-and-delete, so a token refreshes at most once even
// under concurrent calls.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if _, err := s.users.FindByID(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	removed, err := s.users.RemoveRefreshToken(ctx, oid, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	if !removed {
		// Signed and unexpired but already rotated or revoked.
		return nil, ErrInvalidRefreshToken
	}

	return s.issueAndStore(ctx, oid)
}

// Logout removes the token from its owner's set if it can. It succeeds
// unconditionally so the response carries no signal about token validity.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	if _, err := s.users.RemoveRefreshToken(ctx, oid, refreshToken); err != nil {
		s.log.Warnw("logout token removal failed", "error", err)
	}
	return nil
}

func (s *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]models.User, 0, len(users))
	for i := range users {
		out = append(out, *users[i].Sanitized())
	}
	return out, nil
}

func (s *authService) issueAndStore(ctx context.Context, id primitive.ObjectID) (*AuthTokens, error) {
	access, err := s.tokens.IssueAccess(id.Hex())
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(id.Hex())
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.users.AddRefreshToken(ctx, id, refresh); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}
